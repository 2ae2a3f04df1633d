package handlers

import (
	"net/url"
	"testing"

	"showdeck/models"
)

func TestQueryIntTotality(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"", nil},
		{"abc", nil},
		{"1.5", nil},
		{"2e3", nil},
		{" 7 ", intPtr(7)},
		{"-3", intPtr(-3)},
		{"0", intPtr(0)},
	}
	for _, tt := range tests {
		q := url.Values{"n": {tt.raw}}
		got := queryInt(q, "n")
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("queryInt(%q) = %d, want absent", tt.raw, *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("queryInt(%q) = %v, want %d", tt.raw, got, *tt.want)
		}
	}
}

func TestQueryFloatRejectsNonFinite(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "-Inf", "abc", ""} {
		q := url.Values{"f": {raw}}
		if got := queryFloat(q, "f"); got != nil {
			t.Errorf("queryFloat(%q) = %v, want absent", raw, *got)
		}
	}
	q := url.Values{"f": {"8.25"}}
	if got := queryFloat(q, "f"); got == nil || *got != 8.25 {
		t.Errorf("queryFloat(8.25) = %v", got)
	}
}

func TestQueryListSplitsAndTrims(t *testing.T) {
	q := url.Values{"genres": {" Drama, ,Crime ,"}}
	got := queryList(q, "genres")
	if len(got) != 2 || got[0] != "Drama" || got[1] != "Crime" {
		t.Fatalf("queryList = %v", got)
	}
	if got := queryList(url.Values{}, "genres"); got != nil {
		t.Fatalf("expected nil for absent key, got %v", got)
	}
}

func TestQuerySortAndOrderFallBack(t *testing.T) {
	if got := querySort(url.Values{"sort": {"bogus"}}, "sort"); got != models.SortRating {
		t.Errorf("querySort(bogus) = %q", got)
	}
	if got := querySort(url.Values{"sort": {"premiered"}}, "sort"); got != models.SortPremiered {
		t.Errorf("querySort(premiered) = %q", got)
	}
	if got := queryOrder(url.Values{"order": {"ASC"}}, "order"); got != models.OrderAsc {
		t.Errorf("queryOrder(ASC) = %q", got)
	}
	if got := queryOrder(url.Values{"order": {"sideways"}}, "order"); got != models.OrderDesc {
		t.Errorf("queryOrder(sideways) = %q", got)
	}
}

func TestParseEmbedsBothForms(t *testing.T) {
	q := url.Values{
		"embed":   {"episodes"},
		"embed[]": {"seasons", "cast", " "},
	}
	got := parseEmbeds(q)
	want := []string{"episodes", "seasons", "cast"}
	if len(got) != len(want) {
		t.Fatalf("parseEmbeds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("parseEmbeds = %v, want %v", got, want)
		}
	}
}
