package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")
	m := NewManager(path)

	s, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Upstream.BaseURL != "https://api.tvmaze.com" {
		t.Fatalf("unexpected default base URL %q", s.Upstream.BaseURL)
	}
	if s.Server.Port != 3000 {
		t.Fatalf("unexpected default port %d", s.Server.Port)
	}
	if s.Upstream.MaxFilterPages != 19 || s.Upstream.MaxWindowPages != 50 {
		t.Fatalf("unexpected scan bounds %+v", s.Upstream)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected settings file to be written: %v", err)
	}
}

func TestLoadBackfillsZeroFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"server":{"port":8080}}`), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	s, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Server.Port != 8080 {
		t.Fatalf("explicit port must survive, got %d", s.Server.Port)
	}
	if s.Upstream.BaseURL == "" || s.Upstream.TimeoutMs == 0 {
		t.Fatalf("zero fields must be backfilled, got %+v", s.Upstream)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TVMAZE_BASE_URL", "http://stub.local")
	t.Setenv("PORT", "9999")

	path := filepath.Join(t.TempDir(), "settings.json")
	s, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Upstream.BaseURL != "http://stub.local" {
		t.Fatalf("TVMAZE_BASE_URL override ignored, got %q", s.Upstream.BaseURL)
	}
	if s.Server.Port != 9999 {
		t.Fatalf("PORT override ignored, got %d", s.Server.Port)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	m := NewManager(path)

	s := DefaultSettings()
	s.Server.Port = 4000
	s.Cache.WarmPages = 5
	s.Log.File = "logs/showdeck.log"
	if err := m.Save(s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := m.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Port != 4000 || loaded.Cache.WarmPages != 5 || loaded.Log.File != "logs/showdeck.log" {
		t.Fatalf("roundtrip mismatch: %+v", loaded)
	}

	// The file on disk is valid indented JSON with no temp leftover.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var check Settings
	if err := json.Unmarshal(data, &check); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file left behind after save")
	}
}
