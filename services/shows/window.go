package shows

import (
	"context"

	"showdeck/models"
)

// ShowsWindow returns the page-th limit-sized slice of the upstream
// catalogue. Upstream only serves fixed ~250-item pages with no arbitrary
// offset, so the window is assembled by walking upstream pages in order,
// skipping whole pages while they fall before the requested offset, then a
// partial prefix of the first relevant page, and accumulating until limit
// items are collected, the catalogue ends, or the page safety bound trips.
//
// A page past the catalogue end yields an empty result with Count 0; that
// is the caller's last-page signal, not an error. A failed upstream fetch
// aborts the whole window rather than returning a silent partial result.
func (s *Service) ShowsWindow(ctx context.Context, page, limit int) (*models.ShowPage, error) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = models.DefaultLimit
	}

	remainingToSkip := page * limit
	items := make([]models.Show, 0, limit)

	for upstreamPage := 0; upstreamPage < s.maxWindowPages; upstreamPage++ {
		batch, err := s.ShowsPage(ctx, upstreamPage)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break // catalogue exhausted
		}
		if remainingToSkip >= len(batch) {
			remainingToSkip -= len(batch)
			continue
		}
		batch = batch[remainingToSkip:]
		remainingToSkip = 0

		if need := limit - len(items); len(batch) > need {
			batch = batch[:need]
		}
		items = append(items, batch...)
		if len(items) == limit {
			break
		}
	}

	return &models.ShowPage{Page: page, Count: len(items), Items: items}, nil
}
