package eventsource

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/hushd/hushd/internal/domain"
)

const defaultFetchTimeout = 15 * time.Second

// fetcher downloads ICS feeds and keeps the last successfully fetched body
// per calendar in memory. A transient network failure falls back to the
// cached body so a flaky feed degrades instead of blanking the schedule.
type fetcher struct {
	client *http.Client

	mu       sync.Mutex
	lastGood map[string][]byte
}

func newFetcher(client *http.Client) *fetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &fetcher{
		client:   client,
		lastGood: make(map[string][]byte),
	}
}

// fetch returns the feed body for one calendar and whether it came from the
// in-memory cache. A 401/403 maps to ErrPermissionDenied and never falls
// back to cache: revoked access must not keep old events alive.
func (f *fetcher) fetch(ctx context.Context, cal Calendar) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cal.URL, nil)
	if err != nil {
		return nil, false, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if body, ok := f.cached(cal.ID); ok {
			slog.WarnContext(ctx, "calendar fetch failed, using cached body",
				slog.String("calendar_id", cal.ID),
				slog.String("error", err.Error()),
			)
			return body, true, nil
		}
		return nil, false, err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, false, readErr
		}
		f.store(cal.ID, body)
		return body, false, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		f.drop(cal.ID)
		return nil, false, domain.ErrPermissionDenied

	default:
		if body, ok := f.cached(cal.ID); ok {
			slog.WarnContext(ctx, "calendar fetch returned non-OK, using cached body",
				slog.String("calendar_id", cal.ID),
				slog.Int("status", resp.StatusCode),
			)
			return body, true, nil
		}
		return nil, false, fmt.Errorf("calendar fetch failed: %s", resp.Status)
	}
}

func (f *fetcher) cached(calendarID string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	body, ok := f.lastGood[calendarID]
	return body, ok
}

func (f *fetcher) store(calendarID string, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastGood[calendarID] = body
}

func (f *fetcher) drop(calendarID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.lastGood, calendarID)
}
