package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/UmangSachdeva/SalesX/models"
	"github.com/UmangSachdeva/SalesX/store"
	"github.com/rs/zerolog"
)

var ErrFeedStatus = errors.New("unexpected seed feed status")

// FeedClient loads the full seed dataset.
type FeedClient interface {
	Fetch(ctx context.Context) ([]models.Transaction, error)
}

// HTTPFeed reads the dataset as a JSON array from a fixed URL.
type HTTPFeed struct {
	url        string
	httpClient *http.Client
}

func NewHTTPFeed(url string, httpClient *http.Client) *HTTPFeed {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPFeed{url: url, httpClient: httpClient}
}

func (f *HTTPFeed) Fetch(ctx context.Context) ([]models.Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch seed feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrFeedStatus, resp.StatusCode)
	}

	var records []models.Transaction
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode seed feed: %w", err)
	}
	return records, nil
}

// Seeder replaces the store contents with the feed's dataset.
type Seeder struct {
	feed   FeedClient
	store  store.Store
	logger zerolog.Logger
}

func NewSeeder(feed FeedClient, s store.Store, logger zerolog.Logger) *Seeder {
	return &Seeder{
		feed:   feed,
		store:  s,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Initialize fetches the feed and reseeds the store, returning the number of
// records stored. Overlapping calls are not serialized.
func (s *Seeder) Initialize(ctx context.Context) (int, error) {
	records, err := s.feed.Fetch(ctx)
	if err != nil {
		return 0, err
	}

	if err := s.store.ReplaceAll(ctx, records); err != nil {
		return 0, fmt.Errorf("reseed store: %w", err)
	}

	s.logger.Info().Int("records", len(records)).Msg("store reseeded")
	return len(records), nil
}
