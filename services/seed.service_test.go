package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UmangSachdeva/SalesX/models"
	"github.com/UmangSachdeva/SalesX/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedBody = `[
  {"id": 1, "title": "Fjallraven Backpack", "price": 329.85, "description": "Your perfect pack",
   "category": "men's clothing", "image": "https://example.com/1.jpg", "sold": false,
   "dateOfSale": "2021-11-27T20:29:54+05:30"},
  {"id": 2, "title": "Mens Casual T-Shirt", "price": 44.6, "description": "Slim-fitting style",
   "category": "men's clothing", "image": "https://example.com/2.jpg", "sold": true,
   "dateOfSale": "2021-10-27T20:29:54+05:30"}
]`

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPFeedDecodesRecords(t *testing.T) {
	srv := feedServer(t, http.StatusOK, feedBody)

	records, err := NewHTTPFeed(srv.URL, srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Fjallraven Backpack", records[0].Title)
	assert.Equal(t, 329.85, records[0].Price)
	assert.Equal(t, "men's clothing", records[0].Category)
	assert.False(t, records[0].Sold)
	assert.Equal(t, 2021, records[0].DateOfSale.Year())
	assert.True(t, records[0].ID.IsZero())
}

func TestHTTPFeedRejectsBadResponses(t *testing.T) {
	_, err := NewHTTPFeed(feedServer(t, http.StatusBadGateway, "").URL, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrFeedStatus)

	_, err = NewHTTPFeed(feedServer(t, http.StatusOK, `{"not": "an array"}`).URL, nil).Fetch(context.Background())
	assert.Error(t, err)
}

func TestInitializeIsIdempotent(t *testing.T) {
	srv := feedServer(t, http.StatusOK, feedBody)
	mem := store.NewMemoryStore()
	seeder := NewSeeder(NewHTTPFeed(srv.URL, srv.Client()), mem, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		n, err := seeder.Initialize(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		count, err := mem.Count(ctx, models.TransactionFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	}
}

func TestInitializeKeepsDataWhenFeedFails(t *testing.T) {
	mem := store.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, mem.ReplaceAll(ctx, scenario()))

	seeder := NewSeeder(NewHTTPFeed(feedServer(t, http.StatusInternalServerError, "").URL, nil), mem, zerolog.Nop())
	_, err := seeder.Initialize(ctx)
	assert.ErrorIs(t, err, ErrFeedStatus)

	count, err := mem.Count(ctx, models.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestInitializeSurfacesStoreFailure(t *testing.T) {
	srv := feedServer(t, http.StatusOK, feedBody)
	failing := failingStore{MemoryStore: store.NewMemoryStore(), failOn: "ReplaceAll"}

	n, err := NewSeeder(NewHTTPFeed(srv.URL, srv.Client()), failing, zerolog.Nop()).Initialize(context.Background())
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, n)
}
