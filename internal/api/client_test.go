package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go-desert-guide/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(models.RemoteConfig{BaseURL: baseURL, Token: "test-token"}, &http.Client{Timeout: 5 * time.Second}, 3, time.Millisecond)
	require.NoError(t, err)
	return c
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(models.RemoteConfig{}, nil, 3, time.Second)
	require.ErrorIs(t, err, ErrMissingBaseURL)
}

func TestGetPlant(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/plants/ocotillo", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.RemotePlant{
			Slug:  "ocotillo",
			Name:  "Ocotillo",
			About: "Whip-stemmed shrub.",
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	plant, err := c.GetPlant(context.Background(), "ocotillo")
	require.NoError(t, err)
	assert.Equal(t, "Ocotillo", plant.Name)
	assert.Equal(t, "Whip-stemmed shrub.", plant.About)
}

func TestGetPlantNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetPlant(context.Background(), "no-such-plant")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetPlantUnauthorizedIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.GetPlant(context.Background(), "saguaro-cactus")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetPlantRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.RemotePlant{Slug: "ocotillo"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	plant, err := c.GetPlant(context.Background(), "ocotillo")
	require.NoError(t, err)
	assert.Equal(t, "ocotillo", plant.Slug)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGetCatalogFollowsCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("cursor") {
		case "":
			_ = json.NewEncoder(w).Encode(models.CatalogResponse{
				Items:    []models.RemotePlant{{Slug: "saguaro-cactus"}, {Slug: "ocotillo"}},
				Metadata: models.PaginationMetadata{NextCursor: "page-2"},
			})
		case "page-2":
			_ = json.NewEncoder(w).Encode(models.CatalogResponse{
				Items: []models.RemotePlant{{Slug: "palo-verde"}},
			})
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	plants, err := c.GetCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, plants, 3)
	assert.Equal(t, "saguaro-cactus", plants[0].Slug)
	assert.Equal(t, "palo-verde", plants[2].Slug)
}

func TestURLBuilderResolve(t *testing.T) {
	b := NewURLBuilder("https://cdn.desertguide.example")

	tests := []struct {
		name        string
		key         string
		preResolved string
		expected    string
		wantErr     bool
	}{
		{
			name:     "asset key",
			key:      "image-a1b2c3-1200x800-webp",
			expected: "https://cdn.desertguide.example/images/a1b2c3-1200x800.webp",
		},
		{
			name:        "pre-resolved URL wins",
			key:         "image-a1b2c3-1200x800-webp",
			preResolved: "https://elsewhere.example/x.jpg",
			expected:    "https://elsewhere.example/x.jpg",
		},
		{
			name:    "malformed key",
			key:     "not-an-asset",
			wantErr: true,
		},
		{
			name:    "empty key",
			key:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := b.Resolve(tt.key, tt.preResolved)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnresolvableRef)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestURLBuilderWithoutCDNBase(t *testing.T) {
	b := NewURLBuilder("")

	got, err := b.Resolve("image-a1b2c3-1200x800-webp", "https://pre.example/a.webp")
	require.NoError(t, err)
	assert.Equal(t, "https://pre.example/a.webp", got)

	_, err = b.Resolve("image-a1b2c3-1200x800-webp", "")
	require.ErrorIs(t, err, ErrUnresolvableRef)
}
