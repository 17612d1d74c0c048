package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-desert-guide/internal/catalog"
	"go-desert-guide/internal/localdata"
	"go-desert-guide/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	provider := catalog.NewProvider(nil, nil, localdata.Plants())
	s, err := New(provider)
	require.NoError(t, err)
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestCatalogPage(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Saguaro Cactus")
	assert.Contains(t, body, "Ocotillo")
	assert.Contains(t, body, `href="/plants/saguaro-cactus"`)
}

func TestCatalogSearchFilters(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/?q=saguaro&category=all")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Saguaro Cactus")
	assert.NotContains(t, body, `href="/plants/ocotillo"`)
}

func TestCatalogSearchMatchesMidWordSubstring(t *testing.T) {
	srv := newTestServer(t)

	// Substring semantics: a fragment from the middle of a name must match.
	status, body := get(t, srv.URL+"/?q=guaro&category=all")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Saguaro Cactus")
	assert.NotContains(t, body, "No plants found matching your search")
}

func TestCatalogEmptyState(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/?q=juniper")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "No plants found matching your search")
}

func TestDetailPage(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/plants/ocotillo")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Ocotillo")
	assert.Contains(t, body, "Fouquieria splendens")
	// Neighbors come from catalog order: saguaro-cactus, ocotillo, palo-verde.
	assert.Contains(t, body, `data-prev="saguaro-cactus"`)
	assert.Contains(t, body, `data-next="palo-verde"`)
}

func TestDetailPageBoundaries(t *testing.T) {
	srv := newTestServer(t)

	plants := localdata.Plants()
	first := plants[0].Slug
	last := plants[len(plants)-1].Slug

	_, body := get(t, srv.URL+"/plants/"+first)
	assert.Contains(t, body, `data-prev=""`)

	_, body = get(t, srv.URL+"/plants/"+last)
	assert.Contains(t, body, `data-next=""`)
}

func TestDetailNotFound(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/plants/tumbleweed")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "Plant not found")
}

func TestAboutPage(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/about")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "About this guide")
}

func TestAPIPlants(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/api/plants")
	require.Equal(t, http.StatusOK, status)

	var plants []models.PlantRecord
	require.NoError(t, json.Unmarshal([]byte(body), &plants))
	assert.Len(t, plants, len(localdata.Plants()))
}

func TestAPIPlantBySlug(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/api/plants/saguaro-cactus")
	require.Equal(t, http.StatusOK, status)

	var plant models.PlantRecord
	require.NoError(t, json.Unmarshal([]byte(body), &plant))
	assert.Equal(t, "saguaro-cactus", plant.Slug)
	assert.Equal(t, models.CategoryCactus, plant.Category)
}

func TestAPIPlantNotFound(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/api/plants/tumbleweed")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "plant not found")
}

func TestAPISearch(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/api/search?q=saguaro&category=all")
	require.Equal(t, http.StatusOK, status)

	var plants []models.PlantRecord
	require.NoError(t, json.Unmarshal([]byte(body), &plants))
	require.Len(t, plants, 1)
	assert.Equal(t, "saguaro-cactus", plants[0].Slug)
}

func TestAPISearchMatchesMidWordSubstring(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/api/search?q=guaro&category=all")
	require.Equal(t, http.StatusOK, status)

	var plants []models.PlantRecord
	require.NoError(t, json.Unmarshal([]byte(body), &plants))
	require.Len(t, plants, 1)
	assert.Equal(t, "saguaro-cactus", plants[0].Slug)
}

func TestAPISearchNoResultsIsEmptyArray(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/api/search?q=juniper")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", strings.TrimSpace(body))
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// Generate some traffic first.
	_, _ = get(t, srv.URL+"/")
	status, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "desert_guide_http_requests_total")
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	status, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}

// erroringCatalog fails every lookup without matching ErrNotFound.
type erroringCatalog struct{}

func (erroringCatalog) PlantBySlug(context.Context, string) (models.PlantRecord, error) {
	return models.PlantRecord{}, context.DeadlineExceeded
}
func (erroringCatalog) AllPlants(context.Context) []models.PlantRecord { return nil }

func TestDetailInternalError(t *testing.T) {
	s, err := New(erroringCatalog{})
	require.NoError(t, err)
	srv := httptest.NewServer(s)
	defer srv.Close()

	status, _ := get(t, srv.URL+"/plants/anything")
	assert.Equal(t, http.StatusInternalServerError, status)
}
