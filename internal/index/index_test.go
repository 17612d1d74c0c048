package index

import (
	"path/filepath"
	"testing"

	"go-desert-guide/internal/localdata"
	"go-desert-guide/internal/models"

	"github.com/blevesearch/bleve/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestIndex(t *testing.T) bleve.Index {
	t.Helper()
	idx, err := OpenOrCreateIndex(filepath.Join(t.TempDir(), "plants.bleve"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	require.NoError(t, IndexPlants(idx, localdata.Plants()))
	return idx
}

func slugsOf(hits []Hit) []string {
	var out []string
	for _, h := range hits {
		out = append(out, h.Slug)
	}
	return out
}

func TestOpenOrCreateReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.bleve")

	idx, err := OpenOrCreateIndex(path)
	require.NoError(t, err)
	require.NoError(t, IndexPlants(idx, localdata.Plants()))
	require.NoError(t, idx.Close())

	idx, err = OpenOrCreateIndex(path)
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()

	count, err := idx.DocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(localdata.Plants())), count)
}

func TestSearchByCommonName(t *testing.T) {
	idx := openTestIndex(t)

	hits, err := Search(idx, "saguaro", "all", 10)
	require.NoError(t, err)
	assert.Contains(t, slugsOf(hits), "saguaro-cactus")
}

func TestSearchByScientificName(t *testing.T) {
	idx := openTestIndex(t)

	hits, err := Search(idx, "fouquieria", "", 10)
	require.NoError(t, err)
	assert.Contains(t, slugsOf(hits), "ocotillo")
}

func TestSearchCategoryFilter(t *testing.T) {
	idx := openTestIndex(t)

	hits, err := Search(idx, "", "tree", 25)
	require.NoError(t, err)

	slugs := slugsOf(hits)
	assert.Contains(t, slugs, "palo-verde")
	assert.Contains(t, slugs, "joshua-tree")
	assert.NotContains(t, slugs, "saguaro-cactus")
}

func TestSearchQueryAndCategoryMustBothMatch(t *testing.T) {
	idx := openTestIndex(t)

	hits, err := Search(idx, "saguaro", "shrub", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchEmptyQueryListsAll(t *testing.T) {
	idx := openTestIndex(t)

	hits, err := Search(idx, "", "all", 100)
	require.NoError(t, err)
	assert.Len(t, hits, len(localdata.Plants()))
}

func TestRecreateIndexDropsOldDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plants.bleve")

	idx, err := OpenOrCreateIndex(path)
	require.NoError(t, err)
	require.NoError(t, IndexPlants(idx, []models.PlantRecord{{Slug: "stale", Name: "Stale Entry"}}))
	require.NoError(t, idx.Close())

	idx, err = RecreateIndex(path)
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()

	count, err := idx.DocCount()
	require.NoError(t, err)
	assert.Zero(t, count)
}
