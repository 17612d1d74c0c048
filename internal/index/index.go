// Package index maintains the bleve full-text index over the plant catalog.
package index

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	log "github.com/sirupsen/logrus"

	"go-desert-guide/internal/models"
)

// PlantDocument is the indexed shape of one plant.
type PlantDocument struct {
	Slug           string `json:"slug"`
	Name           string `json:"name"`
	ScientificName string `json:"scientificName"`
	Category       string `json:"category"`
	Description    string `json:"description"`
}

// Hit is one search result.
type Hit struct {
	Slug  string
	Score float64
}

// OpenOrCreateIndex opens the index at path, creating it with the plant
// mapping when it does not exist.
func OpenOrCreateIndex(path string) (bleve.Index, error) {
	idx, err := bleve.Open(path)
	if err == nil {
		log.Debugf("Opened existing search index at %s", path)
		return idx, nil
	}
	if !errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		return nil, fmt.Errorf("failed to open search index at %s: %w", path, err)
	}

	idx, err = bleve.New(path, buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create search index at %s: %w", path, err)
	}
	log.Infof("Created new search index at %s", path)
	return idx, nil
}

// RecreateIndex removes any index at path and builds a fresh one.
func RecreateIndex(path string) (bleve.Index, error) {
	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("failed to remove old search index at %s: %w", path, err)
	}
	return OpenOrCreateIndex(path)
}

func buildMapping() mapping.IndexMapping {
	plantMapping := bleve.NewDocumentMapping()

	textField := bleve.NewTextFieldMapping()
	plantMapping.AddFieldMappingsAt("name", textField)
	plantMapping.AddFieldMappingsAt("scientificName", textField)
	plantMapping.AddFieldMappingsAt("description", textField)

	keywordField := bleve.NewTextFieldMapping()
	keywordField.Analyzer = keyword.Name
	plantMapping.AddFieldMappingsAt("slug", keywordField)
	plantMapping.AddFieldMappingsAt("category", keywordField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = plantMapping
	return indexMapping
}

// IndexPlants writes every record into the index in one batch, keyed by slug.
func IndexPlants(idx bleve.Index, plants []models.PlantRecord) error {
	batch := idx.NewBatch()
	for _, rec := range plants {
		doc := PlantDocument{
			Slug:           rec.Slug,
			Name:           rec.Name,
			ScientificName: rec.ScientificName,
			Category:       string(rec.Category),
			Description:    rec.Description,
		}
		if err := batch.Index(rec.Slug, doc); err != nil {
			return fmt.Errorf("failed to add %q to index batch: %w", rec.Slug, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return fmt.Errorf("failed to apply index batch: %w", err)
	}
	log.Debugf("Indexed %d plants", len(plants))
	return nil
}

// Search runs a full-text query over the catalog, optionally restricted to a
// category. An empty queryString with a category filter lists that category.
func Search(idx bleve.Index, queryString, category string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 25
	}

	var clauses []query.Query
	queryString = strings.TrimSpace(queryString)
	if queryString != "" {
		match := bleve.NewMatchQuery(queryString)
		prefix := bleve.NewPrefixQuery(strings.ToLower(queryString))
		clauses = append(clauses, bleve.NewDisjunctionQuery(match, prefix))
	}
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && category != "all" {
		term := bleve.NewTermQuery(category)
		term.SetField("category")
		clauses = append(clauses, term)
	}

	var q query.Query
	switch len(clauses) {
	case 0:
		q = bleve.NewMatchAllQuery()
	case 1:
		q = clauses[0]
	default:
		q = bleve.NewConjunctionQuery(clauses...)
	}

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	res, err := idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{Slug: h.ID, Score: h.Score})
	}
	return hits, nil
}
