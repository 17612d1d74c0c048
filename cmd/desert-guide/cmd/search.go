package cmd

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-desert-guide/internal/index"
	"go-desert-guide/internal/models"
)

var (
	searchCategoryFlag string
	searchLimitFlag    int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the plant catalog from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchCategoryFlag, "category", "all", "Restrict results to a category (cactus, shrub, tree, wildflower, other)")
	searchCmd.Flags().IntVar(&searchLimitFlag, "limit", 25, "Maximum number of results")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	provider, err := newProvider()
	if err != nil {
		return err
	}
	plants := provider.AllPlants(cmd.Context())

	searchIdx, err := index.OpenOrCreateIndex(globalConfig.BleveIndexPath)
	if err != nil {
		return fmt.Errorf("failed to open search index: %w", err)
	}
	defer func() {
		if err := searchIdx.Close(); err != nil {
			log.WithError(err).Error("Error closing search index")
		}
	}()

	// Keep the index current with whatever the provider sees right now.
	if err := index.IndexPlants(searchIdx, plants); err != nil {
		return fmt.Errorf("failed to index catalog: %w", err)
	}

	hits, err := index.Search(searchIdx, query, searchCategoryFlag, searchLimitFlag)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("No plants found matching your search")
		return nil
	}

	bySlug := make(map[string]models.PlantRecord, len(plants))
	for _, rec := range plants {
		bySlug[rec.Slug] = rec
	}

	for _, hit := range hits {
		rec, ok := bySlug[hit.Slug]
		if !ok {
			continue
		}
		fmt.Printf("%-24s %-28s %-12s %.3f\n", rec.Slug, rec.Name, rec.Category, hit.Score)
	}
	return nil
}
