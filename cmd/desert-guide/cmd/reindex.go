package cmd

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"go-desert-guide/internal/index"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the search index from scratch",
	Long: `Drops the existing search index and rebuilds it from the merged
catalog. Use after local dataset changes or when the index is corrupt.`,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}

func runReindex(cmd *cobra.Command, _ []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	plants := provider.AllPlants(cmd.Context())

	searchIdx, err := index.RecreateIndex(globalConfig.BleveIndexPath)
	if err != nil {
		return fmt.Errorf("failed to recreate search index: %w", err)
	}
	defer func() {
		if err := searchIdx.Close(); err != nil {
			log.WithError(err).Error("Error closing search index")
		}
	}()

	if err := index.IndexPlants(searchIdx, plants); err != nil {
		return fmt.Errorf("failed to index catalog: %w", err)
	}

	log.Infof("Indexed %d plants into %s", len(plants), globalConfig.BleveIndexPath)
	return nil
}
