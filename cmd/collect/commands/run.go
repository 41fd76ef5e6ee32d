package commands

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/myplate-diets/backend/internal/collector"
	"github.com/pageza/myplate-diets/backend/internal/service"
)

var (
	runStore   bool
	runSkip    int
	runLimit   int
	runWorkers int
)

func init() {
	runCmd.Flags().BoolVar(&runStore, "store", false, "Also save recipes to the configured database.")
	runCmd.Flags().IntVar(&runSkip, "skip", 0, "Skip the first n links.")
	runCmd.Flags().IntVar(&runLimit, "limit", 0, "Process at most n links (0 means all).")
	runCmd.Flags().IntVar(&runWorkers, "workers", 0, "Concurrent fetches (default from COLLECTOR_WORKERS).")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--store] [--skip n] [--limit n]",
	Short: "Fetches every linked recipe, classifies it and writes its record.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := checkWindow(runSkip, runLimit); err != nil {
			return err
		}

		ref, err := loadReference(ctx)
		if err != nil {
			return err
		}

		links, err := collector.ReadLinks(cfg.LinksFile)
		if err != nil {
			return fmt.Errorf("failed to read links (run `collect links` first): %w", err)
		}
		links = window(links, runSkip, runLimit)

		index, err := collector.LoadCategoryIndex(cfg.CategoryDir)
		if err != nil {
			return err
		}
		writer, err := collector.NewBucketWriter(cfg.OutputDir)
		if err != nil {
			return err
		}

		workers := cfg.CollectorWorkers
		if runWorkers > 0 {
			workers = runWorkers
		}

		classifier := service.NewClassificationService(ref, nil)
		p := &collector.Pipeline{
			Getter:     collector.NewFetcher(30 * time.Second),
			Classifier: classifier,
			Index:      index,
			Writer:     writer,
			Workers:    workers,
		}
		if runStore {
			db, err := openDB()
			if err != nil {
				return err
			}
			p.Store = service.NewRecipeService(db, classifier)
		}

		start := time.Now()
		stats, err := p.Run(ctx, links)
		log.Printf("Processed %d links in %s", len(links), time.Since(start).Round(time.Second))
		if err != nil {
			return err
		}
		if stats.Failed > 0 {
			return fmt.Errorf("%d recipes failed", stats.Failed)
		}
		return nil
	},
}

func checkWindow(skip, limit int) error {
	if skip < 0 {
		return fmt.Errorf("--skip must not be negative, got %d", skip)
	}
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative, got %d", limit)
	}
	return nil
}

// window returns links[skip:skip+limit], treating a non-positive limit as no
// limit and a negative skip as zero.
func window(links []string, skip, limit int) []string {
	skip = max(skip, 0)
	if skip >= len(links) {
		return nil
	}
	links = links[skip:]
	if limit > 0 && limit < len(links) {
		links = links[:limit]
	}
	return links
}
