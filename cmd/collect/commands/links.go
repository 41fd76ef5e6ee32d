package commands

import (
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/myplate-diets/backend/internal/collector"
)

var linksSkipFacets bool

func init() {
	linksCmd.Flags().BoolVar(&linksSkipFacets, "skip-facets", false, "Only collect the full recipe listing.")
	rootCmd.AddCommand(linksCmd)
}

var linksCmd = &cobra.Command{
	Use:   "links [--skip-facets]",
	Short: "Collects every recipe link and the course, food group and cuisine link files.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fetcher := collector.NewFetcher(30 * time.Second)

		links, err := collector.CollectLinks(ctx, fetcher, collector.AllRecipesURL(cfg.BaseURL), cfg.BaseURL)
		if err != nil {
			return err
		}
		if err := collector.WriteLinks(cfg.LinksFile, links); err != nil {
			return err
		}
		log.Printf("Wrote %d recipe links to %s", len(links), cfg.LinksFile)

		if linksSkipFacets {
			return nil
		}
		return collector.CollectFacetLinks(ctx, fetcher, cfg.BaseURL, cfg.CategoryDir)
	},
}
