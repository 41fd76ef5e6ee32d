package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/pageza/myplate-diets/backend/config"
	"github.com/pageza/myplate-diets/backend/internal/database"
	"github.com/pageza/myplate-diets/backend/internal/reference"
	"github.com/pageza/myplate-diets/backend/internal/service"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "collect",
	Short: "collect gathers MyPlate recipes and classifies them by diet.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd)
		return nil
	},
	SilenceUsage: true,
}

var (
	flagBaseURL     string
	flagCategoryDir string
	flagOutputDir   string
	flagLinksFile   string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagBaseURL, "base-url", "", "Recipe site base URL (default from BASE_URL)")
	flags.StringVar(&flagCategoryDir, "category-dir", "", "Directory of course, food group and cuisine link files (default from CATEGORY_DIR)")
	flags.StringVar(&flagOutputDir, "output-dir", "", "Directory the recipe buckets are written to (default from OUTPUT_DIR)")
	flags.StringVar(&flagLinksFile, "links-file", "", "File listing every recipe link (default from LINKS_FILE)")
}

func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = flagBaseURL
	}
	if flags.Changed("category-dir") {
		cfg.CategoryDir = flagCategoryDir
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = flagOutputDir
	}
	if flags.Changed("links-file") {
		cfg.LinksFile = flagLinksFile
	}
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadReference loads every category list. A missing list is fatal for any
// command that classifies.
func loadReference(ctx context.Context) (*reference.ReferenceData, error) {
	source, err := reference.SourceFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	ref, err := reference.LoadAll(ctx, reference.NewLoader(source))
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}
	return ref, nil
}

func openDB() (*gorm.DB, error) {
	return database.New(cfg)
}

// openRecipeService opens the configured database for commands that persist
func openRecipeService(ref *reference.ReferenceData) (*service.RecipeService, error) {
	db, err := openDB()
	if err != nil {
		return nil, err
	}
	return service.NewRecipeService(db, service.NewClassificationService(ref, nil)), nil
}
