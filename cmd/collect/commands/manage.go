package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/pageza/myplate-diets/backend/internal/collector"
	"github.com/pageza/myplate-diets/backend/internal/service"
)

func init() {
	rootCmd.AddCommand(importCmd, reclassifyCmd, tokenCmd)
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Loads the JSON records in the output buckets into the database.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := loadReference(cmd.Context())
		if err != nil {
			return err
		}
		recipes, err := openRecipeService(ref)
		if err != nil {
			return err
		}
		_, err = collector.ImportRecords(cmd.Context(), cfg.OutputDir, recipes)
		return err
	},
}

var reclassifyCmd = &cobra.Command{
	Use:   "reclassify",
	Short: "Recomputes the diets of every stored recipe with the current reference lists.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := loadReference(cmd.Context())
		if err != nil {
			return err
		}
		recipes, err := openRecipeService(ref)
		if err != nil {
			return err
		}
		updated, err := recipes.ReclassifyAll(cmd.Context())
		if err != nil {
			return err
		}
		log.Printf("Updated %d recipes (reference %s)", updated, ref.Fingerprint())
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token <client-id>",
	Short: "Issues a bearer token for the protected recipe API.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}
		token, err := service.NewTokenService(cfg.JWTSecret).GenerateToken(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
