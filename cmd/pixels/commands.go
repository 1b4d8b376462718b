package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TRrajputDEV/Pixels-sub000/internal/config"
	"github.com/TRrajputDEV/Pixels-sub000/internal/db"
	"github.com/TRrajputDEV/Pixels-sub000/internal/discovery"
	"github.com/TRrajputDEV/Pixels-sub000/internal/middleware"
	"github.com/TRrajputDEV/Pixels-sub000/internal/repository"
	"github.com/TRrajputDEV/Pixels-sub000/internal/service"
)

// --- migrate ---

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		middleware.InitLogger(cfg.LogLevel, "pixels-cli")

		pool, err := db.NewPool(cmd.Context(), cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return err
		}
		defer pool.Close()

		return db.Migrate(cmd.Context(), pool)
	},
}

// --- backfill ---

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Tag videos that have no discovery metadata yet",
	Long: `Tag videos that have no discovery metadata yet.

Runs a single pass of the back-fill worker and exits.

Examples:
  pixels backfill
  pixels backfill --batch 500 --rules ./rules.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		middleware.InitLogger(cfg.LogLevel, "pixels-cli")

		batch, _ := cmd.Flags().GetInt("batch")
		if batch <= 0 {
			batch = cfg.BackfillBatch
		}

		table, err := loadRules(rulesPath(cmd, cfg))
		if err != nil {
			return err
		}

		pool, err := db.NewPool(cmd.Context(), cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			return err
		}
		defer pool.Close()

		svc := service.NewVideoService(repository.NewVideoRepo(pool), discovery.NewTagger(discovery.NewClassifier(table)))
		tagged, err := svc.Backfill(cmd.Context(), batch)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "tagged %d videos\n", tagged)
		return nil
	},
}

func init() {
	backfillCmd.Flags().Int("batch", 0, "maximum videos to tag (default BACKFILL_BATCH)")
	backfillCmd.Flags().String("rules", "", "YAML rule table replacing the embedded one")
}

// --- classify ---

var classifyCmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Print discovery metadata for a title and description",
	Long: `Print discovery metadata for a title and description.

Examples:
  pixels classify "Learn to cook pasta fast"
  pixels classify --title "Lofi beats" --description "music to relax and study to"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		if title == "" && len(args) > 0 {
			title = strings.Join(args, " ")
		}
		if title == "" && description == "" {
			return fmt.Errorf("text, --title or --description is required")
		}

		table, err := loadRules(rulesPath(cmd, config.Load()))
		if err != nil {
			return err
		}

		tagging := discovery.NewTagger(discovery.NewClassifier(table)).Tag(title, description)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(tagging)
	},
}

func init() {
	classifyCmd.Flags().String("title", "", "video title")
	classifyCmd.Flags().String("description", "", "video description")
	classifyCmd.Flags().String("rules", "", "YAML rule table replacing the embedded one")
}
