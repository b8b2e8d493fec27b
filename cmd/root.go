package cmd

import (
	"fmt"
	"os"

	"restaurant_site/config"
	"restaurant_site/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "restaurant",
	Short: "Back office for the restaurant website",
	Long: `restaurant serves the site API and runs maintenance tasks.

Examples:

  restaurant serve
  restaurant migrate
  restaurant reservations sync --date 2026-10-19
  restaurant theme export theme.yaml
`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(reservationsCmd)
	rootCmd.AddCommand(themeCmd)
}

func openDB(cfg config.Settings) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
