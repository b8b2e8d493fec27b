package cmd

import (
	"restaurant_site/config"
	"restaurant_site/database"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(config.Load())
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		color.New(color.FgGreen, color.Bold).Println("✅ Tables are up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account and default feature flags",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		if err := database.Migrate(db); err != nil {
			return err
		}
		if err := database.SeedData(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			return err
		}
		color.New(color.FgGreen, color.Bold).Printf("✅ Seeded admin %q\n", cfg.AdminUsername)
		return nil
	},
}
