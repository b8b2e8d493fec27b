package cmd

import (
	"context"
	"os"

	"restaurant_site/config"
	"restaurant_site/constants"
	"restaurant_site/realtime"
	"restaurant_site/repository"
	"restaurant_site/theme"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Export or import the site theme as YAML",
}

var themeExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write every theme field, defaults included, to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(config.Load())
		if err != nil {
			return err
		}
		store := theme.NewStore(repository.NewSiteConfigRepository(db))
		if _, err := store.Load(context.Background()); err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		if err := theme.WriteYAML(f, store.Values()); err != nil {
			return err
		}
		color.New(color.FgGreen, color.Bold).Printf("✅ Theme written to %s\n", args[0])
		return nil
	},
}

var themeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the stored theme with a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		values, err := theme.ReadYAML(f)
		if err != nil {
			return err
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		ctx := context.Background()
		if err := repository.NewSiteConfigRepository(db).Replace(ctx, values); err != nil {
			return err
		}
		// Running servers reload on this notification.
		if feed, err := realtime.NewFeed(ctx, cfg); err == nil {
			realtime.Notify(ctx, feed, constants.CHANNEL_SITE_CONFIG, "import")
			_ = feed.Close()
		} else {
			color.New(color.FgYellow).Println("⚠️  Servers were not notified:", err)
		}
		color.New(color.FgGreen, color.Bold).Printf("✅ Imported %d theme field(s)\n", len(values))
		return nil
	},
}

func init() {
	themeCmd.AddCommand(themeExportCmd)
	themeCmd.AddCommand(themeImportCmd)
}
