package cmd

import (
	"context"
	"fmt"

	"restaurant_site/config"
	"restaurant_site/queue"
	"restaurant_site/repository"
	"restaurant_site/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncDate string

var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "Reservation maintenance",
}

var reservationsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Confirm pending reservations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		var date *string
		if syncDate != "" {
			if _, err := utils.ParseDate(syncDate); err != nil {
				return err
			}
			date = &syncDate
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		ctx := context.Background()
		rows, err := repository.NewReservationRepository(db).ConfirmPending(ctx, date)
		if err != nil {
			return err
		}
		if cfg.RabbitURL != "" && len(rows) > 0 {
			queue.NewPublisher(cfg.RabbitURL).ReservationsConfirmed(ctx, rows)
		}

		green := color.New(color.FgGreen, color.Bold)
		cyan := color.New(color.FgCyan)
		green.Printf("✅ Confirmed %d reservation(s)\n", len(rows))
		for _, r := range rows {
			cyan.Println("   -", fmt.Sprintf("%s %s %s (%d)", r.Code, r.Date.String(), r.Time, r.People))
		}
		return nil
	},
}

func init() {
	reservationsSyncCmd.Flags().StringVar(&syncDate, "date", "", "only confirm reservations on this day (YYYY-MM-DD)")
	reservationsCmd.AddCommand(reservationsSyncCmd)
}
