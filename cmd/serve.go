package cmd

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"restaurant_site/config"
	"restaurant_site/constants"
	"restaurant_site/database"
	"restaurant_site/handler"
	"restaurant_site/helper"
	"restaurant_site/queue"
	"restaurant_site/realtime"
	"restaurant_site/repository"
	"restaurant_site/router"
	"restaurant_site/storage"
	"restaurant_site/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the change feed watcher and the schedulers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(config.Load())
	},
}

func serve(cfg config.Settings) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	feed, err := realtime.NewFeed(ctx, cfg)
	if err != nil {
		log.Printf("[realtime] %v, falling back to in-process feed", err)
		feed = realtime.NewMemoryFeed()
	}
	defer feed.Close()

	deps := handler.Deps{DB: db, Config: cfg, Feed: feed}
	if cfg.CloudinaryCloud != "" {
		backend, err := storage.NewCloudinary(cfg.CloudinaryCloud, cfg.CloudinaryKey, cfg.CloudinarySecret)
		if err != nil {
			return err
		}
		deps.Storage = backend
	} else {
		log.Println("[storage] CLOUDINARY_CLOUD_NAME not set, uploads disabled")
	}
	if cfg.RabbitURL != "" {
		deps.Events = queue.NewPublisher(cfg.RabbitURL)
	}
	h := handler.New(deps)

	if _, err := h.Theme.Load(ctx); err != nil {
		log.Printf("[theme] initial load failed, serving defaults: %v", err)
	}

	watcher := realtime.NewWatcher(feed)
	watcher.On(constants.CHANNEL_SITE_CONFIG, realtime.InvalidateAndLoad(h.Theme))
	watcher.On(constants.CHANNEL_SITE_CONFIG, h.Hub.Broadcast)
	watcher.On(constants.CHANNEL_FEATURES, h.Hub.Broadcast)
	go func() {
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[realtime] watcher stopped: %v", err)
		}
	}()

	mailer := utils.Mailer{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}
	if cfg.RabbitURL != "" {
		consumer := queue.NewConsumer(cfg.RabbitURL, queue.MailHandler{
			Sender:     mailer,
			OwnerEmail: cfg.OwnerEmail,
			PublicURL:  cfg.PublicURL,
		}.Handle)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("[queue] consumer stopped: %v", err)
			}
		}()
	}

	digest := helper.Digest{
		Reservations: repository.NewReservationRepository(db),
		Mailer:       mailer,
		OwnerEmail:   cfg.OwnerEmail,
		Location:     cfg.Timezone,
	}
	daily, err := helper.StartDailyScheduler(cfg.Timezone, cfg.DigestAt, digest.Run)
	if err != nil {
		return err
	}
	defer func() { _ = daily.Shutdown() }()

	resync, err := helper.StartPeriodic(cfg.ThemeResyncSpec, func() {
		h.Theme.Reload(ctx, "periodic resync")
	})
	if err != nil {
		return err
	}
	defer resync.Stop()

	app := router.NewApp(h, cfg)
	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	color.New(color.FgGreen, color.Bold).Printf("🚀 Listening on :%s (%s)\n", cfg.Port, cfg.Env)
	return app.Listen(":" + cfg.Port)
}
