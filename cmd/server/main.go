package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"membership-system/internal/config"
	"membership-system/internal/domain/account"
	"membership-system/internal/expiry"
	api "membership-system/internal/http"
	"membership-system/internal/mail"
	"membership-system/internal/mediaserver"
	"membership-system/internal/metrics"
	"membership-system/internal/platform/database"
	"membership-system/internal/platform/logging"
	"membership-system/internal/repository/postgres"
	"membership-system/internal/settings"
	"membership-system/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logging.New(logging.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})

	metrics.Register()

	db, err := database.NewPostgres(cfg.DB_DSN)
	if err != nil {
		log.Error("db connect error", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepo(db)

	prov := settings.Static{
		NotificationsEnabled: cfg.EmailNotificationsEnabled,
		Title:                cfg.ApplicationTitle,
		URL:                  cfg.ApplicationURL,
	}

	sender := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})

	backends := mediaserver.NewRegistry()
	if cfg.Jellyfin.URL != "" && cfg.Jellyfin.APIKey != "" {
		backends.Register(account.ServerJellyfin, mediaserver.NewJellyfinClient(mediaserver.JellyfinConfig{
			BaseURL: cfg.Jellyfin.URL,
			APIKey:  cfg.Jellyfin.APIKey,
		}))
		log.Info("jellyfin admin client configured", "url", cfg.Jellyfin.URL)
	}
	if cfg.Emby.URL != "" && cfg.Emby.APIKey != "" {
		backends.Register(account.ServerEmby, mediaserver.NewEmbyClient(mediaserver.JellyfinConfig{
			BaseURL: cfg.Emby.URL,
			APIKey:  cfg.Emby.APIKey,
		}))
		log.Info("emby admin client configured", "url", cfg.Emby.URL)
	}

	mgr := expiry.NewManager(
		accountRepo,
		expiry.NewNotifier(prov, sender, log),
		expiry.NewDeactivator(accountRepo, backends, log),
		cfg.WarnWindow,
		log,
	)

	expiryWorker := worker.NewExpiryWorker(mgr, cfg.CheckInterval, cfg.RunOnStart, log)

	router := api.NewRouter(mgr, cfg.CheckInterval, db, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go expiryWorker.Run(ctx)

	go func() {
		log.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	<-stop
	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
