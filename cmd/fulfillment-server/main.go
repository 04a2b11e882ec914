package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"saylani-fulfillment/internal/config"
	"saylani-fulfillment/internal/db"
	"saylani-fulfillment/internal/fulfillment"
	"saylani-fulfillment/internal/llm"
	"saylani-fulfillment/internal/log"
	"saylani-fulfillment/internal/mail"
	"saylani-fulfillment/internal/server"
	"saylani-fulfillment/internal/store"
	"saylani-fulfillment/internal/tasks"
)

func main() {
	cfg := config.Load()
	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("main")
	cfgLogger := log.WithComponent("config")
	for _, w := range cfg.Warnings {
		cfgLogger.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var records store.RecordStore
	var database *db.DB
	if cfg.DatabaseURL != "" {
		var err error
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer database.Close()
		logger.Info().Msg("database connection established")
		if cfg.MigrationsDir != "" {
			if err := database.RunMigrations(ctx, cfg.MigrationsDir); err != nil {
				logger.Fatal().Err(err).Msg("failed to run migrations")
			}
		}
		records = store.NewDatabaseStore(database)
	} else {
		logger.Warn().Msg("DB_URL not provided; records are kept in memory only")
		records = store.NewMemoryStore(500)
	}

	var mailer mail.Sender = mail.LogSender{}
	if cfg.SMTPEnabled() {
		mailer = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			FromName: cfg.MailFromName,
		})
	}

	var completer fulfillment.Completer
	if cfg.AIAPIKey != "" {
		spec, err := llm.LoadPromptSpec(cfg.AIPromptFile)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.AIPromptFile).Msg("failed to load fallback prompt")
		}
		completer = llm.NewCompleter(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, spec)
	}

	taskCfg := tasks.Config{
		Workers:   cfg.TaskWorkers,
		QueueSize: cfg.TaskQueueSize,
		MaxTries:  cfg.TaskMaxTries,
		Timeout:   cfg.TaskTimeout,
	}
	if cfg.DeadLetterFile != "" {
		taskCfg.DeadLetters = store.NewFileDeadLetters(cfg.DeadLetterFile)
	}
	queue := tasks.NewQueue(taskCfg)
	queue.Start()

	deps := server.Deps{
		Dispatcher: fulfillment.New(fulfillment.Options{
			Completer:  completer,
			Mailer:     mailer,
			Store:      records,
			AdminEmail: cfg.AdminEmail,
			AITimeout:  cfg.AITimeout,
		}),
		Tasks: queue,
	}
	if database != nil {
		deps.Database = database
	}
	s := server.NewServer(cfg, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("fulfillment server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	if err := queue.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("pending side effects were cancelled")
	}
}
