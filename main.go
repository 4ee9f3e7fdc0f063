package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fiber/wof/app/board"
	"fiber/wof/app/metrics"
	"fiber/wof/app/notify"
	"fiber/wof/app/repo"
	"fiber/wof/app/service"
	"fiber/wof/config"
	"fiber/wof/db"
	"fiber/wof/route"
)

func main() {
	config.LoadEnv()
	logger := config.Logger(config.Env.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.ConnectDB(ctx); err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	m := metrics.Global()

	var mailer notify.Mailer
	switch config.Env.MailDriver {
	case "sendgrid":
		mailer = notify.NewSendgridMailer(config.Env.SendgridAPIKey, config.Env.MailFromName, config.Env.MailFrom)
	default:
		mailer = notify.NewConsoleMailer(logger)
	}
	notifier := notify.NewNotifier(mailer, logger, m)

	achievements := repo.NewAchievementRepo(db.GetMongo(), config.Env.MongoCollection)
	wall := board.New(achievements, board.Options{
		Retries: config.Env.SyncRetries,
		Backoff: config.Env.SyncBackoff,
		Logger:  logger,
		Metrics: m,
	})
	if err := wall.Load(ctx); err != nil {
		logger.Error().Err(err).Msg("initial board load failed, starting empty")
	}

	app := config.NewApp()
	route.SetupRoutes(app, route.Deps{
		Achievements:     achievements,
		Auth:             repo.NewAuthRepo(db.GetDB()),
		Board:            wall,
		Notifier:         notifier,
		Metrics:          m,
		Settings:         service.SettingsFrom(config.Env),
		StudentDomain:    config.Env.StudentDomain,
		ProfessorDomains: config.Env.ProfessorDomains,
	})

	go func() {
		if err := app.Listen(":" + config.Env.AppPort); err != nil {
			logger.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	if err := wall.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("board did not drain")
	}
	notifier.Wait()
	db.Close(shutdownCtx)
}
