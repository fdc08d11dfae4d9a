package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	amqppub "meditour_admin/internal/adapters/amqp"
	"meditour_admin/internal/adapters/observability"
	"meditour_admin/internal/app"
	"meditour_admin/internal/shared"
	mysqlrepo "meditour_admin/internal/storage/mysql"
)

// The dispatcher periodically drains undispatched consultation messages to
// the delivery queue. It is the "another subsystem" side of the hand-off:
// the API only persists messages, this process moves them out.
func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv, "dispatcher")

	log.Info().
		Int("batch", cfg.DispatchBatch).
		Int("workers", cfg.DispatchWorkers).
		Dur("interval", cfg.DispatchInterval).
		Msg("dispatcher starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	pub := amqppub.New(cfg.AMQPURL, cfg.PublishRPS)
	svc := app.NewDispatchService(repo, pub)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(cfg.DispatchInterval)
	defer ticker.Stop()

	for {
		n, err := svc.Sweep(ctx, cfg.DispatchBatch, int64(cfg.DispatchWorkers))
		if err != nil {
			log.Warn().Err(err).Msg("sweep failed")
		} else if n > 0 {
			log.Info().Int("dispatched", n).Msg("sweep ok")
		}

		select {
		case <-ctx.Done():
			log.Info().Msg("dispatcher stopping")
			return
		case <-ticker.C:
		}
	}
}
