package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	amqppub "meditour_admin/internal/adapters/amqp"
	server "meditour_admin/internal/adapters/http_server"
	"meditour_admin/internal/adapters/observability"
	redisad "meditour_admin/internal/adapters/redis"
	"meditour_admin/internal/app"
	"meditour_admin/internal/shared"
	mysqlrepo "meditour_admin/internal/storage/mysql"
	"meditour_admin/internal/template"
)

func main() {
	_ = godotenv.Load()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	events := amqppub.New(cfg.AMQPURL, cfg.PublishRPS)

	engine := template.New(template.DefaultSet())
	wf := app.NewReservationWorkflow(repo, repo, repo, engine, events)
	q := app.NewQueryService(repo, repo, cache, cfg.CacheTTL)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{W: wf, Q: q})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
