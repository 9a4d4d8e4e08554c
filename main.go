package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/go-server/internal/duel"
	"github.com/wordduel/go-server/internal/httpserver"
	"github.com/wordduel/go-server/internal/registry"
	"github.com/wordduel/go-server/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	answers, allowed := words.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	db, err := openDB(getEnv("DB_PATH", "./data/app.db"))
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer db.Close()
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	reg := registry.New(words.RandomAnswer, nil)
	reg.StartSweeper(context.Background(),
		getEnvDuration("SWEEP_INTERVAL", 10*time.Minute),
		getEnvDuration("SESSION_RETENTION", 3*time.Hour))

	svc := duel.NewService(reg, words.IsAllowed, nil)
	srv := httpserver.New(svc, db)

	port := getEnv("PORT", "5175")
	log.Info().Str("port", port).Msg("starting wordduel server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", k).Err(err).Dur("fallback", def).Msg("invalid duration, using default")
		return def
	}
	return d
}
