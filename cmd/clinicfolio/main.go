package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clinicfolio/clinicfolio"
)

func main() {
	cfg := clinicfolio.LoadConfig()
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Str("addr", cfg.Addr).Msg("starting clinicfolio")

	app := clinicfolio.New(cfg)
	if err := app.Start(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// setupLogger configures the global zerolog logger: human-readable console
// output in development, JSON in production.
func setupLogger(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
