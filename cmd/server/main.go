package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/mdstruct/internal/api"
	"github.com/dgallion1/mdstruct/internal/config"
	"github.com/dgallion1/mdstruct/internal/logging"
)

func main() {
	dotenvErr := config.LoadDotEnv(os.Getenv("MDSTRUCT_ENV_FILE"))

	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
	if dotenvErr != nil {
		log.Warn("ignoring .env file", "error", dotenvErr)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := api.ListenAndServe(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
