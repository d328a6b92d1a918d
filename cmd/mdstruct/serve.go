package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/dgallion1/mdstruct/internal/api"
	"github.com/dgallion1/mdstruct/internal/config"
	"github.com/dgallion1/mdstruct/internal/logging"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  PORT                     Server port to listen on (default: 8090)
  MDSTRUCT_API_KEY         Bearer token required on /api when set
  WORKER_COUNT             Job workers (default: 4)
  MAX_QUEUE_SIZE           Queued jobs before submissions are rejected (default: 100)
  MAX_UPLOAD_BYTES         Largest accepted document (default: 50MB)
  DEFAULT_CHUNK_SIZE       Target chunk size in tokens (default: 1500)
  DEFAULT_CHUNK_OVERLAP    Chunk overlap in tokens, 0 disables (default: 200)
  DEFAULT_MIN_CHUNK        Smallest section kept as its own chunk (default: 100)
  JOB_TTL                  How long finished jobs are kept (default: 1h)
  PDF_FALLBACK_PDFTOTEXT   Use pdftotext when the PDF library fails (default: true)
  LOG_LEVEL                debug, info, warn, error (default: info)
  LOG_FORMAT               json, text (default: json)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg := config.Load()
			if port > 0 {
				cfg.Port = strconv.Itoa(port)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logging.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return api.ListenAndServe(ctx, cfg, log)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8090)")

	return cmd
}
