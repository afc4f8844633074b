package main

import (
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(global *globalOptions) *cobra.Command {
	var (
		port       int
		useBrowser bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  "Start an HTTP server exposing POST /analyze, POST /analyze-pdf, POST /analyze/stream, GET /skills and GET /health.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("use-browser") {
				cfg.Fetch.UseBrowser = useBrowser
			}

			analyzer, err := newAnalyzer(cfg)
			if err != nil {
				return err
			}

			logger.Info().
				Int("port", cfg.Server.Port).
				Int("skills", analyzer.Dictionary().Len()).
				Bool("use_browser", cfg.Fetch.UseBrowser).
				Msg("starting skillmatch server")

			return server.New(cfg, analyzer).Run(cmd.Context())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port to listen on")
	cmd.Flags().BoolVar(&useBrowser, "use-browser", false, "Render JavaScript-heavy job postings in headless Chrome")
	return cmd
}
