package main

import (
	"github.com/spf13/cobra"

	"github.com/draftsmith/draftsmith/internal/home"
	"github.com/draftsmith/draftsmith/internal/server"
	"github.com/draftsmith/draftsmith/internal/store"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the draftsmith server",
	Long: `Start the draftsmith HTTP server.

The server provides:
  - POST /api/v1/draft              - Run the full drafting pipeline
  - POST /api/v1/formatting/inspect - Report a .docx file's formatting
  - GET  /health                    - Basic server health check

Examples:
  draftsmith serve                 # Start on default port 8000
  draftsmith serve --port 3000     # Start on custom port
  draftsmith serve --host 0.0.0.0  # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cm, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := cm.Get()
		logger := newLogger(cfg.LogLevel)

		storageDir := cfg.Storage.Dir
		if storageDir == "" {
			storageDir = h.StoragePath()
		}

		host, port := cfg.Server.Host, cfg.Server.Port
		if cmd.Flags().Changed("host") {
			host = serveHost
		}
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			ConfigManager: cm,
			TemplateStore: store.NewTemplateStore(storageDir, cfg.Storage.PerRequest),
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		cm.WatchConfig()

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "Port to listen on")

	rootCmd.AddCommand(serveCmd)
}
