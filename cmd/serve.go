package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/tradelens/internal/brief"
	"github.com/sells-group/tradelens/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin profile API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		src, err := openSource(ctx, cfg.Source)
		if err != nil {
			return err
		}
		defer src.Close()

		var opts []server.Option
		if cfg.Anthropic.Key != "" {
			gen := brief.New(brief.NewMessenger(cfg.Anthropic.Key), cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
			opts = append(opts, server.WithBriefGenerator(gen))
		}

		srv := server.New(newLoader(src), cfg.Server.CORSOrigins, opts...)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		zap.L().Info("starting server",
			zap.Int("port", port),
			zap.String("source_driver", cfg.Source.Driver),
		)
		return srv.ListenAndServe(ctx, port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
