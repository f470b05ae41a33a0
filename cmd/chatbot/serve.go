package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jzq1291/chatbot/pkg/log"
	"github.com/jzq1291/chatbot/pkg/srv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chatbot HTTP service",
	Long:  `Initializes storage, registers the configured completion providers and serves the chat and knowledge APIs until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting chatbot")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("chatbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
