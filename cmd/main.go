package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "flashbot",
	Short:        "Flashcard trainer with weather lookup",
	Long:         "flashbot serves language flashcards, quizzes and weather reports over Telegram and a JSON HTTP API.",
	SilenceUsage: true,
}

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), frontends{bot: true})
	},
}

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), frontends{api: true})
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Telegram bot and the HTTP API together",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), frontends{bot: true, api: true})
	},
}

func init() {
	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(runCmd)
}

func setupLogger(env string) *zap.Logger {
	var logger *zap.Logger
	if env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	return logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
