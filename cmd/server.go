package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	app "pantry-timeclock/internal"
	"pantry-timeclock/internal/config"
	"pantry-timeclock/internal/notify"
	"pantry-timeclock/internal/storage"
	"pantry-timeclock/internal/timeclock"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the time tracking server",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Starting time tracking server...")
		ServerMain(provider)
	},
}

// Initialize logger
func initLogger(cfg *config.Config) *slog.Logger {
	// Determine level from config and set it on the handler options.
	var level slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "INFO":
		level = slog.LevelInfo
	case "WARN", "WARNING":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
		println("Invalid log level in config, defaulting to INFO")
	}
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	slog.Debug("Logger initialized", "level", level.String())
	return logger
}

func ServerMain(storageProvider storage.Provider) {

	if config.Cfg == nil {
		panic("Config not initialized.")
	}

	if storageProvider == nil {
		slog.Error("Storage provider is nil")
		os.Exit(1)
	}

	mailer := notify.NewMailer(config.Cfg.Email)
	if mailer == nil {
		slog.Info("Email notifications disabled")
	}

	// notify.NewMailer returns a typed nil when disabled; keep the interface nil in that case.
	var notifier timeclock.Notifier
	if mailer != nil {
		notifier = mailer
	}

	svc := timeclock.NewService(storageProvider, config.Cfg, notifier)

	server := app.HTTPServer(svc)
	server.Run()
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
