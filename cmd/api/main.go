package main

import (
	"os"

	"docassist/internal/bootstrap"
	"docassist/internal/shared/config"
	"docassist/internal/shared/server"
	"docassist/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer telemetry.Sync()

	if err := cfg.Validate(); err != nil {
		telemetry.Error("config.invalid", map[string]any{"error": err})
		os.Exit(1)
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"error": err})
		os.Exit(1)
	}

	addr := server.Addr(cfg.Port)
	telemetry.Info("api.start", map[string]any{"addr": addr})

	if err := app.Router.Run(addr); err != nil {
		telemetry.Error("api.stopped", map[string]any{"error": err})
		os.Exit(1)
	}
}
