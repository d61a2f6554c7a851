package main

import (
	"ad-campaign-analyzer/internal/app"
	"ad-campaign-analyzer/internal/config"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg.Server.LogLevel)
	app.Run(cfg)
}
