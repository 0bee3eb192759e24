package main

import (
	"os"

	"github.com/username/finsift/src/commands"
	"github.com/username/finsift/src/config"
	"github.com/username/finsift/src/logger"
)

func main() {
	config.LoadConfig()
	logger.InitLogger(config.Cfg.LogLevel)

	if err := commands.NewRootCommand().Execute(); err != nil {
		logger.L.Error("command failed", "error", err)
		os.Exit(1)
	}
}
