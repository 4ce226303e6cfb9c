package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/iconforge/internal/config"
	"github.com/grindlemire/iconforge/internal/log"
	"github.com/grindlemire/iconforge/internal/lsp"
)

func runLSP(args []string) error {
	envCfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("lsp", flag.ExitOnError)
	logPath := fs.String("log", envCfg.LogPath, "Path to log file for debugging")
	logLevel := fs.String("log-level", envCfg.LogLevel, "Log level: debug, info, warn or error")
	dataPath := fs.String("data", "", "Path to iconforge.data.json")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Set up logging if requested. stdout carries the protocol, so logs only
	// ever go to a file.
	if *logPath != "" {
		logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer logFile.Close()
		log.SetOutput(logFile, *logLevel)
	}

	lsp.Version = version
	server := lsp.NewServer(os.Stdin, os.Stdout)
	server.SetOverrides(func(cfg *config.Config) {
		if *dataPath != "" {
			cfg.DataPath = *dataPath
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.Run(ctx)
}
