package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/mmcdole/bookshelf/internal/cli"
	"github.com/mmcdole/bookshelf/internal/config"
	"github.com/mmcdole/bookshelf/internal/library"
	"github.com/mmcdole/bookshelf/internal/log"
	"github.com/mmcdole/bookshelf/internal/store"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("bookshelf %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting bookshelf", "version", Version, "backend", cfg.Storage.Backend, "path", cfg.Storage.Path)

	persister, err := store.Open(cfg.Storage.Backend, cfg.Storage.Path, logger)
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer persister.Close()

	svc := library.NewService(persister, logger)
	session := cli.NewSession(svc, os.Stdin, os.Stdout, cli.Options{
		Suggestions: cfg.UI.Suggestions,
		Quiet:       !term.IsTerminal(int(os.Stdin.Fd())),
		Logger:      logger,
	})

	if err := session.Run(); err != nil {
		logger.Error("session ended with error", "error", err)
		return err
	}

	logger.Info("shutting down")
	return nil
}
