package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/tendant/chi-demo/app"
	"github.com/tendant/tv-content/pkg/tvcontent/api"
	"github.com/tendant/tv-content/pkg/tvcontent/config"
)

func main() {
	configPath := flag.String("config", "", "optional YAML/TOML/ENV config file; environment variables override it")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
		if help, err := config.Usage(); err == nil {
			fmt.Fprintln(flag.CommandLine.Output())
			fmt.Fprintln(flag.CommandLine.Output(), help)
		}
	}
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to read configuration", "err", err)
		os.Exit(1)
	}

	svc, cleanup, err := cfg.BuildService(context.Background())
	if err != nil {
		slog.Error("Failed to build content service", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer cleanup()

	router := api.NewRouter(svc, api.RouterConfig{
		Banner:      cfg.Banner,
		Development: cfg.Development(),
	})

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	server.R.Mount("/", router)

	slog.Info("Content service configured", "store", cfg.Store, "environment", cfg.Environment)

	// Start server
	server.Run()
}
