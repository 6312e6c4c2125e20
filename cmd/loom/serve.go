package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/internal/config"
	"github.com/loom-ui/loom/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Long: `Start the development server for a Loom project.

The server hosts the project's public directory, falls back to
index.html for client-side routes, and pushes live-reload
notifications to connected browsers.

Examples:
  loom serve
  loom serve --port=8080
  loom serve --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from loom.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from loom.json)")

	return cmd
}

func runServe(port int, host string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	printBanner()
	fmt.Println("  serve")
	fmt.Println()
	info("Serving %s at %s", cfg.PublicPath(), cfg.DevURL())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
	}()

	return server.New(cfg).Start(ctx)
}
