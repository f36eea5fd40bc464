// cmd/shopd/main.go
//
// shopd is the thin asset server: it serves the storefront's static files
// and the /health endpoint. It holds no business logic at all — the cart
// lives entirely in the client.

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kingrea/techshop/internal/config"
	"github.com/kingrea/techshop/internal/web"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.New(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	settings := web.SettingsFromConfig(cfg)
	server := web.NewServer(settings, web.WithLogger(log.Default()))
	if err := server.Start(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	}
	log.Printf("🚀 %s server is running on %s", cfg.StoreName(), server.BaseURL())
	log.Printf("📦 Open your browser and visit: %s", server.BaseURL())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
