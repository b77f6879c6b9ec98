package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"relaygate/internal/config"
	"relaygate/internal/logging"
	"relaygate/internal/metrics"
	"relaygate/internal/proxy"
)

func main() {
	configPath := flag.String("config", "./configs/relaygate.yaml", "path to config file")
	flag.Parse()

	// .env is a local-dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	metrics.Init()
	logger := logging.New()

	app, err := proxy.NewBuilder(cfg, logger).Build()
	if err != nil {
		log.Fatalf("build proxy: %v", err)
	}

	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: app.Handler,
	}

	printBanner(cfg)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "err", err.Error())
	}

	app.Store.Clear(context.Background())
}

func printBanner(cfg *config.Config) {
	fmt.Printf("relaygate listening on %s\n", cfg.Address())
	fmt.Printf("  proxying %s%s* (cache TTL %s)\n", cfg.Upstream.BaseURL, cfg.Upstream.PathPrefix, cfg.Cache.TTL)
	if cfg.APIKeyConfigured() {
		fmt.Println("  upstream API key: configured")
	} else {
		fmt.Println("  upstream API key: NOT configured (callers must send X-API-Key)")
	}
}
