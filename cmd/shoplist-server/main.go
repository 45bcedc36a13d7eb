package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shoplist/internal/server"
	"shoplist/internal/shared"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "./shoplist.yaml", "path to server config yaml (optional)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	cfg, err := shared.LoadServerConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := log.Default()

	// Storage must be usable before we listen; there is no recovery path.
	store, closeStore, err := server.OpenStore(cfg, logger)
	if err != nil {
		log.Fatalf("failed to initialize %s store: %v", cfg.Backend, err)
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	api := server.NewAPI(store, server.StatusMapperFor(cfg.ErrorMode), logger)
	api.MaxBodyBytes = cfg.MaxBodyBytes

	srv := server.NewHTTPServer(api, server.ServerOptions{
		Addr:   cfg.Addr,
		Logger: logger,
	})

	log.Printf("backend: %s", cfg.Backend)
	switch cfg.Backend {
	case shared.BackendFile:
		log.Printf("data file: %s", cfg.DataPath())
	case shared.BackendSQLite:
		log.Printf("db: %s", cfg.DBPath)
	}
	log.Printf("error mode: %s", cfg.ErrorMode)

	errc := srv.Start()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errc:
		if err != nil {
			_ = closeStore()
			log.Fatalf("listen failed: %v", err)
		}
	case sig := <-signals:
		log.Printf("received %v, shutting down", sig)
		if err := srv.Stop(context.Background()); err != nil {
			log.Printf("graceful shutdown error: %v", err)
		}
	}
}
