package main

import (
	"context"
	"flag"
	"log"
	"os"

	"shoplist/internal/cli"
	"shoplist/internal/client"
	"shoplist/internal/shared"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "./shoplist-client.json", "path to client config json")
	serverURL := flag.String("server", "", "server base URL (overrides config)")
	save := flag.Bool("save", false, "write the effective config back to -config")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := shared.LoadClientConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *save {
		if err := shared.SaveClientConfig(*configPath, cfg); err != nil {
			log.Fatal(err)
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp(os.Stderr)
		os.Exit(2)
	}

	os.Exit(cli.Run(context.Background(), args, client.New(cfg), os.Stdout, os.Stderr))
}
