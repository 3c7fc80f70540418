package main

import (
	"flag"
	"log"

	"authgate/internal/config"
	"authgate/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.StringVar(configPath, "c", *configPath, "path to the configuration file (shorthand)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize server: %v", err)
	}

	if err := srv.Start(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
