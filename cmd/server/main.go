package main

import (
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"MapsScraper/internal/database"
	"MapsScraper/internal/server"
	"MapsScraper/pkg/config"
)

func main() {
	_ = godotenv.Load()

	// The server loads its own config and connects to the same database the
	// scraper writes to.
	cfg := config.LoadConfig("config.yml")

	repo := database.InitDB(cfg.Output.Database)
	defer repo.Close()

	log.Info("Starting business results API server...")
	server.Start(repo, cfg)
}
