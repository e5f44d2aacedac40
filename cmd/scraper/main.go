package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"MapsScraper/internal/app"
)

func main() {
	_ = godotenv.Load()

	task := flag.String("task", "scrape", "Task to run: scrape")
	categories := flag.String("categories", "", "Comma-separated category list (defaults to config)")
	quota := flag.Int("quota", 0, "Number of listings per category (defaults to config)")
	locationsFile := flag.String("locations", "", "Path to the cities CSV (defaults to config)")
	headed := flag.Bool("headed", false, "Run the browser with a visible window")
	flag.Parse()

	application := app.New()
	defer application.Repo.Close()

	if *categories != "" {
		var selected []string
		for _, c := range strings.Split(*categories, ",") {
			if c = strings.TrimSpace(c); c != "" {
				selected = append(selected, c)
			}
		}
		application.Config.Categories = selected
	}
	if *quota > 0 {
		application.Config.Scraper.ListingsPerCategory = *quota
	}
	if *locationsFile != "" {
		application.Config.Locations.File = *locationsFile
	}
	if *headed {
		application.Config.Scraper.Headed = true
	}

	// Ctrl-C stops the run between tasks; batches already flushed survive.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Running task: %s", *task)

	switch *task {
	case "scrape":
		application.RunScraper(ctx)
	default:
		log.Fatalf("Unknown task: %s.", *task)
	}
}
