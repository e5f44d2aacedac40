package config

import (
	"os"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// ScraperConfig holds general scrape-run settings.
type ScraperConfig struct {
	Workers string `yaml:"workers"`
	// Headed opts into a visible browser window; the default is headless.
	Headed              bool   `yaml:"headed"`
	ListingsPerCategory int    `yaml:"listings_per_category"`
	SettleDelayMs       int    `yaml:"settle_delay_ms"`
	ScrollDelayMs       int    `yaml:"scroll_delay_ms"`
	ScrollDelta         int    `yaml:"scroll_delta"`
	MaxScrollRounds     int    `yaml:"max_scroll_rounds"`
	StalledScrollLimit  int    `yaml:"stalled_scroll_limit"`
}

// MapsConfig holds settings specific to the map site being scraped.
type MapsConfig struct {
	BaseURL           string `yaml:"base_url"`
	NavigateTimeoutMs int    `yaml:"navigate_timeout_ms"`
	SearchTimeoutMs   int    `yaml:"search_timeout_ms"`
	ElementTimeoutMs  int    `yaml:"element_timeout_ms"`
}

// OutputConfig holds persistence destinations.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	CSVName  string `yaml:"csv_name"`
	Database string `yaml:"database"`
}

// Config is the complete structure for the config.yml file.
type Config struct {
	Scraper    ScraperConfig `yaml:"scraper"`
	Maps       MapsConfig    `yaml:"maps"`
	Output     OutputConfig  `yaml:"output"`
	Categories []string      `yaml:"categories"`
	Locations  struct {
		File string `yaml:"file"`
	} `yaml:"locations"`
	Server struct {
		Port   string `yaml:"port"`
		ApiKey string `yaml:"api_key"`
	} `yaml:"server"`
}

// DefaultCategories is the built-in category list used when the config file
// does not select its own.
var DefaultCategories = []string{
	"Real Estate companies", "Charity/Non-Profits", "Portfolio sites for Instagram artists",
	"Local Restaurant chains", "Personal Injury Law Firms", "Independent insurance sites",
	"Landscaping/Fertilizer", "Painting", "Power Washing", "Car Wash", "Axe Throwing", "Gun Ranges/Stores",
	"Currency Exchanges/Check Cashing", "Construction Materials Companies", "Gyms", "Salons with multiple locations",
	"Eyebrow Microblading", "Estheticians", "Orthodontists", "Used Car dealerships", "Clothing Brand", "Cut & Sew", "Embroidery",
}

// LoadConfig reads config.yml, applies defaults and env overrides.
func LoadConfig(filepath string) *Config {
	var cfg Config
	data, err := os.ReadFile(filepath)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error unmarshalling config YAML: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("Error reading config file: %v", err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.Scraper.Workers == "" {
		c.Scraper.Workers = "1"
	}
	if c.Scraper.ListingsPerCategory <= 0 {
		c.Scraper.ListingsPerCategory = 10
	}
	if c.Scraper.SettleDelayMs <= 0 {
		c.Scraper.SettleDelayMs = 2000
	}
	if c.Scraper.ScrollDelayMs <= 0 {
		c.Scraper.ScrollDelayMs = 3000
	}
	if c.Scraper.ScrollDelta <= 0 {
		c.Scraper.ScrollDelta = 5000
	}
	if c.Scraper.MaxScrollRounds <= 0 {
		c.Scraper.MaxScrollRounds = 100
	}
	if c.Scraper.StalledScrollLimit <= 0 {
		c.Scraper.StalledScrollLimit = 2
	}
	if c.Maps.BaseURL == "" {
		c.Maps.BaseURL = "https://www.google.com/maps"
	}
	if c.Maps.NavigateTimeoutMs <= 0 {
		c.Maps.NavigateTimeoutMs = 30000
	}
	if c.Maps.SearchTimeoutMs <= 0 {
		c.Maps.SearchTimeoutMs = 7000
	}
	if c.Maps.ElementTimeoutMs <= 0 {
		c.Maps.ElementTimeoutMs = 10000
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "output"
	}
	if c.Output.CSVName == "" {
		c.Output.CSVName = "Scraped_results"
	}
	if c.Output.Database == "" {
		c.Output.Database = "businesses.db"
	}
	if len(c.Categories) == 0 {
		c.Categories = DefaultCategories
	}
	if c.Locations.File == "" {
		c.Locations.File = "uscities.csv"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
}

func (c *Config) applyEnv() {
	if key := os.Getenv("SERVER_API_KEY"); key != "" {
		c.Server.ApiKey = key
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		c.Server.Port = port
	}
}
