package server

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"MapsScraper/internal/database"
	"MapsScraper/internal/models"
	"MapsScraper/pkg/config"
)

// Start serves the scraped businesses and run history over HTTP.
func Start(repo *database.DBRepository, cfg *config.Config) {
	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(apiKeyMiddleware(cfg.Server.ApiKey))
	api.HandleFunc("/businesses", businessesHandler(repo)).Methods(http.MethodGet)
	api.HandleFunc("/runs", runsHandler(repo)).Methods(http.MethodGet)

	addr := ":" + cfg.Server.Port
	log.Infof("Starting API server on %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// apiKeyMiddleware rejects requests without the configured key. An empty
// configured key leaves the API open, which is the local-use default.
func apiKeyMiddleware(key string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key != "" && r.Header.Get("X-Api-Key") != key {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func businessesHandler(repo *database.DBRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryParams := r.URL.Query()
		page, _ := strconv.Atoi(queryParams.Get("page"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(queryParams.Get("limit"))
		if limit < 1 {
			limit = 20
		}
		minReviews, _ := strconv.Atoi(queryParams.Get("min_reviews"))

		filters := models.BusinessFilters{
			RunID:      queryParams.Get("run_id"),
			Category:   queryParams.Get("category"),
			MinReviews: minReviews,
			Limit:      limit,
			Offset:     (page - 1) * limit,
		}

		total, err := repo.CountBusinesses(filters)
		if err != nil {
			http.Error(w, "Failed to count businesses", http.StatusInternalServerError)
			return
		}

		businesses, err := repo.GetFilteredBusinesses(filters)
		if err != nil {
			http.Error(w, "Failed to get businesses", http.StatusInternalServerError)
			return
		}

		payload := make([]models.BusinessPayload, 0, len(businesses))
		for _, b := range businesses {
			payload = append(payload, b.Payload())
		}

		writeJSON(w, models.BusinessResponse{
			Data: payload,
			Pagination: models.Pagination{
				TotalPages:  int(math.Ceil(float64(total) / float64(limit))),
				CurrentPage: page,
			},
		})
	}
}

func runsHandler(repo *database.DBRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		runs, err := repo.GetRuns()
		if err != nil {
			http.Error(w, "Failed to get runs", http.StatusInternalServerError)
			return
		}
		writeJSON(w, runs)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
