package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite" // pure Go driver

	"MapsScraper/internal/models"
)

// DBRepository is a thin layer around the database connection.
type DBRepository struct {
	DB *sql.DB
}

// InitDB opens (or creates) the database and ensures the schema exists.
func InitDB(filepath string) *DBRepository {
	db, err := sql.Open("sqlite", filepath)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	if err = db.Ping(); err != nil {
		log.Fatalf("Error pinging database: %v", err)
	}

	createBusinessesTableSQL := `
	CREATE TABLE IF NOT EXISTS businesses (
		"id" INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		"run_id" TEXT,
		"category" TEXT,
		"name" TEXT,
		"address" TEXT,
		"website" TEXT,
		"phone_number" TEXT,
		"reviews_count" INTEGER DEFAULT 0,
		"reviews_average" REAL DEFAULT 0,
		"latitude" REAL,
		"longitude" REAL,
		"scraped_at" DATETIME,
		UNIQUE(name, address, phone_number)
	);`
	if _, err = db.Exec(createBusinessesTableSQL); err != nil {
		log.Fatalf("Error creating businesses table: %v", err)
	}

	createRunsTableSQL := `
	CREATE TABLE IF NOT EXISTS runs (
		"id" TEXT NOT NULL PRIMARY KEY,
		"status" TEXT,
		"categories" TEXT,
		"quota" INTEGER,
		"started_at" DATETIME,
		"finished_at" DATETIME,
		"total_accepted" INTEGER DEFAULT 0
	);`
	if _, err = db.Exec(createRunsTableSQL); err != nil {
		log.Fatalf("Error creating runs table: %v", err)
	}

	return &DBRepository{DB: db}
}

func (repo *DBRepository) Close() {
	repo.DB.Close()
}

// CreateRun records the start of an orchestration run.
func (repo *DBRepository) CreateRun(run models.Run) error {
	_, err := repo.DB.Exec(
		`INSERT INTO runs (id, status, categories, quota, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Status, strings.Join(run.Categories, ","), run.Quota, run.StartedAt,
	)
	return err
}

// FinishRun finalizes a run row with its terminal status and totals.
func (repo *DBRepository) FinishRun(id, status string, totalAccepted int) error {
	_, err := repo.DB.Exec(
		`UPDATE runs SET status = ?, finished_at = ?, total_accepted = ? WHERE id = ?`,
		status, time.Now(), totalAccepted, id,
	)
	return err
}

// SaveBusinesses appends one category batch inside a transaction, so a write
// failure leaves no partial batch behind. The identity tuple is unique
// across runs; a business seen in an earlier run is silently skipped.
func (repo *DBRepository) SaveBusinesses(runID string, businesses []models.Business) error {
	if len(businesses) == 0 {
		return nil
	}

	tx, err := repo.DB.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
	INSERT INTO businesses (
		run_id, category, name, address, website, phone_number,
		reviews_count, reviews_average, latitude, longitude, scraped_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(name, address, phone_number) DO NOTHING;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, b := range businesses {
		if _, err := stmt.Exec(
			runID, b.Category, b.Name, b.Address, b.Website, b.PhoneNumber,
			b.ReviewsCount, b.ReviewsAverage, nullableFloat(b.Latitude), nullableFloat(b.Longitude), b.ScrapedAt,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("save business %q: %w", b.Name, err)
		}
	}
	return tx.Commit()
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// CountBusinesses returns how many stored businesses match the filters.
func (repo *DBRepository) CountBusinesses(filters models.BusinessFilters) (int, error) {
	query, args := buildWhere(`SELECT COUNT(*) FROM businesses WHERE 1=1`, filters)
	var count int
	if err := repo.DB.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetFilteredBusinesses retrieves stored businesses matching the filters.
func (repo *DBRepository) GetFilteredBusinesses(filters models.BusinessFilters) ([]models.Business, error) {
	query, args := buildWhere(`
	SELECT id, run_id, category, name, address, website, phone_number,
	       reviews_count, reviews_average, latitude, longitude, scraped_at
	FROM businesses WHERE 1=1`, filters)

	query += " ORDER BY scraped_at DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
		if filters.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filters.Offset)
		}
	}

	rows, err := repo.DB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute filtered query: %w", err)
	}
	defer rows.Close()

	var businesses []models.Business
	for rows.Next() {
		var b models.Business
		var lat, lng sql.NullFloat64
		if err := rows.Scan(
			&b.ID, &b.RunID, &b.Category, &b.Name, &b.Address, &b.Website, &b.PhoneNumber,
			&b.ReviewsCount, &b.ReviewsAverage, &lat, &lng, &b.ScrapedAt,
		); err != nil {
			log.Warnf("Error scanning business row: %v", err)
			continue
		}
		if lat.Valid {
			b.Latitude = &lat.Float64
		}
		if lng.Valid {
			b.Longitude = &lng.Float64
		}
		businesses = append(businesses, b)
	}
	return businesses, rows.Err()
}

// GetRuns retrieves run history, newest first.
func (repo *DBRepository) GetRuns() ([]models.Run, error) {
	rows, err := repo.DB.Query(`
	SELECT id, status, categories, quota, started_at, finished_at, total_accepted
	FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var r models.Run
		var categories string
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Status, &categories, &r.Quota, &r.StartedAt, &finished, &r.TotalAccepted); err != nil {
			log.Warnf("Error scanning run row: %v", err)
			continue
		}
		if finished.Valid {
			r.FinishedAt = finished.Time
		}
		if categories != "" {
			r.Categories = strings.Split(categories, ",")
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func buildWhere(base string, filters models.BusinessFilters) (string, []any) {
	var conditions []string
	var args []any

	if filters.RunID != "" {
		conditions = append(conditions, "run_id = ?")
		args = append(args, filters.RunID)
	}
	if filters.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filters.Category)
	}
	if filters.MinReviews > 0 {
		conditions = append(conditions, "reviews_count >= ?")
		args = append(args, filters.MinReviews)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}
	return base, args
}
