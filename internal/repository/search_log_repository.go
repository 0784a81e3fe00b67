package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gpsinspection/station-backend-go/internal/models"
)

// SearchLogRepository records executed searches for frequency analysis
type SearchLogRepository struct {
	db *sql.DB
}

// NewSearchLogRepository creates a new search log repository
func NewSearchLogRepository(db *sql.DB) *SearchLogRepository {
	return &SearchLogRepository{db: db}
}

// Insert records one executed search.
func (r *SearchLogRepository) Insert(entry *models.SearchLog) error {
	query := `
		INSERT INTO search_logs (
			session_id, user_id, search_query, search_type,
			results_count, selected_station_id
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		entry.SessionID,
		entry.UserID,
		entry.Query,
		entry.SearchType,
		entry.ResultsCount,
		nullString(entry.SelectedStationID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert search log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	entry.ID = int(id)
	return nil
}

// PopularQueries returns the most frequent distinct queries logged since the
// given time, most frequent first.
func (r *SearchLogRepository) PopularQueries(since time.Time, limit int) ([]string, error) {
	query := `
		SELECT search_query FROM search_logs
		WHERE created_at >= ?
		GROUP BY search_query
		ORDER BY COUNT(*) DESC, MAX(created_at) DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular searches: %w", err)
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, fmt.Errorf("failed to scan popular search: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate popular searches: %w", err)
	}

	return queries, nil
}
