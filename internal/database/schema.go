package database

import (
	"database/sql"
	"fmt"
)

// Latitude and longitude are stored as separate REAL columns so bounding-box
// range queries can use the composite index.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS wireless_stations (
		station_id TEXT PRIMARY KEY,
		station_name TEXT NOT NULL,
		station_alias TEXT,
		station_type TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		gps_accuracy REAL,
		address TEXT,
		region_name TEXT,
		detailed_location TEXT,
		registration_status TEXT DEFAULT '진행중',
		inspector_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_accessed DATETIME,
		access_count INTEGER DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS search_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		search_query TEXT NOT NULL,
		search_type TEXT,
		results_count INTEGER,
		selected_station_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_station_search ON wireless_stations(station_name, station_alias)`,
	`CREATE INDEX IF NOT EXISTS idx_location_search ON wireless_stations(latitude, longitude)`,
	`CREATE INDEX IF NOT EXISTS idx_region_search ON wireless_stations(region_name, station_type)`,
	`CREATE INDEX IF NOT EXISTS idx_status_search ON wireless_stations(registration_status, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_search_logs_query ON search_logs(search_query, created_at)`,
}

// InitSchema creates the registry tables and indexes if they do not exist.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
