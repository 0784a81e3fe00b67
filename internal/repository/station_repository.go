package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gpsinspection/station-backend-go/internal/models"
	"github.com/gpsinspection/station-backend-go/internal/spatial"
)

// ErrStationNotFound is returned when a station ID does not exist.
var ErrStationNotFound = errors.New("station not found")

const stationColumns = `station_id, station_name, station_alias, station_type,
	latitude, longitude, gps_accuracy, address, region_name, detailed_location,
	registration_status, inspector_id, created_at, updated_at, last_accessed, access_count`

// StationRepository handles database operations for wireless stations
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository creates a new station repository
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// GenerateStationID returns the next station ID in WS + 5-digit form
// (e.g. WS00123), one past the highest existing sequence number.
func (r *StationRepository) GenerateStationID() (string, error) {
	query := `
		SELECT station_id FROM wireless_stations
		WHERE station_id LIKE 'WS%'
		ORDER BY CAST(SUBSTR(station_id, 3) AS INTEGER) DESC
		LIMIT 1
	`

	var lastID string
	err := r.db.QueryRow(query).Scan(&lastID)
	if err == sql.ErrNoRows {
		return "WS00001", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to find last station id: %w", err)
	}

	var lastNumber int
	if _, err := fmt.Sscanf(lastID, "WS%d", &lastNumber); err != nil {
		return "", fmt.Errorf("malformed station id %q: %w", lastID, err)
	}

	return fmt.Sprintf("WS%05d", lastNumber+1), nil
}

// Insert registers a new station, generating its ID when empty, and returns
// the station ID.
func (r *StationRepository) Insert(station *models.Station) (string, error) {
	if station.StationID == "" {
		id, err := r.GenerateStationID()
		if err != nil {
			return "", err
		}
		station.StationID = id
	}
	if station.Status == "" {
		station.Status = models.StatusInProgress
	}

	now := time.Now()
	station.CreatedAt = now
	station.UpdatedAt = now

	query := `
		INSERT INTO wireless_stations (
			station_id, station_name, station_alias, station_type,
			latitude, longitude, gps_accuracy, address, region_name,
			detailed_location, registration_status, inspector_id,
			created_at, updated_at, access_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
	`

	_, err := r.db.Exec(query,
		station.StationID,
		station.Name,
		nullString(station.Aliases),
		station.Type,
		station.Latitude,
		station.Longitude,
		nullFloat(station.AccuracyMeters),
		nullString(station.Address),
		nullString(station.RegionName),
		nullString(station.DetailedLocation),
		station.Status,
		station.InspectorID,
		now,
		now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert station: %w", err)
	}

	return station.StationID, nil
}

// GetByID retrieves a station and bumps its access counter.
func (r *StationRepository) GetByID(stationID string) (*models.Station, error) {
	query := fmt.Sprintf(`SELECT %s FROM wireless_stations WHERE station_id = ?`, stationColumns)

	station, err := scanStation(r.db.QueryRow(query, stationID))
	if err == sql.ErrNoRows {
		return nil, ErrStationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get station: %w", err)
	}

	r.touchAccess(stationID)
	return station, nil
}

// touchAccess records a point lookup; failures only degrade the counter.
func (r *StationRepository) touchAccess(stationID string) {
	query := `
		UPDATE wireless_stations
		SET last_accessed = ?, access_count = access_count + 1
		WHERE station_id = ?
	`
	if _, err := r.db.Exec(query, time.Now(), stationID); err != nil {
		log.Printf("failed to update access info for %s: %v", stationID, err)
	}
}

// FindByNameLike searches stations whose name or alias contains the pattern,
// newest first, returning the page and the total match count.
func (r *StationRepository) FindByNameLike(pattern string, page, pageSize int) ([]models.Station, int, error) {
	like := "%" + pattern + "%"

	var total int
	countQuery := `
		SELECT COUNT(*) FROM wireless_stations
		WHERE station_name LIKE ? OR station_alias LIKE ?
	`
	if err := r.db.QueryRow(countQuery, like, like).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stations: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM wireless_stations
		WHERE station_name LIKE ? OR station_alias LIKE ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, stationColumns)

	stations, err := r.queryStations(query, like, like, pageSize, pageOffset(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	return stations, total, nil
}

// FindInBoundingBox returns all stations inside the lat/lon box. The box is
// a prefilter; callers still check exact distance.
func (r *StationRepository) FindInBoundingBox(box spatial.BoundingBox) ([]models.Station, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM wireless_stations
		WHERE latitude BETWEEN ? AND ?
		AND longitude BETWEEN ? AND ?
	`, stationColumns)

	return r.queryStations(query, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
}

// FindByStatus lists stations by registration status; "all" lists everything.
func (r *StationRepository) FindByStatus(status string, page, pageSize int) ([]models.Station, int, error) {
	where := "WHERE registration_status = ?"
	args := []interface{}{status}
	if status == "all" {
		where = ""
		args = nil
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM wireless_stations %s", where)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stations by status: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM wireless_stations %s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, stationColumns, where)

	args = append(args, pageSize, pageOffset(page, pageSize))
	stations, err := r.queryStations(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return stations, total, nil
}

// FindByRegionAndType searches by region name and/or station type with
// partial matching. Empty arguments are ignored.
func (r *StationRepository) FindByRegionAndType(region, stationType string, page, pageSize int) ([]models.Station, int, error) {
	var conditions []string
	var args []interface{}

	if region != "" {
		conditions = append(conditions, "region_name LIKE ?")
		args = append(args, "%"+region+"%")
	}
	if stationType != "" {
		conditions = append(conditions, "station_type LIKE ?")
		args = append(args, "%"+stationType+"%")
	}

	where := "1=1"
	if len(conditions) > 0 {
		where = strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM wireless_stations WHERE %s", where)
	if err := r.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count stations by region/type: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM wireless_stations
		WHERE %s
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, stationColumns, where)

	args = append(args, pageSize, pageOffset(page, pageSize))
	stations, err := r.queryStations(query, args...)
	if err != nil {
		return nil, 0, err
	}
	return stations, total, nil
}

// Update rewrites the mutable attributes of a station.
func (r *StationRepository) Update(station *models.Station) error {
	query := `
		UPDATE wireless_stations SET
			station_name = ?, station_alias = ?, station_type = ?,
			latitude = ?, longitude = ?, gps_accuracy = ?,
			address = ?, region_name = ?, detailed_location = ?,
			registration_status = ?, updated_at = ?
		WHERE station_id = ?
	`

	result, err := r.db.Exec(query,
		station.Name,
		nullString(station.Aliases),
		station.Type,
		station.Latitude,
		station.Longitude,
		nullFloat(station.AccuracyMeters),
		nullString(station.Address),
		nullString(station.RegionName),
		nullString(station.DetailedLocation),
		station.Status,
		time.Now(),
		station.StationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update station: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrStationNotFound
	}
	return nil
}

// Delete removes a station by ID.
func (r *StationRepository) Delete(stationID string) error {
	result, err := r.db.Exec("DELETE FROM wireless_stations WHERE station_id = ?", stationID)
	if err != nil {
		return fmt.Errorf("failed to delete station: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrStationNotFound
	}
	return nil
}

func (r *StationRepository) queryStations(query string, args ...interface{}) ([]models.Station, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query stations: %w", err)
	}
	defer rows.Close()

	var stations []models.Station
	for rows.Next() {
		station, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan station: %w", err)
		}
		stations = append(stations, *station)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stations: %w", err)
	}

	return stations, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStation(s scanner) (*models.Station, error) {
	var station models.Station
	var alias, address, region, detail sql.NullString
	var accuracy sql.NullFloat64
	var lastAccessed sql.NullTime

	err := s.Scan(
		&station.StationID,
		&station.Name,
		&alias,
		&station.Type,
		&station.Latitude,
		&station.Longitude,
		&accuracy,
		&address,
		&region,
		&detail,
		&station.Status,
		&station.InspectorID,
		&station.CreatedAt,
		&station.UpdatedAt,
		&lastAccessed,
		&station.AccessCount,
	)
	if err != nil {
		return nil, err
	}

	station.Aliases = alias.String
	station.Address = address.String
	station.RegionName = region.String
	station.DetailedLocation = detail.String
	if accuracy.Valid {
		station.AccuracyMeters = &accuracy.Float64
	}
	if lastAccessed.Valid {
		station.LastAccessedAt = &lastAccessed.Time
	}

	return &station, nil
}

func pageOffset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}
