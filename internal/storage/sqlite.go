// Package storage provides SQLite-based persistence for the flight log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the flight log.
type Store struct {
	db *sql.DB
}

// Flight is one finished render session.
type Flight struct {
	ID          int64
	SessionID   string
	User        string // Local user or SSH user name
	Shader      string
	Frames      int
	SimTime     float64 // Simulation time reached
	AvgFrameMS  float64
	Fins        int // Control values when the session ended
	FinalThrust float64
	Mode        string
	CreatedAt   time.Time
}

// ShaderStats contains aggregated statistics for one shader program.
type ShaderStats struct {
	Shader      string
	Flights     int
	TotalFrames int64
	MaxSimTime  float64
	AvgFrameMS  float64
	LastFlown   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS flights (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			user_name TEXT NOT NULL DEFAULT '',
			shader TEXT NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			sim_time REAL NOT NULL DEFAULT 0,
			avg_frame_ms REAL NOT NULL DEFAULT 0,
			fins INTEGER NOT NULL DEFAULT 0,
			final_thrust REAL NOT NULL DEFAULT 0,
			mode TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_flights_shader ON flights(shader);
		CREATE INDEX IF NOT EXISTS idx_flights_user ON flights(user_name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveFlight records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveFlight(f Flight) (int64, error) {
	if f.SessionID == "" {
		return 0, errors.New("storage: flight has no session id")
	}
	res, err := s.db.Exec(
		`INSERT INTO flights
		 (session_id, user_name, shader, frames, sim_time, avg_frame_ms, fins, final_thrust, mode)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.SessionID, f.User, f.Shader, f.Frames, f.SimTime, f.AvgFrameMS, f.Fins, f.FinalThrust, f.Mode,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save flight: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const flightColumns = `id, session_id, user_name, shader, frames, sim_time, avg_frame_ms,
		        fins, final_thrust, mode, created_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFlight(sc scanner) (Flight, error) {
	var f Flight
	var createdAt any
	err := sc.Scan(
		&f.ID,
		&f.SessionID,
		&f.User,
		&f.Shader,
		&f.Frames,
		&f.SimTime,
		&f.AvgFrameMS,
		&f.Fins,
		&f.FinalThrust,
		&f.Mode,
		&createdAt,
	)
	if err != nil {
		return Flight{}, err
	}
	f.CreatedAt = parseTime(createdAt)
	return f, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// FlightBySession retrieves a flight by its session ID.
// Returns nil without error when no such flight exists.
func (s *Store) FlightBySession(sessionID string) (*Flight, error) {
	row := s.db.QueryRow(
		`SELECT `+flightColumns+`
		 FROM flights
		 WHERE session_id = ?`,
		sessionID,
	)
	f, err := scanFlight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flight: %w", err)
	}
	return &f, nil
}

// RecentFlights retrieves the most recent flights, newest first.
func (s *Store) RecentFlights(limit int) ([]Flight, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryFlights(
		`SELECT `+flightColumns+`
		 FROM flights
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// UserFlights retrieves the flight history of one user, newest first.
func (s *Store) UserFlights(user string, limit int) ([]Flight, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryFlights(
		`SELECT `+flightColumns+`
		 FROM flights
		 WHERE user_name = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		user, limit,
	)
}

func (s *Store) queryFlights(query string, args ...any) ([]Flight, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query flights: %w", err)
	}
	defer rows.Close()

	var flights []Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return flights, nil
}

// ClearFlights deletes every flight flown with the given shader.
func (s *Store) ClearFlights(shader string) error {
	_, err := s.db.Exec("DELETE FROM flights WHERE shader = ?", shader)
	if err != nil {
		return fmt.Errorf("storage: cannot clear flights: %w", err)
	}
	return nil
}

// AllShaderStats retrieves statistics for every shader that has been flown.
func (s *Store) AllShaderStats() (map[string]*ShaderStats, error) {
	rows, err := s.db.Query(
		`SELECT shader, COUNT(*), SUM(frames), MAX(sim_time), AVG(avg_frame_ms), MAX(created_at)
		 FROM flights
		 GROUP BY shader`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get shader stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ShaderStats)
	for rows.Next() {
		var st ShaderStats
		var lastFlown any
		if err := rows.Scan(&st.Shader, &st.Flights, &st.TotalFrames, &st.MaxSimTime, &st.AvgFrameMS, &lastFlown); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastFlown = parseTime(lastFlown)
		stats[st.Shader] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
