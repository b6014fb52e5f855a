package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"dewy/internal/models"
	"dewy/internal/routine"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id           TEXT PRIMARY KEY,
	name         TEXT NOT NULL,
	timing       TEXT NOT NULL,
	days         TEXT NOT NULL,
	product_type TEXT NOT NULL,
	sort_order   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_logs (
	date            TEXT PRIMARY KEY,
	completed       INTEGER NOT NULL DEFAULT 0,
	note            TEXT NOT NULL DEFAULT '',
	skin_conditions TEXT,
	machine_modes   TEXT,
	custom_routine  TEXT,
	completed_at    TEXT
);

CREATE TABLE IF NOT EXISTS weekly_schedule (
	weekday       INTEGER PRIMARY KEY,
	theme         TEXT NOT NULL DEFAULT '',
	description   TEXT NOT NULL DEFAULT '',
	machine_modes TEXT NOT NULL DEFAULT '[]',
	is_rest_day   INTEGER NOT NULL DEFAULT 0
);
`

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed defaults on first init only
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	var productCount int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM products").Scan(&productCount); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if productCount == 0 {
		if err := s.SaveProducts(models.SeedProducts()); err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
	}

	var scheduleCount int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM weekly_schedule").Scan(&scheduleCount); err != nil {
		return fmt.Errorf("failed to count schedule entries: %w", err)
	}
	if scheduleCount == 0 {
		if err := s.SaveSchedule(models.DefaultWeeklySchedule()); err != nil {
			return fmt.Errorf("failed to seed weekly schedule: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'dewy init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// The schema is idempotent, so opening an older database upgrades it.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	if s.db == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}

	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = 'settings'").Scan(&raw)
	if err == sql.ErrNoRows {
		return models.Settings{}, fmt.Errorf("settings not found")
	}
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings models.Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	raw, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}

	_, err = s.db.Exec(`INSERT INTO settings (key, value) VALUES ('settings', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, string(raw))
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetProducts() ([]models.Product, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT id, name, timing, days, product_type, sort_order FROM products ORDER BY sort_order")
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		var timing, productType, daysJSON string
		if err := rows.Scan(&p.ID, &p.Name, &timing, &daysJSON, &productType, &p.Order); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Timing = models.Timing(timing)
		p.ProductType = models.ProductType(productType)
		if err := json.Unmarshal([]byte(daysJSON), &p.Days); err != nil {
			return nil, fmt.Errorf("failed to parse days for product %s: %w", p.ID, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	return routine.SanitizeProducts(products), nil
}

func (s *SQLiteStore) SaveProducts(products []models.Product) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM products"); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO products (id, name, timing, days, product_type, sort_order) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		daysJSON, err := json.Marshal(p.Days)
		if err != nil {
			return fmt.Errorf("failed to serialize days for product %s: %w", p.ID, err)
		}
		if _, err := stmt.Exec(p.ID, p.Name, string(p.Timing), string(daysJSON), string(p.ProductType), p.Order); err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetLog(date string) (models.DailyLog, bool, error) {
	if s.db == nil {
		return models.DailyLog{}, false, fmt.Errorf("storage not loaded")
	}

	row := s.db.QueryRow(`SELECT completed, note, skin_conditions, machine_modes, custom_routine, completed_at
		FROM daily_logs WHERE date = ?`, date)

	log, err := scanLog(row)
	if err == sql.ErrNoRows {
		return models.DailyLog{}, false, nil
	}
	if err != nil {
		return models.DailyLog{}, false, err
	}
	return log, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (models.DailyLog, error) {
	var log models.DailyLog
	var completed int
	var conditions, modes, snapshot, completedAt sql.NullString

	if err := row.Scan(&completed, &log.Note, &conditions, &modes, &snapshot, &completedAt); err != nil {
		return models.DailyLog{}, err
	}

	log.Completed = completed != 0
	if conditions.Valid && conditions.String != "" {
		if err := json.Unmarshal([]byte(conditions.String), &log.SkinConditions); err != nil {
			return models.DailyLog{}, fmt.Errorf("failed to parse skin conditions: %w", err)
		}
	}
	if modes.Valid {
		if err := json.Unmarshal([]byte(modes.String), &log.MachineModes); err != nil {
			return models.DailyLog{}, fmt.Errorf("failed to parse machine modes: %w", err)
		}
	}
	if snapshot.Valid {
		if err := json.Unmarshal([]byte(snapshot.String), &log.CustomRoutine); err != nil {
			return models.DailyLog{}, fmt.Errorf("failed to parse custom routine: %w", err)
		}
	}
	if completedAt.Valid && completedAt.String != "" {
		t, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return models.DailyLog{}, fmt.Errorf("failed to parse completion time: %w", err)
		}
		log.CompletedAt = &t
	}

	return routine.SanitizeLog(log), nil
}

func (s *SQLiteStore) SaveLog(date string, log models.DailyLog) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	completed := 0
	if log.Completed {
		completed = 1
	}

	var conditions, modes, snapshot, completedAt any
	if log.SkinConditions != nil {
		raw, err := json.Marshal(log.SkinConditions)
		if err != nil {
			return fmt.Errorf("failed to serialize skin conditions: %w", err)
		}
		conditions = string(raw)
	}
	// nil stays NULL so "no override" survives the round trip
	if log.MachineModes != nil {
		raw, err := json.Marshal(log.MachineModes)
		if err != nil {
			return fmt.Errorf("failed to serialize machine modes: %w", err)
		}
		modes = string(raw)
	}
	if snap := log.Snapshot(); snap != nil {
		raw, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to serialize custom routine: %w", err)
		}
		snapshot = string(raw)
	}
	if log.CompletedAt != nil {
		completedAt = log.CompletedAt.Format(time.RFC3339)
	}

	_, err := s.db.Exec(`INSERT INTO daily_logs (date, completed, note, skin_conditions, machine_modes, custom_routine, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			completed = excluded.completed,
			note = excluded.note,
			skin_conditions = excluded.skin_conditions,
			machine_modes = excluded.machine_modes,
			custom_routine = excluded.custom_routine,
			completed_at = excluded.completed_at`,
		date, completed, log.Note, conditions, modes, snapshot, completedAt)
	if err != nil {
		return fmt.Errorf("failed to save log for %s: %w", date, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteLog(date string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, err := s.db.Exec("DELETE FROM daily_logs WHERE date = ?", date); err != nil {
		return fmt.Errorf("failed to delete log for %s: %w", date, err)
	}
	return nil
}

func (s *SQLiteStore) GetAllLogs() (map[string]models.DailyLog, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query(`SELECT date, completed, note, skin_conditions, machine_modes, custom_routine, completed_at
		FROM daily_logs`)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	logs := make(map[string]models.DailyLog)
	for rows.Next() {
		var date string
		var log models.DailyLog
		var completed int
		var conditions, modes, snapshot, completedAt sql.NullString

		if err := rows.Scan(&date, &completed, &log.Note, &conditions, &modes, &snapshot, &completedAt); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}

		log.Completed = completed != 0
		if conditions.Valid && conditions.String != "" {
			if err := json.Unmarshal([]byte(conditions.String), &log.SkinConditions); err != nil {
				return nil, fmt.Errorf("failed to parse skin conditions for %s: %w", date, err)
			}
		}
		if modes.Valid {
			if err := json.Unmarshal([]byte(modes.String), &log.MachineModes); err != nil {
				return nil, fmt.Errorf("failed to parse machine modes for %s: %w", date, err)
			}
		}
		if snapshot.Valid {
			if err := json.Unmarshal([]byte(snapshot.String), &log.CustomRoutine); err != nil {
				return nil, fmt.Errorf("failed to parse custom routine for %s: %w", date, err)
			}
		}
		if completedAt.Valid && completedAt.String != "" {
			t, err := time.Parse(time.RFC3339, completedAt.String)
			if err != nil {
				return nil, fmt.Errorf("failed to parse completion time for %s: %w", date, err)
			}
			log.CompletedAt = &t
		}

		logs[date] = routine.SanitizeLog(log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate logs: %w", err)
	}

	return logs, nil
}

func (s *SQLiteStore) GetSchedule() (models.WeeklySchedule, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	rows, err := s.db.Query("SELECT weekday, theme, description, machine_modes, is_rest_day FROM weekly_schedule")
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule: %w", err)
	}
	defer rows.Close()

	schedule := models.WeeklySchedule{}
	for rows.Next() {
		var weekday, restDay int
		var dr models.DayRoutine
		var modesJSON string
		if err := rows.Scan(&weekday, &dr.Theme, &dr.Description, &modesJSON, &restDay); err != nil {
			return nil, fmt.Errorf("failed to scan schedule entry: %w", err)
		}
		if err := json.Unmarshal([]byte(modesJSON), &dr.MachineModes); err != nil {
			return nil, fmt.Errorf("failed to parse machine modes for weekday %d: %w", weekday, err)
		}
		dr.IsRestDay = restDay != 0
		schedule[time.Weekday(weekday)] = dr
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schedule: %w", err)
	}

	return schedule, nil
}

func (s *SQLiteStore) SaveSchedule(schedule models.WeeklySchedule) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM weekly_schedule"); err != nil {
		return fmt.Errorf("failed to clear schedule: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO weekly_schedule (weekday, theme, description, machine_modes, is_rest_day) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for weekday, dr := range schedule {
		modes := dr.MachineModes
		if modes == nil {
			modes = []models.MachineMode{}
		}
		modesJSON, err := json.Marshal(modes)
		if err != nil {
			return fmt.Errorf("failed to serialize machine modes: %w", err)
		}
		restDay := 0
		if dr.IsRestDay {
			restDay = 1
		}
		if _, err := stmt.Exec(int(weekday), dr.Theme, dr.Description, string(modesJSON), restDay); err != nil {
			return fmt.Errorf("failed to insert schedule entry: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// DB exposes the underlying handle for maintenance commands like backup.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}
