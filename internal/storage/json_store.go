package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dewy/internal/models"
	"dewy/internal/routine"
)

// Store is the single JSON document the file-backed store persists.
type Store struct {
	Version  int                        `json:"version"`
	Settings models.Settings            `json:"settings"`
	Products []models.Product           `json:"products"`
	Logs     map[string]models.DailyLog `json:"logs"`
	Schedule models.WeeklySchedule      `json:"weekly_schedule"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	// Seed with the starter catalog and default weekly plan
	s.store = &Store{
		Version:  1,
		Settings: models.DefaultSettings(),
		Products: models.SeedProducts(),
		Logs:     make(map[string]models.DailyLog),
		Schedule: models.DefaultWeeklySchedule(),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'dewy init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Logs == nil {
		s.store.Logs = make(map[string]models.DailyLog)
	}
	if s.store.Schedule == nil {
		s.store.Schedule = models.WeeklySchedule{}
	}

	// Migration rules run before anything downstream sees the data.
	s.store.Products = routine.SanitizeProducts(s.store.Products)
	s.store.Logs = routine.SanitizeLogs(s.store.Logs)

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.store == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Settings = settings
	return s.save()
}

func (s *JSONStore) GetProducts() ([]models.Product, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return append([]models.Product(nil), s.store.Products...), nil
}

func (s *JSONStore) SaveProducts(products []models.Product) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Products = append([]models.Product(nil), products...)
	return s.save()
}

func (s *JSONStore) GetLog(date string) (models.DailyLog, bool, error) {
	if s.store == nil {
		return models.DailyLog{}, false, fmt.Errorf("storage not loaded")
	}
	log, ok := s.store.Logs[date]
	return log, ok, nil
}

func (s *JSONStore) SaveLog(date string, log models.DailyLog) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Logs[date] = log
	return s.save()
}

func (s *JSONStore) DeleteLog(date string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	delete(s.store.Logs, date)
	return s.save()
}

func (s *JSONStore) GetAllLogs() (map[string]models.DailyLog, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	logs := make(map[string]models.DailyLog, len(s.store.Logs))
	for date, log := range s.store.Logs {
		logs[date] = log
	}
	return logs, nil
}

func (s *JSONStore) GetSchedule() (models.WeeklySchedule, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	schedule := make(models.WeeklySchedule, len(s.store.Schedule))
	for day, dr := range s.store.Schedule {
		schedule[day] = dr
	}
	return schedule, nil
}

func (s *JSONStore) SaveSchedule(schedule models.WeeklySchedule) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Schedule = schedule
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
