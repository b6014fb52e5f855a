package storage

import "dewy/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Products (global catalog)
	GetProducts() ([]models.Product, error)
	SaveProducts([]models.Product) error

	// Daily logs, keyed by YYYY-MM-DD date strings. GetLog reports whether a
	// record exists; an absent log is not an error.
	GetLog(date string) (models.DailyLog, bool, error)
	SaveLog(date string, log models.DailyLog) error
	DeleteLog(date string) error
	GetAllLogs() (map[string]models.DailyLog, error)

	// Weekly schedule
	GetSchedule() (models.WeeklySchedule, error)
	SaveSchedule(models.WeeklySchedule) error

	// Utils
	GetConfigPath() string
}
