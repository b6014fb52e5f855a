package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"dewy/internal/models"
	"dewy/internal/routine"
)

// Document is the portable serialization of everything the app persists.
// The same shape works for exports from any backing store.
type Document struct {
	Version  int                        `json:"version"`
	Settings models.Settings            `json:"settings"`
	Products []models.Product           `json:"products"`
	Logs     map[string]models.DailyLog `json:"logs"`
	Schedule models.WeeklySchedule      `json:"weekly_schedule"`
}

// Export reads the provider's full state into a Document.
func Export(p Provider) (Document, error) {
	settings, err := p.GetSettings()
	if err != nil {
		return Document{}, fmt.Errorf("failed to export settings: %w", err)
	}
	products, err := p.GetProducts()
	if err != nil {
		return Document{}, fmt.Errorf("failed to export products: %w", err)
	}
	logs, err := p.GetAllLogs()
	if err != nil {
		return Document{}, fmt.Errorf("failed to export logs: %w", err)
	}
	schedule, err := p.GetSchedule()
	if err != nil {
		return Document{}, fmt.Errorf("failed to export schedule: %w", err)
	}

	return Document{
		Version:  1,
		Settings: settings,
		Products: products,
		Logs:     logs,
		Schedule: schedule,
	}, nil
}

// ExportToFile writes the provider's full state as indented JSON.
func ExportToFile(p Provider, path string) error {
	doc, err := Export(p)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize export: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Import replaces the provider's state wholesale with the document's,
// re-running the load-time migration rules first. The caller is responsible
// for confirming with the user beforehand.
func Import(p Provider, doc Document) error {
	doc.Products = routine.SanitizeProducts(doc.Products)
	doc.Logs = routine.SanitizeLogs(doc.Logs)

	if err := p.SaveSettings(doc.Settings); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}
	if err := p.SaveProducts(doc.Products); err != nil {
		return fmt.Errorf("failed to import products: %w", err)
	}

	existing, err := p.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to read existing logs: %w", err)
	}
	for date := range existing {
		if err := p.DeleteLog(date); err != nil {
			return fmt.Errorf("failed to clear log for %s: %w", date, err)
		}
	}
	for date, log := range doc.Logs {
		if err := p.SaveLog(date, log); err != nil {
			return fmt.Errorf("failed to import log for %s: %w", date, err)
		}
	}

	schedule := doc.Schedule
	if schedule == nil {
		schedule = models.WeeklySchedule{}
	}
	if err := p.SaveSchedule(schedule); err != nil {
		return fmt.Errorf("failed to import schedule: %w", err)
	}
	return nil
}

// ImportFromFile reads a Document from disk and applies it.
func ImportFromFile(p Provider, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}
	return Import(p, doc)
}
