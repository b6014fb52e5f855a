package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"dewy/internal/backup"
	"dewy/internal/cli"
	"dewy/internal/storage"
	"dewy/internal/utils"
	"dewy/internal/validation"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	if storeReachable {
		if err := checkSettings(ctx); err != nil {
			fmt.Printf("❌ Settings: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings: SKIPPED (store not reachable)\n")
	}

	if storeReachable {
		if err := checkCatalog(ctx); err != nil {
			fmt.Printf("❌ Product catalog: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Product catalog: OK\n")
		}
	} else {
		fmt.Printf("⊘ Product catalog: SKIPPED (store not reachable)\n")
	}

	if storeReachable {
		if err := checkLogs(ctx); err != nil {
			fmt.Printf("❌ Daily logs: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Daily logs: OK\n")
		}
	} else {
		fmt.Printf("⊘ Daily logs: SKIPPED (store not reachable)\n")
	}

	if storeReachable {
		if err := checkSchedule(ctx); err != nil {
			fmt.Printf("❌ Weekly plan: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Weekly plan: OK\n")
		}
	} else {
		fmt.Printf("⊘ Weekly plan: SKIPPED (store not reachable)\n")
	}

	// Backups are a warning, not a failure
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	// Concurrent writers can corrupt the store, warn only
	if err := checkSingleWriter(); err != nil {
		fmt.Printf("⚠ Single writer: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Single writer: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.DB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("invalid timezone %q", settings.Timezone)
	}
	return nil
}

func checkCatalog(ctx *cli.Context) error {
	products, err := ctx.Store.GetProducts()
	if err != nil {
		return fmt.Errorf("failed to get products: %w", err)
	}

	if result := validation.ValidateCatalog(products); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkLogs(ctx *cli.Context) error {
	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return fmt.Errorf("failed to get logs: %w", err)
	}

	if result := validation.ValidateLogs(logs); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkSchedule(ctx *cli.Context) error {
	schedule, err := ctx.Store.GetSchedule()
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	if result := validation.ValidateSchedule(schedule); result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'dewy backup create'")
	}

	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkSingleWriter() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("could not list processes: %w", err)
	}

	self := os.Getpid()
	exe := filepath.Base(os.Args[0])
	count := 0
	for _, p := range procs {
		if p.Pid() != self && strings.HasPrefix(p.Executable(), exe) {
			count++
		}
	}
	if count > 0 {
		return fmt.Errorf("found %d other running %s process(es); concurrent writes can corrupt the store", count, exe)
	}
	return nil
}
