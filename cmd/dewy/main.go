package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"dewy/internal/cli"
	"dewy/internal/cli/backups"
	"dewy/internal/cli/days"
	"dewy/internal/cli/products"
	"dewy/internal/cli/schedule"
	"dewy/internal/cli/system"
	"dewy/internal/config"
	"dewy/internal/constants"
	"dewy/internal/errors"
	"dewy/internal/logger"
	"dewy/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store file path. A .json suffix selects the JSON store, anything else SQLite." type:"path" default:"~/.config/dewy/dewy.db"`
	Debug   bool   `help:"Enable debug logging to stderr."`

	Init   system.InitCmd   `cmd:"" help:"Initialize dewy storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Day      days.DayCmd      `cmd:"" help:"Show the routine for a day."`
	Complete days.CompleteCmd `cmd:"" help:"Mark a day's routine complete."`
	Journal  days.JournalCmd  `cmd:"" help:"Record a journal note and skin conditions."`
	Routine  struct {
		Add    days.RoutineAddCmd    `cmd:"" help:"Add a product to a day's routine."`
		Remove days.RoutineRemoveCmd `cmd:"" help:"Remove a product from a day's routine."`
		Reset  days.RoutineResetCmd  `cmd:"" help:"Reset a day back to the global catalog."`
		Move   days.RoutineMoveCmd   `cmd:"" help:"Move a product within a day's routine."`
		Sort   days.RoutineSortCmd   `cmd:"" help:"Auto-sort a day's routine."`
	} `cmd:"" help:"Edit a single day's routine."`
	Modes struct {
		Set   days.ModesSetCmd   `cmd:"" help:"Override a day's device modes." default:"withargs"`
		Reset days.ModesResetCmd `cmd:"" help:"Drop a day's mode override."`
	} `cmd:"" help:"Manage a day's device modes."`
	Product struct {
		Add    products.ProductAddCmd    `cmd:"" help:"Add a product to the catalog."`
		List   products.ProductListCmd   `cmd:"" help:"List the product catalog."`
		Edit   products.ProductEditCmd   `cmd:"" help:"Edit a catalog product."`
		Delete products.ProductDeleteCmd `cmd:"" help:"Delete a product from the catalog."`
		Move   products.ProductMoveCmd   `cmd:"" help:"Move a product in the global order."`
		Sort   products.ProductSortCmd   `cmd:"" help:"Auto-sort the catalog."`
	} `cmd:"" help:"Manage the product catalog."`
	Schedule struct {
		Show  schedule.ScheduleShowCmd  `cmd:"" help:"Show the weekly plan." default:"1"`
		Set   schedule.ScheduleSetCmd   `cmd:"" help:"Change one weekday's plan."`
		Reset schedule.ScheduleResetCmd `cmd:"" help:"Reset the weekly plan to defaults."`
	} `cmd:"" help:"Manage the weekly treatment plan."`
	Export system.ExportCmd `cmd:"" help:"Export all data to a JSON file."`
	Import system.ImportCmd `cmd:"" help:"Import data from a JSON export, replacing everything."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage store backups."`
	Key struct {
		Set    system.KeySetCmd    `cmd:"" help:"Store the Gemini API key in the OS keyring."`
		Delete system.KeyDeleteCmd `cmd:"" help:"Delete the stored API key."`
		Status system.KeyStatusCmd `cmd:"" help:"Show keyring and API key status." default:"1"`
	} `cmd:"" help:"Manage the Gemini API key."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("dewy"),
		kong.Description("Personal skincare routine tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	config.LoadEnv()

	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:  store,
		APIKey: config.ResolveAPIKey(),
		Debug:  CLI.Debug,
	}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}
