package system

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"dewy/internal/cli"
	"dewy/internal/storage"
)

type ExportCmd struct {
	Path string `arg:"" help:"Destination file for the JSON export." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if err := storage.ExportToFile(ctx.Store, c.Path); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	fmt.Printf("✓ Exported to %s\n", c.Path)
	return nil
}

type ImportCmd struct {
	Path  string `arg:"" help:"JSON export file to import." type:"path"`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	if !c.Force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Replace all current data with this import?").
				Description("Products, history, and the weekly plan are overwritten. A backup of the current store is created first.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()

	if err := storage.ImportFromFile(ctx.Store, c.Path); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Printf("✓ Imported %s\n", c.Path)
	return nil
}
