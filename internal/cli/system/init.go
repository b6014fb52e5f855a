package system

import (
	"fmt"
	"os"

	"dewy/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Force reset by deleting the existing store before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		storePath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(storePath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(storePath); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", storePath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized dewy storage at: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("Seeded the starter catalog and the weekly treatment plan.")
	return nil
}
