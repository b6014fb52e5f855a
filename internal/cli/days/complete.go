package days

import (
	"fmt"

	"dewy/internal/cli"
	"dewy/internal/utils"
)

type CompleteCmd struct {
	Date string `arg:"" optional:"" help:"Date to mark (YYYY-MM-DD or 'today')." default:"today"`
	Undo bool   `help:"Clear the completion mark instead."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
	if err != nil {
		return err
	}

	if err := tr.SetCompleted(date, !c.Undo); err != nil {
		return err
	}
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	if c.Undo {
		fmt.Printf("Cleared completion for %s\n", date)
	} else {
		fmt.Printf("✓ Routine completed for %s\n", date)
	}
	return nil
}
