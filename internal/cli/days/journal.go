package days

import (
	"fmt"
	"strings"

	"dewy/internal/cli"
	"dewy/internal/models"
	"dewy/internal/utils"
)

type JournalCmd struct {
	Note string `arg:"" optional:"" help:"Journal note for the day."`
	Date string `short:"d" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
	Skin string `short:"s" help:"Comma-separated skin condition tags."`
}

func (c *JournalCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
	if err != nil {
		return err
	}

	var conditions []string
	if c.Skin != "" {
		for _, tag := range strings.Split(c.Skin, ",") {
			tag = strings.TrimSpace(strings.ToLower(tag))
			if tag != "" {
				conditions = append(conditions, tag)
			}
		}
	}

	tr.SetJournal(date, c.Note, conditions)
	if err := ctx.Commit(tr); err != nil {
		return err
	}

	fmt.Printf("Journal saved for %s\n", date)
	if len(conditions) > 0 {
		known := make(map[string]bool, len(models.SkinConditions))
		for _, tag := range models.SkinConditions {
			known[tag] = true
		}
		for _, tag := range conditions {
			if !known[tag] {
				fmt.Printf("  note: %q is not a known skin condition tag\n", tag)
			}
		}
	}
	return nil
}
