package products

import (
	"fmt"

	"dewy/internal/cli"
	"dewy/internal/models"
	"dewy/internal/routine"
)

type ProductListCmd struct {
	ShowIDs bool   `help:"Show product IDs." name:"show-ids"`
	Timing  string `short:"t" help:"Filter by timing scope (morning|evening)."`
}

func (c *ProductListCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	if len(tr.Catalog) == 0 {
		fmt.Println("No products found")
		return nil
	}

	var scope models.Timing
	switch c.Timing {
	case "":
	case "morning", "am":
		scope = models.TimingMorning
	case "evening", "pm":
		scope = models.TimingEvening
	default:
		return fmt.Errorf("invalid timing filter %q (expected morning|evening)", c.Timing)
	}

	for _, p := range routine.SortedByOrder(tr.Catalog) {
		if !routine.TimingInScope(p.Timing, scope) {
			continue
		}
		fmt.Println(cli.FormatProductLine(p, c.ShowIDs))
	}
	return nil
}
