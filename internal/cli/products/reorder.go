package products

import (
	"fmt"

	"dewy/internal/cli"
	"dewy/internal/models"
	"dewy/internal/routine"
)

type ProductMoveCmd struct {
	Product   string `arg:"" help:"Product name, name fragment, or ID."`
	Direction string `arg:"" optional:"" help:"Step direction (up|down)."`
	Before    string `help:"Move in front of this product instead of stepping."`
}

func (c *ProductMoveCmd) Validate() error {
	if c.Direction == "" && c.Before == "" {
		return fmt.Errorf("specify a direction (up|down) or --before")
	}
	if c.Direction != "" && c.Before != "" {
		return fmt.Errorf("direction and --before are mutually exclusive")
	}
	return nil
}

func (c *ProductMoveCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	p, err := tr.ResolveProduct(c.Product)
	if err != nil {
		return err
	}

	if c.Before != "" {
		target, err := tr.ResolveProduct(c.Before)
		if err != nil {
			return err
		}
		if !tr.MoveBeforeCatalog(p.ID, target.ID) {
			fmt.Println("Nothing moved.")
			return nil
		}
		fmt.Printf("Moved %s before %s\n", p.Name, target.Name)
	} else {
		dir, err := routine.ParseDirection(c.Direction)
		if err != nil {
			return err
		}
		if !tr.ReorderCatalog(p.ID, dir) {
			fmt.Println("Nothing moved.")
			return nil
		}
		fmt.Printf("Moved %s %s\n", p.Name, c.Direction)
	}

	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	return nil
}

type ProductSortCmd struct {
	Scope string `arg:"" optional:"" help:"Timing scope to sort (morning|evening|all)." default:"all"`
}

func (c *ProductSortCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}

	var scope models.Timing
	switch c.Scope {
	case "", "all":
	case "morning", "am":
		scope = models.TimingMorning
	case "evening", "pm":
		scope = models.TimingEvening
	default:
		return fmt.Errorf("invalid scope %q (expected morning|evening|all)", c.Scope)
	}

	tr.AutoSortCatalog(scope)
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	if scope == "" {
		fmt.Println("Sorted the product catalog")
	} else {
		fmt.Printf("Sorted the %s products\n", cli.FormatTiming(scope))
	}
	return nil
}
