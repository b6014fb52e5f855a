package products

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"dewy/internal/cli"
)

type ProductDeleteCmd struct {
	Product string `arg:"" help:"Product name, name fragment, or ID."`
	Force   bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *ProductDeleteCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	p, err := tr.ResolveProduct(c.Product)
	if err != nil {
		return err
	}

	if !c.Force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %s?", p.Name)).
				Description("Past days that recorded it keep their snapshot.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if err := tr.DeleteProduct(p.ID); err != nil {
		return err
	}
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Deleted %s\n", p.Name)
	return nil
}
