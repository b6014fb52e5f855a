package products

import (
	"fmt"

	"dewy/internal/cli"
	"dewy/internal/models"
)

type ProductEditCmd struct {
	Product string `arg:"" help:"Product name, name fragment, or ID."`
	Name    string `help:"New product name."`
	Type    string `short:"t" help:"New category."`
	Timing  string `help:"New timing (morning|evening|both)."`
	Days    string `short:"w" help:"New comma-separated weekdays."`
}

func (c *ProductEditCmd) Validate() error {
	if c.Name == "" && c.Type == "" && c.Timing == "" && c.Days == "" {
		return fmt.Errorf("nothing to change")
	}
	return nil
}

func (c *ProductEditCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	p, err := tr.ResolveProduct(c.Product)
	if err != nil {
		return err
	}

	if c.Name != "" {
		p.Name = c.Name
	}
	if c.Type != "" {
		p.ProductType = models.ParseProductType(c.Type)
	}
	if c.Timing != "" {
		p.Timing = models.ParseTiming(c.Timing)
	}
	if c.Days != "" {
		days, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		p.Days = days
	}

	if err := tr.UpdateProduct(p); err != nil {
		return err
	}
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Updated %s\n", cli.FormatProductLine(p, false))
	return nil
}
