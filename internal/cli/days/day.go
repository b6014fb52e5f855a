package days

import (
	"fmt"
	"strings"

	"dewy/internal/cli"
	"dewy/internal/utils"
)

type DayCmd struct {
	Date    string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, 'today', 'yesterday', 'tomorrow')." default:"today"`
	ShowIDs bool   `help:"Show product IDs." name:"show-ids"`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
	if err != nil {
		return err
	}
	proj, err := tr.Project(date)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("%s (%s)", proj.Date, proj.Weekday)
	if proj.Theme != "" {
		header += " - " + proj.Theme
	}
	fmt.Println(header)
	if proj.Description != "" {
		fmt.Println(proj.Description)
	}

	var tags []string
	if proj.IsRestDay {
		tags = append(tags, "rest day")
	}
	if proj.HasCustomRoutine() {
		tags = append(tags, "custom routine")
	}
	if proj.Log.HasModeOverride() {
		tags = append(tags, "mode override")
	}
	if proj.Log.Completed {
		done := "completed"
		if proj.Log.CompletedAt != nil {
			done = fmt.Sprintf("completed at %s", proj.Log.CompletedAt.Format("15:04"))
		}
		tags = append(tags, done)
	}
	if len(tags) > 0 {
		fmt.Printf("[%s]\n", strings.Join(tags, ", "))
	}
	fmt.Println()

	fmt.Println("Device:")
	cli.PrintModes(proj.MachineModes)
	fmt.Println()

	cli.PrintRoutineSection("Morning", proj.Morning(), c.ShowIDs)
	fmt.Println()
	cli.PrintRoutineSection("Evening", proj.Evening(), c.ShowIDs)

	if proj.Log.Note != "" || len(proj.Log.SkinConditions) > 0 {
		fmt.Println()
		fmt.Println("Journal:")
		if len(proj.Log.SkinConditions) > 0 {
			fmt.Printf("  skin: %s\n", strings.Join(proj.Log.SkinConditions, ", "))
		}
		if proj.Log.Note != "" {
			fmt.Printf("  %s\n", proj.Log.Note)
		}
	}

	return nil
}
