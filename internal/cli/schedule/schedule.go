package schedule

import (
	"fmt"
	"strings"
	"time"

	"dewy/internal/cli"
	"dewy/internal/models"
	"dewy/internal/routine"
)

type ScheduleShowCmd struct{}

func (c *ScheduleShowCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}

	// Monday-first display matches how the plan reads as a week
	order := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
	for _, day := range order {
		dr := routine.ResolveTemplate(tr.Schedule, day)
		label := dr.Theme
		if label == "" {
			label = "(no theme)"
		}
		if dr.IsRestDay {
			label += " [rest day]"
		}
		fmt.Printf("%-9s %s\n", day.String(), label)
		if dr.Description != "" {
			fmt.Printf("          %s\n", dr.Description)
		}
		if len(dr.MachineModes) > 0 {
			names := make([]string, len(dr.MachineModes))
			for i, m := range dr.MachineModes {
				names[i] = m.Name
			}
			fmt.Printf("          device: %s\n", strings.Join(names, ", "))
		}
	}
	return nil
}

type ScheduleSetCmd struct {
	Day         string `arg:"" help:"Weekday to change (e.g. monday)."`
	Theme       string `help:"Theme for the day."`
	Description string `help:"Description for the day."`
	Modes       string `help:"Comma-separated device mode IDs."`
	Rest        bool   `help:"Mark the day as a device-free rest day."`
}

func (c *ScheduleSetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	day, err := cli.ParseWeekday(c.Day)
	if err != nil {
		return err
	}

	dr := routine.ResolveTemplate(tr.Schedule, day)
	if c.Theme != "" {
		dr.Theme = c.Theme
	}
	if c.Description != "" {
		dr.Description = c.Description
	}
	if c.Rest {
		dr.IsRestDay = true
		dr.MachineModes = []models.MachineMode{}
	}
	if c.Modes != "" {
		modes := []models.MachineMode{}
		for _, id := range strings.Split(c.Modes, ",") {
			id = strings.TrimSpace(strings.ToLower(id))
			if id == "" {
				continue
			}
			mode, ok := models.MachineModeByID(id)
			if !ok {
				return fmt.Errorf("unknown device mode %q", id)
			}
			modes = append(modes, mode)
		}
		dr.MachineModes = modes
		dr.IsRestDay = len(modes) == 0
	}

	tr.SetDayRoutine(day, dr)
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Updated %s\n", day.String())
	return nil
}

type ScheduleResetCmd struct{}

func (c *ScheduleResetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}

	tr.ResetSchedule()
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Println("Weekly plan reset to the built-in defaults")
	return nil
}
