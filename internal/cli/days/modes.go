package days

import (
	"fmt"
	"strings"

	"dewy/internal/cli"
	"dewy/internal/models"
	"dewy/internal/utils"
)

type ModesSetCmd struct {
	Modes string `arg:"" optional:"" help:"Comma-separated device mode IDs (booster,mc,ems,airshot,derma)."`
	Date  string `short:"d" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
	None  bool   `help:"Skip the device entirely for this date."`
}

func (c *ModesSetCmd) Validate() error {
	if c.None && c.Modes != "" {
		return fmt.Errorf("--none and a mode list are mutually exclusive")
	}
	if !c.None && c.Modes == "" {
		return fmt.Errorf("specify mode IDs or --none")
	}
	return nil
}

func (c *ModesSetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
	if err != nil {
		return err
	}

	modes := []models.MachineMode{}
	if !c.None {
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
	}

	tr.SetModes(date, modes)
	if err := ctx.Commit(tr); err != nil {
		return err
	}

	if len(modes) == 0 {
		fmt.Printf("Device skipped for %s\n", date)
	} else {
		names := make([]string, len(modes))
		for i, m := range modes {
			names[i] = m.Name
		}
		fmt.Printf("Device modes for %s: %s\n", date, strings.Join(names, ", "))
	}
	return nil
}

type ModesResetCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *ModesResetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
	if err != nil {
		return err
	}

	tr.ResetModes(date)
	if err := ctx.Commit(tr); err != nil {
		return err
	}

	fmt.Printf("Device modes for %s follow the weekly plan again\n", date)
	return nil
}
