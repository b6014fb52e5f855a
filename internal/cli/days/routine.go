package days

import (
	"errors"
	"fmt"
	"strings"

	"dewy/internal/cli"
	"dewy/internal/models"
	"dewy/internal/routine"
	"dewy/internal/utils"
)

// parseScope maps a CLI scope flag to a timing filter. Empty means the whole
// day list.
func parseScope(s string) (models.Timing, error) {
	switch s {
	case "", "all":
		return "", nil
	case "morning", "am":
		return models.TimingMorning, nil
	case "evening", "pm":
		return models.TimingEvening, nil
	default:
		return "", fmt.Errorf("invalid scope %q (expected morning|evening|all)", s)
	}
}

type RoutineAddCmd struct {
	Product string `arg:"" help:"Product name, name fragment, or ID."`
	Date    string `short:"d" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
	if err != nil {
		return err
	}
	p, err := tr.ResolveProduct(c.Product)
	if err != nil {
		return err
	}

	if err := tr.AddToDay(date, p); err != nil {
		if errors.Is(err, routine.ErrAlreadyScheduled) {
			fmt.Printf("⚠ %s is already in the routine for %s\n", p.Name, date)
			return nil
		}
		return err
	}
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Added %s to %s\n", p.Name, date)
	return nil
}

type RoutineRemoveCmd struct {
	Product string `arg:"" help:"Product name, name fragment, or ID."`
	Date    string `short:"d" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *RoutineRemoveCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
	if err != nil {
		return err
	}

	// Resolve against the date's active list, not the catalog: past snapshots
	// can contain products that were since deleted globally.
	proj, err := tr.Project(date)
	if err != nil {
		return err
	}
	p, err := resolveInList(proj.Products, c.Product)
	if err != nil {
		return err
	}

	if err := tr.RemoveFromDay(date, p.ID); err != nil {
		return err
	}
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Removed %s from %s\n", p.Name, date)
	return nil
}

// resolveInList finds a product in a specific list by exact id, id prefix, or
// case-insensitive name substring.
func resolveInList(list []models.Product, ref string) (models.Product, error) {
	for _, p := range list {
		if p.ID == ref {
			return p, nil
		}
	}
	var matches []models.Product
	lower := strings.ToLower(ref)
	for _, p := range list {
		if strings.HasPrefix(p.ID, ref) || strings.Contains(strings.ToLower(p.Name), lower) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return models.Product{}, fmt.Errorf("no product in this routine matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, p := range matches {
			names[i] = p.Name
		}
		return models.Product{}, fmt.Errorf("%q is ambiguous, matches: %s", ref, strings.Join(names, ", "))
	}
}

type RoutineResetCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *RoutineResetCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
	if err != nil {
		return err
	}

	tr.ResetRoutine(date)
	if err := ctx.Commit(tr); err != nil {
		return err
	}

	fmt.Printf("Routine for %s reset to the global catalog\n", date)
	return nil
}

type RoutineMoveCmd struct {
	Product   string `arg:"" help:"Product name, name fragment, or ID."`
	Date      string `short:"d" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
	Direction string `arg:"" optional:"" help:"Step direction (up|down)."`
	Before    string `help:"Move in front of this product instead of stepping."`
}

func (c *RoutineMoveCmd) Validate() error {
	if c.Direction == "" && c.Before == "" {
		return fmt.Errorf("specify a direction (up|down) or --before")
	}
	if c.Direction != "" && c.Before != "" {
		return fmt.Errorf("direction and --before are mutually exclusive")
	}
	return nil
}

func (c *RoutineMoveCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
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
		if err := tr.MoveBeforeForDay(date, p.ID, target.ID); err != nil {
			return err
		}
		fmt.Printf("Moved %s before %s on %s\n", p.Name, target.Name, date)
	} else {
		dir, err := routine.ParseDirection(c.Direction)
		if err != nil {
			return err
		}
		if err := tr.ReorderForDay(date, p.ID, dir); err != nil {
			return err
		}
		fmt.Printf("Moved %s %s on %s\n", p.Name, c.Direction, date)
	}

	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	return nil
}

type RoutineSortCmd struct {
	Scope string `arg:"" optional:"" help:"Timing scope to sort (morning|evening|all)." default:"all"`
	Date  string `short:"d" help:"Date (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *RoutineSortCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	date, err := utils.ResolveDateArg(c.Date, tr.Settings)
	if err != nil {
		return err
	}
	scope, err := parseScope(c.Scope)
	if err != nil {
		return err
	}

	if err := tr.AutoSortForDay(date, scope); err != nil {
		return err
	}
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	if scope == "" {
		fmt.Printf("Sorted the routine for %s\n", date)
	} else {
		fmt.Printf("Sorted the %s routine for %s\n", cli.FormatTiming(scope), date)
	}
	return nil
}
