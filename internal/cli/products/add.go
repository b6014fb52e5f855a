package products

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dewy/internal/cli"
	"dewy/internal/classifier"
	"dewy/internal/models"
)

type ProductAddCmd struct {
	Name   string `arg:"" optional:"" help:"Product name."`
	Image  string `short:"i" help:"Classify from a product photo instead of a name." type:"path"`
	Type   string `short:"t" help:"Product category (cleanser, toner, serum, ...)."`
	Timing string `help:"Usage timing (morning|evening|both)."`
	Days   string `short:"w" help:"Comma-separated weekdays (default: suggested)."`
}

func (c *ProductAddCmd) Validate() error {
	if c.Name == "" && c.Image == "" {
		return fmt.Errorf("specify a product name or --image")
	}
	return nil
}

func (c *ProductAddCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.LoadTracker()
	if err != nil {
		return err
	}

	bg := context.Background()
	name := c.Name
	var suggestion models.Suggestion

	if c.Image != "" {
		recognized, s, err := c.classifyImage(ctx, bg)
		if err != nil {
			return err
		}
		suggestion = s
		if name == "" {
			name = recognized
		}
		if name == "" {
			return fmt.Errorf("could not recognize a product name from the image")
		}
		fmt.Printf("Recognized: %s\n", name)
	} else {
		suggestion = classifier.ClassifyWithFallback(bg, ctx.NewClassifier(bg), name)
	}

	if suggestion.Reason != "" {
		fmt.Printf("Suggestion: %s (%s), %s\n", suggestion.ProductType, cli.FormatTiming(suggestion.Timing), suggestion.Reason)
	}
	if suggestion.Warning != "" {
		fmt.Printf("⚠ %s\n", suggestion.Warning)
	}

	p := models.Product{
		Name:        strings.TrimSpace(name),
		Timing:      suggestion.Timing,
		Days:        suggestion.Days,
		ProductType: suggestion.ProductType,
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

	added, err := tr.AddProduct(p)
	if err != nil {
		return err
	}
	if err := ctx.Commit(tr); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("Added %s [%s, %s, %s] (ID: %s)\n",
		added.Name, added.ProductType, cli.FormatTiming(added.Timing), cli.FormatDays(added.Days), added.ID)
	return nil
}

func (c *ProductAddCmd) classifyImage(ctx *cli.Context, bg context.Context) (string, models.Suggestion, error) {
	cls := ctx.NewClassifier(bg)
	if cls == nil {
		return "", models.Suggestion{}, fmt.Errorf("image classification needs a Gemini API key, run 'dewy key set'")
	}

	data, err := os.ReadFile(c.Image)
	if err != nil {
		return "", models.Suggestion{}, fmt.Errorf("failed to read image: %w", err)
	}
	mimeType := mimeTypeFor(c.Image)
	if mimeType == "" {
		return "", models.Suggestion{}, fmt.Errorf("unsupported image format %q (expected jpg, png, or webp)", filepath.Ext(c.Image))
	}

	name, suggestion, err := cls.ClassifyImage(bg, mimeType, data)
	if err != nil {
		return "", models.Suggestion{}, fmt.Errorf("image classification failed: %w", err)
	}
	return name, suggestion, nil
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
