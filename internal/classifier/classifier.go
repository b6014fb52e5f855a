package classifier

import (
	"context"

	"dewy/internal/models"
)

// Classifier suggests a category, timing, and day schedule for a product.
// Implementations may call out to a network service; callers must treat the
// result as advisory and fall back to the rule table on any error.
type Classifier interface {
	// ClassifyName analyzes a product by its display name.
	ClassifyName(ctx context.Context, name string) (models.Suggestion, error)

	// ClassifyImage analyzes a photo of a product and returns the recognized
	// product name alongside the suggestion.
	ClassifyImage(ctx context.Context, mimeType string, data []byte) (string, models.Suggestion, error)
}

// ClassifyWithFallback runs the classifier and degrades to the rule table on
// any failure. A nil classifier skips straight to the rules. Adding a product
// must always succeed regardless of network state.
func ClassifyWithFallback(ctx context.Context, c Classifier, name string) models.Suggestion {
	if c == nil {
		return Suggest(name)
	}
	suggestion, err := c.ClassifyName(ctx, name)
	if err != nil {
		return Suggest(name)
	}
	return suggestion
}
