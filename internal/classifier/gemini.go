package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"dewy/internal/constants"
	"dewy/internal/models"
)

// GeminiClassifier analyzes products with the Gemini API.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier creates a classifier backed by the Gemini API.
func NewGeminiClassifier(ctx context.Context, apiKey string) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClassifier{
		client: client,
		model:  constants.GeminiModel,
	}, nil
}

// suggestionResponse is the JSON shape the model is asked to produce.
type suggestionResponse struct {
	Name        string `json:"name,omitempty"`
	ProductType string `json:"productType"`
	Timing      string `json:"timing"`
	Days        []int  `json:"days"`
	Reason      string `json:"reason"`
	Warning     string `json:"warning,omitempty"`
}

const classifyPromptFmt = `Analyze the skincare product named %q.
Return JSON with these fields:
  productType: one of [cleanser, scrub, acid, toner, mask, essence, serum, retinol, eye_cream, lotion, cream, oil, sunscreen, other]
  timing: one of [MORNING, EVENING, BOTH]
  days: array of weekday integers 0-6 (0 = Sunday) the product should be used
  reason: one short sentence
  warning: one short caution, or omit`

const classifyImagePrompt = `Identify the skincare product in this photo.
Return JSON with these fields:
  name: the product's name
  productType: one of [cleanser, scrub, acid, toner, mask, essence, serum, retinol, eye_cream, lotion, cream, oil, sunscreen, other]
  timing: one of [MORNING, EVENING, BOTH]
  days: array of weekday integers 0-6 (0 = Sunday) the product should be used
  reason: one short sentence
  warning: one short caution, or omit`

// ClassifyName implements Classifier.
func (g *GeminiClassifier) ClassifyName(ctx context.Context, name string) (models.Suggestion, error) {
	prompt := fmt.Sprintf(classifyPromptFmt, name)
	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return models.Suggestion{}, fmt.Errorf("Gemini classification failed: %w", err)
	}

	resp, err := parseSuggestion(result.Text())
	if err != nil {
		return models.Suggestion{}, err
	}
	return resp.toSuggestion(), nil
}

// ClassifyImage implements Classifier.
func (g *GeminiClassifier) ClassifyImage(ctx context.Context, mimeType string, data []byte) (string, models.Suggestion, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(classifyImagePrompt),
		genai.NewPartFromBytes(data, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx,
		g.model,
		contents,
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", models.Suggestion{}, fmt.Errorf("Gemini image classification failed: %w", err)
	}

	resp, err := parseSuggestion(result.Text())
	if err != nil {
		return "", models.Suggestion{}, err
	}
	name := resp.Name
	if name == "" {
		name = "Unknown product"
	}
	return name, resp.toSuggestion(), nil
}

// parseSuggestion decodes the model's JSON, stripping markdown fences some
// responses still wrap around it.
func parseSuggestion(text string) (suggestionResponse, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var resp suggestionResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return suggestionResponse{}, fmt.Errorf("malformed classification response: %w", err)
	}
	return resp, nil
}

func (r suggestionResponse) toSuggestion() models.Suggestion {
	days := make([]time.Weekday, 0, len(r.Days))
	for _, d := range r.Days {
		if d >= 0 && d <= 6 {
			days = append(days, time.Weekday(d))
		}
	}
	if len(days) == 0 {
		days = models.AllWeek()
	}
	return models.Suggestion{
		ProductType: models.ParseProductType(r.ProductType),
		Timing:      models.ParseTiming(r.Timing),
		Days:        days,
		Reason:      r.Reason,
		Warning:     r.Warning,
	}
}
