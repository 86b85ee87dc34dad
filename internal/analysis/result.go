package analysis

import (
	"encoding/json"
	"strings"
)

// DefaultExplanation is used when the model omits an explanation.
const DefaultExplanation = "AI analysis complete."

// Request is the wire request for the analyzeFoodImage callable: raw
// base64 image bytes (no data-URL prefix) and the program week.
type Request struct {
	ImageData   string `json:"imageData"`
	CurrentWeek int    `json:"currentWeek"`
}

// Nutrient is a labeled nutrient value. Reserved for future use: the
// current backend always emits an empty nutrients list and callers must
// not assume it is populated.
type Nutrient struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Result is the structured outcome of a food image analysis.
type Result struct {
	Suitable      bool       `json:"suitable"`
	Explanation   string     `json:"explanation"`
	DetectedItems []string   `json:"detectedItems"`
	Nutrients     []Nutrient `json:"nutrients"`
}

// errorResponse is the wire shape of a categorized failure.
type errorResponse struct {
	Error *Error `json:"error"`
}

// ParseModelOutput validates and normalizes the model's textual output
// into a Result. The text may be wrapped in a triple-backtick fence
// (```json ... ```); after unwrapping it must be a single JSON object with
// a boolean `suitable` and a string array `detectedItems`. Anything else
// is a format failure carrying the raw text for diagnostics.
func ParseModelOutput(raw string) (*Result, error) {
	text := strings.TrimSpace(raw)
	if after, ok := strings.CutPrefix(text, "```"); ok {
		text = strings.TrimPrefix(after, "json")
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
		text = strings.TrimSpace(text)
	}

	if !strings.HasPrefix(text, "{") || !strings.HasSuffix(text, "}") {
		return nil, &Error{
			Kind:    KindFormat,
			Message: "model output is not a JSON object",
			Raw:     raw,
		}
	}

	var payload struct {
		Suitable      *bool     `json:"suitable"`
		Explanation   string    `json:"explanation"`
		DetectedItems *[]string `json:"detectedItems"`
	}
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, &Error{
			Kind:    KindFormat,
			Message: "model output is not valid JSON: " + err.Error(),
			Raw:     raw,
		}
	}
	if payload.Suitable == nil || payload.DetectedItems == nil {
		return nil, &Error{
			Kind:    KindFormat,
			Message: "model output is missing suitable or detectedItems",
			Raw:     raw,
		}
	}

	explanation := payload.Explanation
	if explanation == "" {
		explanation = DefaultExplanation
	}
	items := *payload.DetectedItems
	if items == nil {
		items = []string{}
	}

	return &Result{
		Suitable:      *payload.Suitable,
		Explanation:   explanation,
		DetectedItems: items,
		Nutrients:     []Nutrient{},
	}, nil
}
