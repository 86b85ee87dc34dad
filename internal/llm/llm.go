package llm

import (
	"context"
	"errors"
)

// ErrNoContent is returned when the model produced no usable output
// (blocked by a safety filter or an empty candidate list).
var ErrNoContent = errors.New("no content generated")

// VisionAnalyzer is an interface for a model that can describe and judge
// a food photo. It returns the model's raw textual output.
type VisionAnalyzer interface {
	AnalyzeImage(ctx context.Context, imageBytes []byte, prompt string) (string, error)
}
