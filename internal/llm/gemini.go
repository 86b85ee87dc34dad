package llm

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-1.5-flash"

// geminiAnalyzer is a client for the Google Gemini API's vision models.
// The endpoint is stateless per call: a fresh client is constructed for
// every invocation, so no connection is held between requests.
type geminiAnalyzer struct {
	apiKey string
}

// NewGeminiAnalyzer creates a Gemini-backed vision analyzer.
func NewGeminiAnalyzer(apiKey string) VisionAnalyzer {
	return &geminiAnalyzer{apiKey: apiKey}
}

// AnalyzeImage sends the image and prompt to the Gemini model and returns
// the generated text.
func (g *geminiAnalyzer) AnalyzeImage(ctx context.Context, imageBytes []byte, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(geminiModel)
	model.SafetySettings = moderateSafety()

	resp, err := model.GenerateContent(ctx, genai.ImageData("jpeg", imageBytes), genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoContent
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("%w: candidate is not text", ErrNoContent)
	}

	return string(text), nil
}

// moderateSafety blocks medium-and-above harm across all categories.
func moderateSafety() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  c,
			Threshold: genai.HarmBlockMediumAndAbove,
		})
	}
	return settings
}
