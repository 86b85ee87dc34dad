package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"rightstep/internal/analysis"
	"rightstep/internal/config"
	"rightstep/internal/llm"
	"rightstep/internal/program"
)

// Handler serves the analyzeFoodImage callable. Nothing is initialized
// until the first request arrives: the API key is resolved and the model
// client constructed per request.
type Handler struct {
	resolveKey     func() (string, error)
	newAnalyzer    func(apiKey string) llm.VisionAnalyzer
	identitySecret string
}

// New creates a Handler from configuration.
func New(cfg *config.Config) *Handler {
	return &Handler{
		resolveKey:     config.ResolveGeminiKey,
		newAnalyzer:    llm.NewGeminiAnalyzer,
		identitySecret: cfg.IdentitySecret,
	}
}

// Register registers the callable and a health check on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/analyzeFoodImage", h.handleAnalyze)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, analysis.NewError(analysis.KindInvalidArgument, "method not allowed"))
		return
	}

	// Caller identity is informational only: its absence is tolerated and
	// logged, never rejected.
	caller := callerIdentity(r, h.identitySecret)
	log.Printf("analyzeFoodImage request from %s", caller)

	var req analysis.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, analysis.NewError(analysis.KindInvalidArgument, "request body is not valid JSON"))
		return
	}

	raw := analysis.StripDataURL(req.ImageData)
	if raw == "" {
		writeError(w, analysis.NewError(analysis.KindInvalidArgument, "image payload is empty"))
		return
	}
	imageBytes, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		writeError(w, analysis.NewError(analysis.KindInvalidArgument, "image payload is not valid base64"))
		return
	}

	week := req.CurrentWeek
	if week < 1 || week > program.TotalWeeks {
		week = 1
	}

	apiKey, err := h.resolveKey()
	if err != nil {
		log.Printf("Configuration error: %v", err)
		writeError(w, analysis.NewError(analysis.KindConfiguration, "analysis service unavailable"))
		return
	}

	modelOutput, err := h.newAnalyzer(apiKey).AnalyzeImage(r.Context(), imageBytes, buildPrompt(week))
	if err != nil {
		if errors.Is(err, llm.ErrNoContent) {
			writeError(w, analysis.NewError(analysis.KindRemoteBlocked, "analysis blocked or empty"))
			return
		}
		log.Printf("Model call failed: %v", err)
		writeError(w, analysis.NewError(analysis.KindTransport, "analysis request failed"))
		return
	}

	result, err := analysis.ParseModelOutput(modelOutput)
	if err != nil {
		var ae *analysis.Error
		if errors.As(err, &ae) {
			log.Printf("Unparseable model output: %s", ae.Raw)
			writeError(w, ae)
			return
		}
		writeError(w, analysis.NewError(analysis.KindTransport, "analysis request failed"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func writeError(w http.ResponseWriter, ae *analysis.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(ae.Kind.HTTPStatus())
	json.NewEncoder(w).Encode(struct {
		Error *analysis.Error `json:"error"`
	}{Error: ae})
}

// buildPrompt asks the model to identify the food and judge suitability
// for the given week of the program, demanding a JSON-only response.
func buildPrompt(week int) string {
	return fmt.Sprintf(`
You are a nutrition coach for a 12-week whole-foods program. The user is on week %d.
Look at the attached photo of a meal and identify the food items in it, then judge
whether the meal is suitable for week %d of a 12-week whole-foods program.

Return the result strictly as a JSON object with this structure:
{
  "detectedItems": ["item 1", "item 2", ...],
  "suitable": true,
  "explanation": "One or two sentences for the user"
}

Do not include any other text or formatting in your response.
`, week, week)
}
