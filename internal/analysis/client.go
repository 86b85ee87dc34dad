package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rightstep/internal/program"
)

// Client invokes the remote analyzeFoodImage callable. It owns no retry
// loop and no cancellation beyond the transport: each call is independent
// and runs to completion or failure, and every exit path yields a
// definitive result or a categorized error.
type Client struct {
	endpointURL string
	httpClient  *http.Client
}

// NewClient creates a client for the callable at endpointURL.
func NewClient(endpointURL string) *Client {
	return &Client{
		endpointURL: endpointURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Analyze submits a captured food image for the given program week.
// imageData may be a raw base64 string or a data URL; any
// data:image/*;base64, prefix is stripped before transmission. An
// out-of-range week is clamped to 1 rather than rejected.
func (c *Client) Analyze(ctx context.Context, imageData string, programWeek int) (*Result, error) {
	imageData = StripDataURL(strings.TrimSpace(imageData))
	if imageData == "" {
		return nil, NewError(KindInvalidArgument, "image payload is empty")
	}
	if programWeek < 1 || programWeek > program.TotalWeeks {
		programWeek = 1
	}

	jsonBody, err := json.Marshal(Request{ImageData: imageData, CurrentWeek: programWeek})
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to marshal request body: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpointURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("failed to reach analysis endpoint: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var failure errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&failure); err == nil && failure.Error != nil && failure.Error.Kind != "" {
			return nil, failure.Error
		}
		return nil, &Error{Kind: KindTransport, Message: fmt.Sprintf("analysis endpoint returned status %d", resp.StatusCode)}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &Error{Kind: KindFormat, Message: fmt.Sprintf("failed to decode analysis response: %v", err)}
	}

	if result.Explanation == "" {
		result.Explanation = DefaultExplanation
	}
	if result.DetectedItems == nil {
		result.DetectedItems = []string{}
	}
	// Reserved field; always empty in the current contract.
	result.Nutrients = []Nutrient{}

	return &result, nil
}

// StripDataURL removes a data:<mediatype>;base64, prefix if present. The
// wire format is raw base64 image bytes, not a data URL.
func StripDataURL(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if i := strings.Index(s, "base64,"); i >= 0 {
		return s[i+len("base64,"):]
	}
	return s
}
