package analysis

import (
	"errors"
	"testing"
)

func TestParseModelOutput(t *testing.T) {
	t.Run("PlainJSON", func(t *testing.T) {
		result, err := ParseModelOutput(`{"suitable":true,"detectedItems":["apple","oats"],"explanation":"Whole foods."}`)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !result.Suitable {
			t.Error("Expected suitable=true")
		}
		if len(result.DetectedItems) != 2 || result.DetectedItems[0] != "apple" {
			t.Errorf("Unexpected detected items: %v", result.DetectedItems)
		}
		if result.Explanation != "Whole foods." {
			t.Errorf("Unexpected explanation: %q", result.Explanation)
		}
	})

	t.Run("FencedJSON", func(t *testing.T) {
		raw := "```json\n{\"suitable\":true,\"detectedItems\":[\"apple\"],\"explanation\":\"ok\"}\n```"
		result, err := ParseModelOutput(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !result.Suitable {
			t.Error("Expected suitable=true")
		}
		if len(result.DetectedItems) != 1 || result.DetectedItems[0] != "apple" {
			t.Errorf("Unexpected detected items: %v", result.DetectedItems)
		}
		if result.Explanation != "ok" {
			t.Errorf("Expected explanation 'ok', got %q", result.Explanation)
		}
		if result.Nutrients == nil || len(result.Nutrients) != 0 {
			t.Errorf("Expected empty non-nil nutrients, got %#v", result.Nutrients)
		}
	})

	t.Run("FencedWithoutLanguageTag", func(t *testing.T) {
		raw := "```\n{\"suitable\":false,\"detectedItems\":[]}\n```"
		result, err := ParseModelOutput(raw)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if result.Suitable {
			t.Error("Expected suitable=false")
		}
	})

	t.Run("NoBracesIsFormatError", func(t *testing.T) {
		raw := "I cannot analyze this image."
		_, err := ParseModelOutput(raw)
		var ae *Error
		if !errors.As(err, &ae) {
			t.Fatalf("Expected *Error, got %v", err)
		}
		if ae.Kind != KindFormat {
			t.Errorf("Expected format kind, got %s", ae.Kind)
		}
		if ae.Raw != raw {
			t.Errorf("Expected raw text %q to be carried, got %q", raw, ae.Raw)
		}
	})

	t.Run("MissingFieldsIsFormatError", func(t *testing.T) {
		_, err := ParseModelOutput(`{"explanation":"ok"}`)
		var ae *Error
		if !errors.As(err, &ae) {
			t.Fatalf("Expected *Error, got %v", err)
		}
		if ae.Kind != KindFormat {
			t.Errorf("Expected format kind, got %s", ae.Kind)
		}
	})

	t.Run("WrongTypedFieldIsFormatError", func(t *testing.T) {
		_, err := ParseModelOutput(`{"suitable":"yes","detectedItems":["apple"]}`)
		if KindOf(err) != KindFormat {
			t.Errorf("Expected format kind, got %s", KindOf(err))
		}
	})

	t.Run("ExplanationFallback", func(t *testing.T) {
		result, err := ParseModelOutput(`{"suitable":true,"detectedItems":["rice"]}`)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if result.Explanation != DefaultExplanation {
			t.Errorf("Expected fallback explanation %q, got %q", DefaultExplanation, result.Explanation)
		}
	})
}

func TestStripDataURL(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"RawBase64", "aGVsbG8=", "aGVsbG8="},
		{"JPEGDataURL", "data:image/jpeg;base64,aGVsbG8=", "aGVsbG8="},
		{"PNGDataURL", "data:image/png;base64,aGVsbG8=", "aGVsbG8="},
		{"DataPrefixWithoutBase64Marker", "data:text/plain,hello", "data:text/plain,hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StripDataURL(tc.input); got != tc.want {
				t.Errorf("StripDataURL(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
