package services

import (
	"strings"
	"testing"
)

func TestFallbackResponse_KeywordMatch(t *testing.T) {
	resp := FallbackResponse("What should I do about my HEADACHE?")
	if !strings.Contains(resp, "Headaches can be caused") {
		t.Errorf("expected headache response, got %q", resp)
	}
}

func TestFallbackResponse_CaseInsensitive(t *testing.T) {
	lower := FallbackResponse("tell me about diabetes")
	upper := FallbackResponse("TELL ME ABOUT DIABETES")
	if lower != upper {
		t.Error("matching is not case-insensitive")
	}
}

func TestFallbackResponse_KeywordOrderIsStable(t *testing.T) {
	// "fever" precedes "cough" in the table, so a query mentioning
	// both must always get the fever response.
	resp := FallbackResponse("I have a cough and a fever")
	if !strings.Contains(resp, "Fever is often a sign of infection") {
		t.Errorf("expected fever response for mixed query, got %q", resp)
	}
}

func TestFallbackResponse_MultiWordKeyword(t *testing.T) {
	resp := FallbackResponse("is my blood pressure too high?")
	if !strings.Contains(resp, "120/80 mmHg") {
		t.Errorf("expected blood pressure response, got %q", resp)
	}
}

func TestFallbackResponse_CategoryMatch(t *testing.T) {
	cases := map[string]string{
		"my knee hurts":                 "experiencing symptoms",
		"what is the cure for this":     "Treatment recommendations",
		"how can I prevent getting ill": "Preventive healthcare",
	}
	for query, want := range cases {
		if resp := FallbackResponse(query); !strings.Contains(resp, want) {
			t.Errorf("%q: expected category response containing %q, got %q", query, want, resp)
		}
	}
}

func TestFallbackResponse_KeywordBeatsCategory(t *testing.T) {
	// "headache" contains "ache", but the keyword table is consulted
	// before the category lists.
	resp := FallbackResponse("headache")
	if !strings.Contains(resp, "Headaches can be caused") {
		t.Errorf("expected keyword response, got %q", resp)
	}
}

func TestFallbackResponse_GenericDisclaimer(t *testing.T) {
	resp := FallbackResponse("what's the weather like today")
	if !strings.Contains(resp, "Thank you for your medical question") {
		t.Errorf("expected generic disclaimer, got %q", resp)
	}
}

func TestFallbackResponse_NeverEmpty(t *testing.T) {
	for _, query := range []string{"", "   ", "xyzzy"} {
		if FallbackResponse(query) == "" {
			t.Errorf("empty response for query %q", query)
		}
	}
}
