package args

import (
	"testing"

	"github.com/simpleflo/codeserver/pkg/models"
)

func TestSuggest(t *testing.T) {
	tests := []struct {
		flag     string
		expected string
	}{
		{"--bnd-addr", "bind-addr"},
		{"--bnd-addr=0.0.0.0:80", "bind-addr"},
		{"--verbos", "verbose"},
		{"--zzzz", ""},
		{"-x", ""},
		{"--", ""},
	}

	for _, tt := range tests {
		if got := Suggest(tt.flag); got != tt.expected {
			t.Errorf("Suggest(%q) = %q, expected %q", tt.flag, got, tt.expected)
		}
	}
}

func TestParse_UnknownOptionSuggestion(t *testing.T) {
	_, err := Parse([]string{"--bnd-addr", "x"}, ParseOptions{})

	csErr, ok := err.(*models.CodeServerError)
	if !ok {
		t.Fatalf("expected *CodeServerError, got %T", err)
	}
	if csErr.Code != models.ErrUnknownOption {
		t.Errorf("code = %s", csErr.Code)
	}
	if csErr.Message != "Unknown option --bnd-addr" {
		t.Errorf("message = %q", csErr.Message)
	}
	if csErr.Details["suggestion"] != "--bind-addr" {
		t.Errorf("suggestion = %v", csErr.Details["suggestion"])
	}
}
