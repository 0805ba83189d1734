package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/speechkit/errors"
)

func TestValidatorRequired(t *testing.T) {
	if New().Required("displayName", "Weekly sync").HasErrors() {
		t.Error("expected no errors for valid input")
	}
	if !New().Required("displayName", "").HasErrors() {
		t.Error("expected error for empty required field")
	}
	if !New().Required("displayName", "   ").HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorRange(t *testing.T) {
	tests := []struct {
		value   int
		wantErr bool
	}{
		{1, false}, {100, false}, {0, true}, {101, true},
	}
	for _, tt := range tests {
		if got := New().Range("top", tt.value, 1, 100).HasErrors(); got != tt.wantErr {
			t.Errorf("Range(%d) hasErrors = %v, want %v", tt.value, got, tt.wantErr)
		}
	}
}

func TestValidatorMinAndMaxLength(t *testing.T) {
	v := New().Min("skip", -1, 0).MaxLength("speaker", strings.Repeat("x", 101), 100)
	if len(v.Errors()) != 2 {
		t.Fatalf("errors = %v", v.Errors())
	}
	if v.Errors()[0].Message != "must be at least 0" {
		t.Errorf("message = %q", v.Errors()[0].Message)
	}
}

func TestValidatorLocale(t *testing.T) {
	tests := map[string]bool{
		"":           false,
		"en-US":      false,
		"zh-CN":      false,
		"sr-Latn-RS": false,
		"english":    true,
		"en_US":      true,
		"EN-us":      true,
	}
	for locale, wantErr := range tests {
		if got := New().Locale("locale", locale).HasErrors(); got != wantErr {
			t.Errorf("Locale(%q) hasErrors = %v, want %v", locale, got, wantErr)
		}
	}
}

func TestValidatorOneOf(t *testing.T) {
	formats := []string{"json", "yaml"}
	if New().OneOf("output", "yaml", formats).HasErrors() {
		t.Error("yaml should be allowed")
	}
	if New().OneOf("output", "", formats).HasErrors() {
		t.Error("empty value should be skipped")
	}
	v := New().OneOf("output", "xml", formats)
	if !v.HasErrors() || v.Errors()[0].Message != "must be one of: json, yaml" {
		t.Errorf("errors = %v", v.Errors())
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New().Custom(false, "fileIndices", "must not be empty")
	if !v.HasErrors() || v.Errors()[0].Message != "must not be empty" {
		t.Errorf("errors = %v", v.Errors())
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Required("name", "x").Validate() != nil {
		t.Error("expected nil for valid input")
	}
	if New().Error() != nil {
		t.Error("expected nil error for valid input")
	}

	appErr := New().Required("displayName", "").Range("top", 0, 1, 100).Validate()
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeValidation {
		t.Errorf("code = %s", appErr.Code)
	}
	if !strings.Contains(appErr.Message, "displayName") || !strings.Contains(appErr.Message, "top") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
	if fields, ok := appErr.Details["fields"].([]FieldError); !ok || len(fields) != 2 {
		t.Errorf("details = %v", appErr.Details)
	}
}

type segmentRequest struct {
	SegmentIndex int    `json:"segmentIndex" validate:"min=0"`
	NewText      string `json:"newText" validate:"max=10"`
	Locale       string `json:"locale" validate:"locale"`
	Operation    string `json:"operation" validate:"omitempty,oneof=rename merge replace"`
	Segments     []int  `json:"segments" validate:"required,min=1"`
}

func TestStructValidateValid(t *testing.T) {
	req := segmentRequest{SegmentIndex: 0, NewText: "hi", Locale: "en-US", Operation: "merge", Segments: []int{1}}
	if err := Validate(req); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	req := segmentRequest{SegmentIndex: -1, NewText: "much too long", Locale: "english", Operation: "split"}
	err := Validate(req)
	if errors.CodeOf(err) != errors.ErrCodeValidation {
		t.Fatalf("code = %v", errors.CodeOf(err))
	}
	msg := err.Error()
	for _, want := range []string{
		"segmentIndex: must be at least 0",
		"newText: must be at most 10 characters",
		"locale: must be a locale such as en-US",
		"operation: must be one of: rename merge replace",
		"segments: is required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}
