package commands

import (
	"errors"
	"testing"

	"github.com/hay-kot/criterio"
)

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		name string
		vals []string
		want string
	}{
		{name: "first wins", vals: []string{"a", "b"}, want: "a"},
		{name: "skips empty", vals: []string{"", "b"}, want: "b"},
		{name: "all empty", vals: []string{"", ""}, want: ""},
		{name: "no values", vals: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNonEmpty(tt.vals...); got != tt.want {
				t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.vals, got, tt.want)
			}
		})
	}
}

func TestRequiredField(t *testing.T) {
	check := requiredField("name")

	if err := check("value"); err != nil {
		t.Errorf("unexpected error for non-empty value: %v", err)
	}
	if err := check("   "); err == nil {
		t.Error("expected error for whitespace value")
	}
	if err := check(""); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestExtractFieldErrors(t *testing.T) {
	if got := extractFieldErrors(nil); got != nil {
		t.Errorf("extractFieldErrors(nil) = %v, want nil", got)
	}

	fieldErrs := criterio.FieldErrors{
		{Field: "base_url", Err: errors.New("missing scheme")},
	}
	got := extractFieldErrors(fieldErrs)
	if len(got) != 1 || got[0].Field != "base_url" {
		t.Errorf("extractFieldErrors(fieldErrs) = %v", got)
	}

	plain := errors.New("boom")
	got = extractFieldErrors(plain)
	if len(got) != 1 || got[0].Err.Error() != "boom" {
		t.Errorf("extractFieldErrors(plain) = %v", got)
	}
}
