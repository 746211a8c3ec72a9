package usecase

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidateOrderID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{uuid.NewString(), true},
		{"3f2504e0-4f89-11d3-9a0c-0305e82c3301", true},
		{"", false},
		{"42", false},
		{"3f2504e0-4f89-11d3-9a0c", false},
	}
	for _, tt := range tests {
		if got := ValidateOrderID(tt.id); got != tt.want {
			t.Fatalf("ValidateOrderID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestValidateSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"zus", true},
		{"kfc-rm10", true},
		{"", false},
		{"Zus", false},
		{"../etc", false},
		{"a b", false},
		{strings.Repeat("a", maxSlugLength+1), false},
	}
	for _, tt := range tests {
		if got := ValidateSlug(tt.slug); got != tt.want {
			t.Fatalf("ValidateSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
