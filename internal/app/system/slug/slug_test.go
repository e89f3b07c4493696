package slug

import (
	"strings"
	"testing"
)

func TestFromTitle(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Wimpernverlängerung", "wimpernverlngerung"},
		{"Gel Nails", "gel-nails"},
		{"  Permanent Make-up  ", "permanent-make-up"},
		{"Lash   Lifting", "lash-lifting"},
		{"under_score_title", "under-score-title"},
		{"--leading and trailing--", "leading-and-trailing"},
		{"ALL CAPS", "all-caps"},
		{"Brows & Lashes", "brows-lashes"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := FromTitle(tt.title)
			if got != tt.want {
				t.Errorf("FromTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		slug    string
		wantErr error
	}{
		{"valid", "gel-nails", nil},
		{"valid with digits", "nails-2024", nil},
		{"empty", "", ErrEmpty},
		{"too short", "ab", ErrTooShort},
		{"too long", "a" + strings.Repeat("b", MaxLength), ErrTooLong},
		{"starts with digit", "1nails", ErrMustStartWith},
		{"starts with hyphen", "-nails", ErrMustStartWith},
		{"uppercase", "Gel-Nails", ErrMustStartWith},
		{"invalid chars", "gel_nails", ErrInvalidChars},
		{"space", "gel nails", ErrInvalidChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.slug)
			if err != tt.wantErr {
				t.Errorf("Validate(%q) = %v, want %v", tt.slug, err, tt.wantErr)
			}
		})
	}
}

func TestFromTitle_ProducesValidSlug(t *testing.T) {
	titles := []string{
		"Gel Nails",
		"Permanent Make-up",
		"Lash Lifting und Brow Styling",
	}
	for _, title := range titles {
		s := FromTitle(title)
		if err := Validate(s); err != nil {
			t.Errorf("FromTitle(%q) = %q is not valid: %v", title, s, err)
		}
	}
}
