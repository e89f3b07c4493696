// internal/app/system/slug/slug.go

// Package slug derives and validates URL slugs for services.
package slug

import (
	"errors"
	"regexp"
	"strings"
)

// Slug length bounds
const (
	MinLength = 3
	MaxLength = 100
)

// Validation errors in the language of the admin UI.
var (
	ErrEmpty         = errors.New("Slug darf nicht leer sein")
	ErrTooShort      = errors.New("Slug muss mindestens 3 Zeichen lang sein")
	ErrTooLong       = errors.New("Slug darf maximal 100 Zeichen lang sein")
	ErrMustStartWith = errors.New("Slug muss mit einem Buchstaben beginnen")
	ErrInvalidChars  = errors.New("Slug darf nur Kleinbuchstaben, Zahlen und Bindestriche enthalten")
)

var (
	invalidChars    = regexp.MustCompile(`[^a-z0-9-]`)
	multipleHyphens = regexp.MustCompile(`-+`)
	validSlug       = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)
)

// FromTitle derives a slug from a human-readable title: lowercase, spaces
// and underscores become hyphens, everything outside [a-z0-9-] is dropped,
// runs of hyphens collapse, and leading/trailing hyphens are stripped.
func FromTitle(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = invalidChars.ReplaceAllString(s, "")
	s = multipleHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

// Validate checks a slug against the slug rules.
func Validate(s string) error {
	if s == "" {
		return ErrEmpty
	}
	if len(s) < MinLength {
		return ErrTooShort
	}
	if len(s) > MaxLength {
		return ErrTooLong
	}
	if s[0] < 'a' || s[0] > 'z' {
		return ErrMustStartWith
	}
	if !validSlug.MatchString(s) {
		return ErrInvalidChars
	}
	return nil
}
