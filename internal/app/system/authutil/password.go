// internal/app/system/authutil/password.go

// Package authutil provides password hashing and the password strength
// policy for admin accounts.
package authutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Password policy constants
const (
	MinPasswordLength = 12
	BcryptCost        = 12
)

// Strength levels, weakest to strongest.
const (
	LevelVeryWeak   = "very-weak"
	LevelWeak       = "weak"
	LevelMedium     = "medium"
	LevelStrong     = "strong"
	LevelVeryStrong = "very-strong"
)

// Strength is the result of evaluating a password against the policy.
// Feedback lists the unmet requirements in the language of the admin UI.
type Strength struct {
	Score    int      `json:"score"`
	Level    string   `json:"level"`
	Feedback []string `json:"feedback"`
	IsValid  bool     `json:"isValid"`
}

// symbolChars is the set of characters that satisfy the special character
// requirement. Anything outside it (spaces, emoji) does not count.
const symbolChars = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// weakPrefixes are trivially guessable openings.
var weakPrefixes = []string{"123", "abc", "qwerty"}

// ValidatePassword evaluates a password against the policy. A password is
// valid when it is at least MinPasswordLength characters long and produces
// no feedback.
func ValidatePassword(password string) Strength {
	var (
		hasUpper, hasLower, hasDigit, hasSymbol bool
	)
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(symbolChars, r):
			hasSymbol = true
		}
	}

	var feedback []string
	score := 0

	length := utf8.RuneCountInString(password)
	if length >= MinPasswordLength {
		score++
	} else {
		feedback = append(feedback, "Mindestens 12 Zeichen erforderlich")
	}
	if length >= 16 {
		score++
	}

	if hasUpper {
		score++
	} else {
		feedback = append(feedback, "Mindestens ein Großbuchstabe erforderlich")
	}
	if hasLower {
		score++
	} else {
		feedback = append(feedback, "Mindestens ein Kleinbuchstabe erforderlich")
	}
	if hasDigit {
		score++
	} else {
		feedback = append(feedback, "Mindestens eine Zahl erforderlich")
	}
	if hasSymbol {
		score++
	} else {
		feedback = append(feedback, "Mindestens ein Sonderzeichen erforderlich (!@#$%^&* etc.)")
	}

	if hasWeakPattern(password) {
		score--
		feedback = append(feedback, "Vermeiden Sie einfache Muster")
	}
	if score < 0 {
		score = 0
	}

	var level string
	switch {
	case score <= 1:
		level = LevelVeryWeak
	case score == 2:
		level = LevelWeak
	case score == 3:
		level = LevelMedium
	case score == 4:
		level = LevelStrong
	default:
		level = LevelVeryStrong
	}

	return Strength{
		Score:    score,
		Level:    level,
		Feedback: feedback,
		IsValid:  len(feedback) == 0 && length >= MinPasswordLength,
	}
}

func hasWeakPattern(password string) bool {
	if password == "" {
		return false
	}

	allDigits := true
	allLetters := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
		}
		if !unicode.IsLetter(r) {
			allLetters = false
		}
	}
	if allDigits || allLetters {
		return true
	}

	if hasRepeatedRun(password) {
		return true
	}

	lower := strings.ToLower(password)
	for _, p := range weakPrefixes {
		if strings.HasPrefix(lower, p) {
			return true
		}
	}

	return false
}

// hasRepeatedRun reports whether the password contains the same character
// three or more times in a row.
func hasRepeatedRun(password string) bool {
	var prev rune
	run := 0
	for _, r := range password {
		if r == prev {
			run++
			if run >= 3 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// HashPassword hashes a password using bcrypt.
// The password should be validated with ValidatePassword first.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a plain-text password with a bcrypt hash.
// Returns true if the password matches, false otherwise.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
