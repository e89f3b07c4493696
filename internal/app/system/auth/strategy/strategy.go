// internal/app/system/auth/strategy/strategy.go
package strategy

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	userstore "github.com/dalemusser/glowsite/internal/app/store/users"
	"github.com/dalemusser/glowsite/internal/app/system/authutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrBadCredentials is returned when the email exists but the password does
// not match, or when the account has no stored credentials.
var ErrBadCredentials = errors.New("bad credentials")

// Result describes a successful authentication.
type Result struct {
	UserID primitive.ObjectID // zero for dev sessions
	Email  string
	Dev    bool
}

// Strategy authenticates an allow-listed admin email against a password.
// The caller checks the allow-list first; strategies only verify credentials.
type Strategy interface {
	Authenticate(ctx context.Context, email, password string) (*Result, error)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Password strategy (production)                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// PasswordStrategy verifies credentials against bcrypt hashes in the users
// collection.
type PasswordStrategy struct {
	Users *userstore.Store
}

// NewPasswordStrategy creates a database-backed password strategy.
func NewPasswordStrategy(users *userstore.Store) *PasswordStrategy {
	return &PasswordStrategy{Users: users}
}

// Authenticate implements Strategy.
func (s *PasswordStrategy) Authenticate(ctx context.Context, email, password string) (*Result, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}

	if !authutil.CheckPassword(password, u.PasswordHash) {
		return nil, ErrBadCredentials
	}

	return &Result{UserID: u.ID, Email: u.Email}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| Dev strategy (local development)                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// DevStrategy verifies credentials against a fixed set of development
// accounts supplied via configuration. No database rows are involved and
// the resulting sessions are marked as dev sessions.
type DevStrategy struct {
	creds map[string]string // email -> plaintext password
}

// ParseDevCredentials decodes a base64 "email:password,email:password"
// credential list into a DevStrategy. An empty input yields a strategy that
// rejects everything.
func ParseDevCredentials(encoded string) (*DevStrategy, error) {
	s := &DevStrategy{creds: map[string]string{}}
	if strings.TrimSpace(encoded) == "" {
		return s, nil
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, errors.New("dev credentials are not valid base64")
	}

	for _, pair := range strings.Split(string(raw), ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		email, password, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, errors.New("dev credentials must be email:password pairs")
		}
		s.creds[strings.ToLower(strings.TrimSpace(email))] = password
	}

	return s, nil
}

// Emails returns the configured dev account emails.
func (s *DevStrategy) Emails() []string {
	out := make([]string, 0, len(s.creds))
	for email := range s.creds {
		out = append(out, email)
	}
	return out
}

// Authenticate implements Strategy.
func (s *DevStrategy) Authenticate(_ context.Context, email, password string) (*Result, error) {
	want, ok := s.creds[strings.ToLower(strings.TrimSpace(email))]
	if !ok || want != password {
		return nil, ErrBadCredentials
	}
	return &Result{Email: strings.ToLower(strings.TrimSpace(email)), Dev: true}, nil
}
