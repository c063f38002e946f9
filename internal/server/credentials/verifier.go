// Package credentials decides whether a password is acceptable for a user.
// The account service only sees the Verifier interface.
package credentials

import (
	"context"
	"crypto/subtle"

	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
)

// Verifier checks a candidate password for user.
type Verifier interface {
	Verify(ctx context.Context, user *models.User, password string) bool
}

// PlaceholderPassword is the one password PlaceholderVerifier accepts.
const PlaceholderPassword = "password"

// PlaceholderVerifier accepts PlaceholderPassword for every user. Accounts
// carry no stored secret yet, so this stands in for real verification.
type PlaceholderVerifier struct{}

func (PlaceholderVerifier) Verify(_ context.Context, _ *models.User, password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(PlaceholderPassword)) == 1
}

// VerifierFunc adapts a plain function to Verifier.
type VerifierFunc func(ctx context.Context, user *models.User, password string) bool

func (f VerifierFunc) Verify(ctx context.Context, user *models.User, password string) bool {
	return f(ctx, user, password)
}
