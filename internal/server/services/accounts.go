// Package services contains server-side business logic. AccountService is
// the account directory: sign-in, registration and password reset over a
// users.Repository.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hospital-accounts/internal/common"
	"github.com/dmitrijs2005/hospital-accounts/internal/dbx"
	"github.com/dmitrijs2005/hospital-accounts/internal/logging"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/credentials"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/repositories/users"
)

// RegisterRequest carries the fields of a registration form. Password is
// accepted but not stored: accounts have no password field.
type RegisterRequest struct {
	Email    string
	UserName string
	Password string
	Role     string
}

// AccountService answers account questions. Negative outcomes (unknown
// email, wrong password, locked account, duplicate registration) are return
// values; the error result is reserved for storage faults.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	verifier    credentials.Verifier
	logger      logging.Logger
}

// NewAccountService constructs an AccountService. db may be nil when m does
// not need a database (the memory manager); registration then relies on the
// repository's own duplicate check instead of a transaction.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, v credentials.Verifier, l logging.Logger) *AccountService {
	if v == nil {
		v = credentials.PlaceholderVerifier{}
	}
	if l == nil {
		l = logging.Nop{}
	}
	return &AccountService{
		db:          db,
		repomanager: m,
		verifier:    v,
		logger:      l.With("module", "accounts"),
	}
}

// SignIn checks email and password. Unknown email or rejected password give
// SignInFailure; an accepted password on a Locked account gives
// SignInLockedOut.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (models.SignInStatus, error) {
	user, err := s.users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "sign-in failed", "email", email, "reason", "unknown email")
			return models.SignInFailure, nil
		}
		return models.SignInFailure, fmt.Errorf("error searching user: %w", err)
	}

	if !s.verifier.Verify(ctx, user, password) {
		s.logger.Info(ctx, "sign-in failed", "email", email, "reason", "bad password")
		return models.SignInFailure, nil
	}

	if user.IsLocked() {
		s.logger.Warn(ctx, "sign-in refused", "email", email, "reason", "locked")
		return models.SignInLockedOut, nil
	}

	s.logger.Info(ctx, "signed in", "email", email, "role", user.Role)
	return models.SignInSuccess, nil
}

// Register adds a user unless the email is already taken. It reports false
// for a duplicate or empty email and leaves the directory unchanged.
func (s *AccountService) Register(ctx context.Context, req RegisterRequest) (bool, error) {
	if req.Email == "" {
		s.logger.Warn(ctx, "registration rejected", "reason", "empty email")
		return false, nil
	}

	user := &models.User{Email: req.Email, UserName: req.UserName, Role: req.Role}

	added, err := s.addIfAbsent(ctx, user)
	if err != nil {
		return false, fmt.Errorf("error creating user: %w", err)
	}
	if added == nil {
		s.logger.Info(ctx, "registration rejected", "email", req.Email, "reason", "email taken")
		return false, nil
	}

	s.logger.Info(ctx, "registered", "email", added.Email, "id", added.ID, "role", added.Role)
	return true, nil
}

// ResetPassword reports whether an account with email exists. The new
// password is not stored anywhere.
func (s *AccountService) ResetPassword(ctx context.Context, email, newPassword string) (bool, error) {
	_, err := s.users().FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "password reset for unknown email", "email", email)
			return false, nil
		}
		return false, fmt.Errorf("error searching user: %w", err)
	}

	s.logger.Info(ctx, "password reset accepted", "email", email)
	return true, nil
}

// Users returns every account in insertion order.
func (s *AccountService) Users(ctx context.Context) ([]*models.User, error) {
	list, err := s.users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

// Seed adds each user whose email is not present yet, keeping the given IDs,
// and returns how many were added.
func (s *AccountService) Seed(ctx context.Context, seed ...*models.User) (int, error) {
	n := 0
	for _, u := range seed {
		if u.Email == "" {
			continue
		}
		added, err := s.addIfAbsent(ctx, u)
		if err != nil {
			return n, fmt.Errorf("error seeding %s: %w", u.Email, err)
		}
		if added != nil {
			n++
		}
	}
	s.logger.Info(ctx, "seeded users", "added", n, "given", len(seed))
	return n, nil
}

// --- helpers below ---

func (s *AccountService) users() users.Repository {
	return s.repomanager.Users(s.db)
}

// addIfAbsent stores user when no account has its email. It returns the
// stored record, or nil when the email was taken. With a database the
// lookup and the insert share one transaction, rolled back when the email is
// taken; the unique index on email catches concurrent inserts.
func (s *AccountService) addIfAbsent(ctx context.Context, user *models.User) (*models.User, error) {
	var added *models.User
	var err error

	if s.db == nil {
		added, err = addIfAbsent(ctx, s.repomanager.Users(nil), user)
	} else {
		err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			var txErr error
			added, txErr = addIfAbsent(ctx, s.repomanager.Users(tx), user)
			return txErr
		})
	}

	if errors.Is(err, common.ErrorAlreadyExists) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return added, nil
}

// addIfAbsent returns common.ErrorAlreadyExists when email is taken.
func addIfAbsent(ctx context.Context, repo users.Repository, user *models.User) (*models.User, error) {
	_, err := repo.FindByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, err
	}

	return repo.Add(ctx, user)
}
