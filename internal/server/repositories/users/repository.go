// Package users stores user records behind the Repository interface. The
// account service depends only on Repository; MemoryRepository and
// PostgresRepository are interchangeable implementations.
package users

import (
	"context"

	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
)

type Repository interface {
	// Add stores user, generating an ID when it is empty, and returns the
	// stored record. A duplicate email yields common.ErrorAlreadyExists.
	Add(ctx context.Context, user *models.User) (*models.User, error)
	// FindByEmail returns common.ErrorNotFound when no user has email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	// List returns every user in insertion order.
	List(ctx context.Context) ([]*models.User, error)
}
