package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/hospital-accounts/internal/common"
	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in an ordered slice. It is safe for
// concurrent use; the duplicate check and append in Add happen under one lock.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []*models.User
	now   func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{now: time.Now}
}

func (r *MemoryRepository) Add(ctx context.Context, user *models.User) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexByEmail(user.Email) >= 0 {
		return nil, common.ErrorAlreadyExists
	}

	stored := *user
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = r.now().UTC()
	}
	r.users = append(r.users, &stored)

	out := stored
	return &out, nil
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexByEmail(email)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	out := *r.users[i]
	return &out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) List(ctx context.Context) ([]*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.User, 0, len(r.users))
	for _, u := range r.users {
		c := *u
		out = append(out, &c)
	}
	return out, nil
}

// indexByEmail returns the position of the first user with email, or -1.
// Callers hold r.mu.
func (r *MemoryRepository) indexByEmail(email string) int {
	for i, u := range r.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}
