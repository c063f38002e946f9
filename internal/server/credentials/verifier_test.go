package credentials

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/hospital-accounts/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func TestPlaceholderVerifier(t *testing.T) {
	v := PlaceholderVerifier{}
	u := &models.User{Email: "admin@test.com", Role: models.RoleAdmin}
	ctx := context.Background()

	assert.True(t, v.Verify(ctx, u, "password"))
	assert.False(t, v.Verify(ctx, u, "Password"))
	assert.False(t, v.Verify(ctx, u, "password "))
	assert.False(t, v.Verify(ctx, u, ""))
	assert.False(t, v.Verify(ctx, u, "newpassword"))
}

func TestVerifierFunc(t *testing.T) {
	var called bool
	v := VerifierFunc(func(_ context.Context, u *models.User, pw string) bool {
		called = true
		return u.UserName == pw
	})

	assert.True(t, v.Verify(context.Background(), &models.User{UserName: "doc"}, "doc"))
	assert.True(t, called)
}
