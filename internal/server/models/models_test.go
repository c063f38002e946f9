package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInStatus_StringRoundTrip(t *testing.T) {
	for _, s := range []SignInStatus{SignInSuccess, SignInLockedOut, SignInRequiresVerification, SignInFailure} {
		got, err := ParseSignInStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestSignInStatus_Names(t *testing.T) {
	assert.Equal(t, "Success", SignInSuccess.String())
	assert.Equal(t, "LockedOut", SignInLockedOut.String())
	assert.Equal(t, "Failure", SignInFailure.String())
	assert.Equal(t, "SignInStatus(42)", SignInStatus(42).String())
}

func TestParseSignInStatus_Unknown(t *testing.T) {
	got, err := ParseSignInStatus("Maybe")
	require.Error(t, err)
	assert.Equal(t, SignInFailure, got)
}

func TestUser_IsLocked(t *testing.T) {
	assert.True(t, (&User{Role: RoleLocked}).IsLocked())
	assert.False(t, (&User{Role: RoleAdmin}).IsLocked())
	assert.False(t, (&User{Role: "locked"}).IsLocked())
}
