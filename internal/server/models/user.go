package models

import "time"

// Well-known roles. The set is open; only RoleLocked changes behaviour.
const (
	RoleAdmin   = "Admin"
	RoleDoctor  = "Doctor"
	RolePatient = "Patient"
	RoleLocked  = "Locked"
)

// User is one account in the directory. Email is the lookup key.
type User struct {
	ID        string
	Email     string
	UserName  string
	Role      string
	CreatedAt time.Time
}

// IsLocked reports whether sign-in must be refused for this account.
func (u *User) IsLocked() bool {
	return u.Role == RoleLocked
}
