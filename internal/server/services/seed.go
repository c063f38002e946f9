package services

import "github.com/dmitrijs2005/hospital-accounts/internal/server/models"

// DemoUsers returns the demo directory: one account per well-known role.
func DemoUsers() []*models.User {
	return []*models.User{
		{ID: "1", Email: "admin@test.com", Role: models.RoleAdmin},
		{ID: "2", Email: "doctor@test.com", Role: models.RoleDoctor},
		{ID: "3", Email: "patient@test.com", Role: models.RolePatient},
		{ID: "4", Email: "locked@test.com", Role: models.RoleLocked},
	}
}
