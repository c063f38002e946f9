package wire

import "time"

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInResponse.Status is one of "Success", "LockedOut",
// "RequiresVerification" or "Failure".
type SignInResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	Registered bool `json:"registered"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"new_password"`
}

type ResetPasswordResponse struct {
	Reset bool `json:"reset"`
}

type ListUsersRequest struct{}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}
