package models

import "fmt"

// SignInStatus is the outcome of a credential check.
type SignInStatus int

const (
	SignInSuccess SignInStatus = iota
	SignInLockedOut
	// SignInRequiresVerification is part of the outcome set but nothing
	// produces it yet.
	SignInRequiresVerification
	SignInFailure
)

var signInStatusNames = map[SignInStatus]string{
	SignInSuccess:              "Success",
	SignInLockedOut:            "LockedOut",
	SignInRequiresVerification: "RequiresVerification",
	SignInFailure:              "Failure",
}

func (s SignInStatus) String() string {
	if name, ok := signInStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SignInStatus(%d)", int(s))
}

// ParseSignInStatus is the inverse of String.
func ParseSignInStatus(s string) (SignInStatus, error) {
	for status, name := range signInStatusNames {
		if name == s {
			return status, nil
		}
	}
	return SignInFailure, fmt.Errorf("unknown sign-in status %q", s)
}
