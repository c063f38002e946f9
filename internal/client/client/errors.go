package client

import "errors"

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrBadStatus   = errors.New("unexpected sign-in status")
)
