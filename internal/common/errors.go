// Package common defines sentinel errors shared by the repository and service
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
)
