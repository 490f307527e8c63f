// Package common defines the sentinel errors shared by the identity
// repositories, the store facade and the CLI. Callers should use errors.Is
// to match these values; storage errors stay reachable through errors.As.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Storage engine errors, added on top of the driver error.
	ErrorDuplicateKey       = errors.New("duplicate key")
	ErrorStorageUnavailable = errors.New("storage unavailable")

	// Boundary validation errors (nil or empty required input).
	ErrorInvalidArgument = errors.New("invalid argument")
)
