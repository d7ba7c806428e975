// Package common defines shared sentinel errors used across the key store
// and its tooling. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Configuration errors, raised before any I/O.
	ErrorConfiguration = errors.New("invalid configuration")

	// Repository-level errors.
	ErrorNotFound        = errors.New("not found")
	ErrorConstraint      = errors.New("constraint violation")
	ErrorIncorrectRecord = errors.New("incorrect record")

	// Connection lifecycle errors.
	ErrorNotConnected     = errors.New("not connected")
	ErrorAlreadyConnected = errors.New("already connected")
	ErrorClosed           = errors.New("store closed")
)
