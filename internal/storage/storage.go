// Package storage provides the durable key-value backends the state store
// persists its slices to.
package storage

import (
	"context"
	"errors"
)

// ErrUnknownDriver is returned by Open for an unsupported storage.driver.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Storage is a string-keyed store of string values that survives restarts
// (except for the memory backend).
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
