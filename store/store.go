// Package store provides the key-value session store the portal persists
// through: the logged-in student, the auth token, and per-student quiz
// history. It mirrors the get/set/remove contract of the browser storage the
// product originally targeted.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("key not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
