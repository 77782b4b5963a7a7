// Package kv provides the string-keyed slots the journal and theme state
// persist into.
package kv

import (
	"context"
	"errors"
)

// Slot names shared by the stores.
const (
	KeyEntries = "journal-entries"
	KeyTheme   = "theme"
)

var ErrClosed = errors.New("kv: storage closed")

// Storage is a synchronous string key-value store. Set returns only after the
// value is durable.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
