// Package store provides the named-JSON-document persistence layer. All
// state lives in whole documents addressed by string keys ("clubs",
// "bookings:<clubID>", ...), serialized and deserialized in full on every
// access. Backends: in-memory (tests), Badger (embedded), Postgres.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get when no document exists under a key.
// Callers that want a default fall back to their zero value.
var ErrKeyNotFound = errors.New("key not found")

// UpdateFunc transforms the current document into its replacement.
// cur is nil when no document exists yet. Returning an error aborts the
// update without writing.
type UpdateFunc func(cur []byte) (next []byte, err error)

// Store is a durable key-value document store. Update is an atomic
// read-modify-write: no concurrent writer can interleave between the read
// and the write of the same key. It is the serialization point for
// conflict-checked mutations.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, doc []byte) error
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Document key builders. Per-club collections are keyed by club ID; there
// is no global index across clubs.

func UsersKey() string                     { return "users" }
func ClubsKey() string                     { return "clubs" }
func BookingsKey(clubID string) string     { return "bookings:" + clubID }
func SessionsKey(clubID string) string     { return "sessions:" + clubID }
func PlayersKey(clubID string) string      { return "players:" + clubID }
func TransactionsKey(clubID string) string { return "transactions:" + clubID }
func ExpensesKey(clubID string) string     { return "expenses:" + clubID }
func InventoryKey(clubID string) string    { return "inventory:" + clubID }

// GetJSON decodes the document under key into out. When the key is absent
// it leaves out untouched and returns nil, so callers keep their prepared
// default. Use Store.Get directly to observe absence.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode document %q: %w", key, err)
	}
	return nil
}

// PutJSON encodes val and stores it under key, replacing any previous
// document.
func PutJSON(ctx context.Context, s Store, key string, val any) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode document %q: %w", key, err)
	}
	return s.Put(ctx, key, raw)
}

// UpdateJSON runs an atomic read-modify-write on the typed document under
// key. fn receives the decoded current value (zero-valued when the key is
// absent) and mutates it in place; the result is written back in the same
// atomic step.
func UpdateJSON[T any](ctx context.Context, s Store, key string, fn func(*T) error) error {
	return s.Update(ctx, key, func(cur []byte) ([]byte, error) {
		var doc T
		if cur != nil {
			if err := json.Unmarshal(cur, &doc); err != nil {
				return nil, fmt.Errorf("decode document %q: %w", key, err)
			}
		}
		if err := fn(&doc); err != nil {
			return nil, err
		}
		next, err := json.Marshal(&doc)
		if err != nil {
			return nil, fmt.Errorf("encode document %q: %w", key, err)
		}
		return next, nil
	})
}
