package store

import "context"

// StorageKey is the fixed, versioned slot the document lives under.
// Bumping the suffix isolates incompatible schemas between releases.
const StorageKey = "sman1kwanyar_db_v7"

// Backend is one durable key-value slot. Load reports ok=false when the
// slot has never been written. Save overwrites the slot atomically.
type Backend interface {
	Load(ctx context.Context) (payload []byte, ok bool, err error)
	Save(ctx context.Context, payload []byte) error
	Close() error
}
