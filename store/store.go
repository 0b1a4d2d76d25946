// Package store defines the key/value storage interfaces used by the brain
// along with a local leveldb implementation. Entries live in silos: named
// sub-collections (users, channels, scores) that can be scanned or
// overwritten independently.
package store

import (
	"errors"
)

// ErrNotFound is returned by lookups for keys that have no entry. Callers use
// it to tell an absent record apart from a storage failure.
var ErrNotFound = errors.New("key not found")

// StringStorer is implemented by storers operating on the default silo only
type StringStorer interface {
	// GetString retrieves the value associated to the key
	GetString(key string) (value string, err error)

	// PutString adds or updates the value associated to the key
	PutString(key string, value string) (err error)

	// DeleteString deletes the entry for the given key
	DeleteString(key string) (err error)

	// Scan returns all key/values from the default silo
	Scan() (entries map[string]string, err error)

	// Close closes the underlying storage
	Close() (err error)
}

// SiloStringStorer is implemented by storers that keep entries in named silos
type SiloStringStorer interface {
	StringStorer

	// GetSiloString retrieves the value associated to the key in the given silo
	GetSiloString(silo string, key string) (value string, err error)

	// PutSiloString adds or updates the value associated to the key in the given silo
	PutSiloString(silo string, key string, value string) (err error)

	// DeleteSiloString deletes the silo entry for the given key
	DeleteSiloString(silo string, key string) (err error)

	// ScanSilo returns all key/values of a silo
	ScanSilo(silo string) (entries map[string]string, err error)
}

// GlobalSiloStringStorer adds a scan over all silos to a SiloStringStorer
type GlobalSiloStringStorer interface {
	SiloStringStorer

	// GlobalScan returns all key/values keyed by silo
	GlobalScan() (entries map[string]map[string]string, err error)
}
