package store

import (
	"fmt"
)

// KV is a string key-value store
type KV interface {
	// Get returns the value for key and whether it exists
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases the store
	Close() error
}

// Open creates the KV store selected by driver ("file", "sqlite" or "memory")
func Open(driver, path string) (KV, error) {
	switch driver {
	case "file", "":
		return OpenFileKV(path)
	case "sqlite":
		return OpenSQLiteKV(path)
	case "memory":
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}
