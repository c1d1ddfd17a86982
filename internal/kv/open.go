package kv

import "fmt"

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Open returns the store for backend. An empty path selects the backend's default
// location. The returned func releases the store and is never nil.
func Open(backend, path string) (Store, func() error, error) {
	noop := func() error { return nil }
	switch backend {
	case BackendMemory:
		return NewMemory(), noop, nil
	case BackendFile:
		if path == "" {
			path = DefaultFilePath
		}
		return NewFile(path), noop, nil
	case BackendSQLite, "":
		if path == "" {
			path = DefaultSQLitePath
		}
		db, err := OpenSQLite(path)
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q", backend)
}
