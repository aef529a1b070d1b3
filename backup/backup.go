// Package backup provides pluggable storage backends for settings snapshots.
//
// A snapshot bundles an application's preference values and its active
// language selection into a single TOML document, so that a workstation's
// configuration can be carried to another machine or restored after a
// reinstall.
//
// Features:
//   - Pluggable backends (Local, S3, GCS, Azure Blob)
//   - Consistent API across all providers
//   - Pre-signed URL generation for sharing snapshots
//   - Snapshot/Restore round-trip for preference stores
//
// Example:
//
//	store := backup.NewLocal(filepath.Join(home, ".pde", "backups"))
//	defer store.Close()
//
//	path, err := backup.Snapshot(store, "workstation", prefStore, provider.Code())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("snapshot written to", path)
package backup

import (
	"io"
	"time"
)

// Store defines the interface for snapshot storage backends.
type Store interface {
	// Put writes a snapshot to the backend under the given name and
	// returns the internal path/identifier for the stored snapshot.
	Put(name string, reader io.Reader) (string, error)

	// Get returns a reader over a stored snapshot. The caller is
	// responsible for closing the returned reader.
	Get(name string) (io.ReadCloser, error)

	// Exists reports whether a snapshot with the given name is stored.
	Exists(name string) bool

	// Size returns the size of a stored snapshot in bytes.
	Size(name string) (int64, error)

	// List returns the names of all stored snapshots.
	List() ([]string, error)

	// Delete removes a stored snapshot.
	Delete(name string) error

	// SignedURL generates a pre-signed URL for temporary access to a
	// snapshot. Backends without signing support return an error.
	SignedURL(name string, expiry time.Duration) (string, error)

	// Info returns backend metadata such as location, snapshot count
	// and total size.
	Info() (map[string]interface{}, error)

	// Close releases resources held by the backend.
	Close() error
}
