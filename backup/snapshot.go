package backup

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/kdsmith18542/prefkit/observability"
	"github.com/kdsmith18542/prefkit/prefs"
)

// snapshotDoc is the TOML document written to a backend.
type snapshotDoc struct {
	Created     time.Time         `toml:"created"`
	Language    string            `toml:"language"`
	Preferences map[string]string `toml:"preferences"`
}

// Snapshot serializes the preference store and the active language code
// into a TOML document and writes it to dst under the given name. It
// returns the path reported by the backend.
func Snapshot(dst Store, name string, store prefs.Store, language string) (string, error) {
	ctx := context.Background()
	obs := observability.GetObserver()
	obs.OnBackupStart(ctx, name)
	start := time.Now()

	doc := snapshotDoc{
		Created:     time.Now().UTC(),
		Language:    language,
		Preferences: make(map[string]string),
	}
	for _, key := range store.Keys() {
		doc.Preferences[key] = store.Get(key)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		obs.OnBackupError(ctx, name, err.Error())
		return "", fmt.Errorf("failed to encode snapshot: %v", err)
	}

	size := int64(buf.Len())
	path, err := dst.Put(name, &buf)
	if err != nil {
		obs.OnBackupError(ctx, name, err.Error())
		obs.OnBackupEnd(ctx, name, 0, time.Since(start), false)
		return "", err
	}

	obs.OnBackupEnd(ctx, name, size, time.Since(start), true)
	return path, nil
}

// Restore reads a snapshot back from src and rebuilds the preference
// store it captured. It returns the store and the language code that was
// active when the snapshot was taken.
func Restore(src Store, name string) (*prefs.MemStore, string, error) {
	reader, err := src.Get(name)
	if err != nil {
		return nil, "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read snapshot: %v", err)
	}

	var doc snapshotDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, "", fmt.Errorf("failed to parse snapshot %s: %v", name, err)
	}

	store := prefs.NewMemStore()
	for key, value := range doc.Preferences {
		store.Set(key, value)
	}
	return store, doc.Language, nil
}
