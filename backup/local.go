package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Local implements the Store interface on the local file system. Snapshots
// are written as plain files under a base directory, which makes them easy
// to inspect and to sync with external tools.
type Local struct {
	baseDir string
}

// NewLocal creates a local snapshot store rooted at baseDir. The directory
// is created on first Put.
func NewLocal(baseDir string) *Local {
	return &Local{baseDir: baseDir}
}

// Put writes a snapshot file under the base directory.
func (l *Local) Put(name string, reader io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if reader == nil {
		return "", fmt.Errorf("reader cannot be nil")
	}

	if err := os.MkdirAll(l.baseDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %v", err)
	}

	path := filepath.Join(l.baseDir, name)

	// Refuse to follow a pre-existing symlink at the target path.
	if fi, err := os.Lstat(path); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		return "", fmt.Errorf("refusing to write to symlink: %s", name)
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %v", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %v", err)
	}
	return name, nil
}

// Get opens a stored snapshot for reading.
func (l *Local) Get(name string) (io.ReadCloser, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(l.baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %v", err)
	}
	return file, nil
}

// Exists reports whether a snapshot file is present.
func (l *Local) Exists(name string) bool {
	if validateName(name) != nil {
		return false
	}
	info, err := os.Stat(filepath.Join(l.baseDir, name))
	return err == nil && !info.IsDir()
}

// Size returns the size of a snapshot file in bytes.
func (l *Local) Size(name string) (int64, error) {
	if err := validateName(name); err != nil {
		return 0, err
	}
	info, err := os.Stat(filepath.Join(l.baseDir, name))
	if err != nil {
		return 0, fmt.Errorf("snapshot does not exist: %s", name)
	}
	return info.Size(), nil
}

// List returns the names of all snapshot files under the base directory.
func (l *Local) List() ([]string, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list backup directory: %v", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Delete removes a snapshot file.
func (l *Local) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if !l.Exists(name) {
		return fmt.Errorf("snapshot does not exist: %s", name)
	}
	return os.Remove(filepath.Join(l.baseDir, name))
}

// SignedURL is unsupported for local storage.
func (l *Local) SignedURL(name string, expiry time.Duration) (string, error) {
	return "", fmt.Errorf("local storage does not support signed URLs")
}

// Info returns the base directory plus snapshot count and total size.
func (l *Local) Info() (map[string]interface{}, error) {
	info := map[string]interface{}{
		"type": "local",
		"dir":  l.baseDir,
	}
	names, err := l.List()
	if err != nil {
		return info, err
	}
	var totalSize int64
	for _, name := range names {
		if size, err := l.Size(name); err == nil {
			totalSize += size
		}
	}
	info["totalSize"] = totalSize
	info["count"] = len(names)
	return info, nil
}

// Close is a no-op for local storage.
func (l *Local) Close() error {
	return nil
}

// validateName rejects names that would escape the base directory or that
// contain bytes no sane snapshot name carries.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("snapshot name cannot be empty")
	}
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("snapshot name contains null byte")
	}
	for _, r := range name {
		if r < 32 {
			return fmt.Errorf("snapshot name contains control character: %q", r)
		}
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("snapshot name contains path traversal or separator")
	}
	return nil
}
