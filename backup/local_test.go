package backup

import (
	"io"
	"strings"
	"testing"
	"time"
)

func TestLocal_PutGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)

	content := "language = \"es\"\n"
	name := "workstation.toml"
	if _, err := store.Put(name, strings.NewReader(content)); err != nil {
		t.Fatalf("Failed to put snapshot: %v", err)
	}

	if !store.Exists(name) {
		t.Error("Snapshot should exist after put")
	}

	size, err := store.Size(name)
	if err != nil {
		t.Errorf("Size failed: %v", err)
	}
	if size != int64(len(content)) {
		t.Errorf("Expected size %d, got %d", len(content), size)
	}

	reader, err := store.Get(name)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	data, err := io.ReadAll(reader)
	reader.Close()
	if err != nil {
		t.Fatalf("Failed to read snapshot: %v", err)
	}
	if string(data) != content {
		t.Errorf("Expected content %q, got %q", content, string(data))
	}

	names, err := store.List()
	if err != nil {
		t.Errorf("List failed: %v", err)
	}
	found := false
	for _, n := range names {
		if n == name {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected snapshot %q in list", name)
	}

	if err := store.Delete(name); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if store.Exists(name) {
		t.Error("Snapshot should not exist after delete")
	}
}

func TestLocal_ListEmptyDir(t *testing.T) {
	store := NewLocal("/nonexistent/backup/dir")
	names, err := store.List()
	if err != nil {
		t.Errorf("List on missing dir should not fail: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("Expected no snapshots, got %v", names)
	}
}

func TestLocal_InvalidNames(t *testing.T) {
	store := NewLocal(t.TempDir())

	cases := []string{"", "../escape.toml", "a/b.toml", "bad\x00name"}
	for _, name := range cases {
		if _, err := store.Put(name, strings.NewReader("data")); err == nil {
			t.Errorf("Expected error for name %q", name)
		}
	}
}

func TestLocal_NilReader(t *testing.T) {
	store := NewLocal(t.TempDir())
	if _, err := store.Put("file.toml", nil); err == nil {
		t.Error("Expected error for nil reader")
	}
}

func TestLocal_SignedURLUnsupported(t *testing.T) {
	store := NewLocal(t.TempDir())
	if _, err := store.SignedURL("any.toml", time.Minute); err == nil {
		t.Error("Expected error for signed URL on local storage")
	}
}

func TestLocal_Info(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)
	if _, err := store.Put("a.toml", strings.NewReader("aaaa")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if _, err := store.Put("b.toml", strings.NewReader("bb")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	info, err := store.Info()
	if err != nil {
		t.Fatalf("Info failed: %v", err)
	}
	if info["type"] != "local" {
		t.Errorf("Expected type local, got %v", info["type"])
	}
	if info["count"] != 2 {
		t.Errorf("Expected count 2, got %v", info["count"])
	}
	if info["totalSize"] != int64(6) {
		t.Errorf("Expected totalSize 6, got %v", info["totalSize"])
	}
}
