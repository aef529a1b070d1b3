package prefs

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMemStore_Basics(t *testing.T) {
	store := NewMemStore()

	if store.Has("editor.fontSize") {
		t.Error("Empty store should not have keys")
	}
	if got := store.Get("editor.fontSize"); got != "" {
		t.Errorf("Expected empty value for missing key, got %q", got)
	}

	store.Set("editor.fontSize", "12")
	store.Set("editor.wrapLines", "true")

	if !store.Has("editor.fontSize") {
		t.Error("Store should have editor.fontSize")
	}
	if got := store.Get("editor.fontSize"); got != "12" {
		t.Errorf("Expected '12', got %q", got)
	}
	if store.Len() != 2 {
		t.Errorf("Expected 2 keys, got %d", store.Len())
	}

	store.Delete("editor.fontSize")
	if store.Has("editor.fontSize") {
		t.Error("Key should be gone after delete")
	}
}

func TestMemStore_KeysSorted(t *testing.T) {
	store := NewMemStore()
	store.Set("zebra", "1")
	store.Set("alpha", "2")
	store.Set("middle", "3")

	want := []string{"alpha", "middle", "zebra"}
	if got := store.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestMemStore_SnapshotIsCopy(t *testing.T) {
	store := NewMemStore()
	store.Set("key", "value")

	snapshot := store.Snapshot()
	snapshot["key"] = "mutated"

	if got := store.Get("key"); got != "value" {
		t.Errorf("Snapshot mutation leaked into store: %q", got)
	}
}

func TestLoadTOML_FlattensTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.toml")
	content := `
"workbench.theme" = "dark"

[editor]
fontSize = "12"
wrapLines = true

[editor.minimap]
enabled = "false"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write preferences file: %v", err)
	}

	store, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	cases := map[string]string{
		"workbench.theme":        "dark",
		"editor.fontSize":        "12",
		"editor.wrapLines":       "true",
		"editor.minimap.enabled": "false",
	}
	for key, want := range cases {
		if got := store.Get(key); got != want {
			t.Errorf("Key %s: expected %q, got %q", key, want, got)
		}
	}
}

func TestLoadTOML_MissingFile(t *testing.T) {
	if _, err := LoadTOML("/nonexistent/preferences.toml"); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoadTOML_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	os.WriteFile(path, []byte("not [valid toml"), 0644)
	if _, err := LoadTOML(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	store := NewMemStore()
	store.Set("editor.fontSize", "12")
	store.Set("workbench.theme", "dark")

	path := filepath.Join(t.TempDir(), "preferences.toml")
	if err := store.SaveTOML(path); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loaded, err := LoadTOML(path)
	if err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if !reflect.DeepEqual(loaded.Snapshot(), store.Snapshot()) {
		t.Errorf("Round trip mismatch: %v vs %v", loaded.Snapshot(), store.Snapshot())
	}
}

func TestIsBoolLiteral(t *testing.T) {
	literal := []string{"true", "false"}
	for _, value := range literal {
		if !isBoolLiteral(value) {
			t.Errorf("Expected %q to be a bool literal", value)
		}
	}

	notLiteral := []string{"", "True", "FALSE", "1", "0", "t", "yes", " true"}
	for _, value := range notLiteral {
		if isBoolLiteral(value) {
			t.Errorf("Expected %q not to be a bool literal", value)
		}
	}
}
