package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write catalog file: %v", err)
	}
	return path
}

func TestLoadCatalog_Declaration(t *testing.T) {
	path := writeCatalogFile(t, `
[[pane]]
name = "Editor"

  [[pane.group]]
  name = "General"

    [[pane.group.entry]]
    key = "editor.fontSize"
    description = "preferences.editor.fontSize"
    control = "text"
    width = 6

    [[pane.group.entry]]
    key = "editor.wrapLines"
    control = "toggle"

[[pane]]
name = "Advanced"

  [[pane.group]]
  name = "Other"

    [[pane.group.entry]]
    key = "preferences.show_other"
    control = "toggle"
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	if len(catalog.Panes()) != 2 {
		t.Fatalf("Expected 2 panes, got %d", len(catalog.Panes()))
	}

	group := catalog.FindGroupWithKey("editor.fontSize")
	if group == nil {
		t.Fatal("Expected group containing editor.fontSize")
	}
	if group.Name != "General" || group.PaneName() != "Editor" {
		t.Errorf("Unexpected group placement: %s / %s", group.PaneName(), group.Name)
	}

	descriptors := group.Descriptors()
	if descriptors[0].Control.Kind != ControlTextField || descriptors[0].Control.MaxWidth != 6 {
		t.Errorf("Unexpected fontSize control: %+v", descriptors[0].Control)
	}
	if descriptors[0].DescriptionKey != "preferences.editor.fontSize" {
		t.Errorf("Unexpected description key: %q", descriptors[0].DescriptionKey)
	}
	if descriptors[1].Control.Kind != ControlToggle {
		t.Errorf("Expected toggle for wrapLines, got %+v", descriptors[1].Control)
	}
}

func TestLoadCatalog_Defaults(t *testing.T) {
	path := writeCatalogFile(t, `
[[pane]]
name = "Editor"

  [[pane.group]]
  name = "General"

    [[pane.group.entry]]
    key = "editor.theme"
`)

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}

	d := catalog.FindGroupWithKey("editor.theme").Descriptors()[0]
	if d.Control.Kind != ControlTextField || d.Control.MaxWidth != DefaultTextFieldWidth {
		t.Errorf("Expected default text control, got %+v", d.Control)
	}
	// Description defaults to the key itself.
	if d.DescriptionKey != "editor.theme" {
		t.Errorf("Expected description 'editor.theme', got %q", d.DescriptionKey)
	}
}

func TestLoadCatalog_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unnamed pane", "[[pane]]\n"},
		{"entry without key", `
[[pane]]
name = "P"
  [[pane.group]]
  name = "G"
    [[pane.group.entry]]
    control = "toggle"
`},
		{"unknown control", `
[[pane]]
name = "P"
  [[pane.group]]
  name = "G"
    [[pane.group.entry]]
    key = "a.b"
    control = "slider"
`},
		{"malformed toml", "not [valid"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeCatalogFile(t, tc.content)
			if _, err := LoadCatalog(path); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
