package prefs

import (
	"reflect"
	"testing"
)

func TestCatalog_Layout(t *testing.T) {
	catalog := NewCatalog()
	editor := catalog.AddPane("Editor")
	general := editor.AddGroup("General")
	general.Add(Descriptor{Key: "editor.fontSize"})
	general.Add(Descriptor{Key: "editor.wrapLines"})

	advanced := catalog.AddPane("Advanced")
	other := advanced.AddGroup("Other")
	other.Add(Descriptor{Key: "preferences.show_other"})

	if len(catalog.Panes()) != 2 {
		t.Fatalf("Expected 2 panes, got %d", len(catalog.Panes()))
	}

	want := []string{"editor.fontSize", "editor.wrapLines", "preferences.show_other"}
	if got := catalog.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected keys %v, got %v", want, got)
	}

	if !catalog.HasKey("editor.wrapLines") {
		t.Error("Expected catalog to have editor.wrapLines")
	}
	if catalog.HasKey("editor.tabSize") {
		t.Error("Did not expect catalog to have editor.tabSize")
	}
}

func TestCatalog_FindGroupWithKey(t *testing.T) {
	catalog := NewCatalog()
	first := catalog.AddPane("First").AddGroup("A")
	first.Add(Descriptor{Key: "shared.key"})
	second := catalog.AddPane("Second").AddGroup("B")
	second.Add(Descriptor{Key: "shared.key"})

	// The first group in catalog order wins.
	if got := catalog.FindGroupWithKey("shared.key"); got != first {
		t.Errorf("Expected first group, got %v", got)
	}
	if got := catalog.FindGroupWithKey("missing.key"); got != nil {
		t.Errorf("Expected nil for missing key, got %v", got)
	}
}

func TestGroup_AddFillsPane(t *testing.T) {
	catalog := NewCatalog()
	group := catalog.AddPane("Editor").AddGroup("General")
	group.Add(Descriptor{Key: "editor.fontSize"})

	descriptors := group.Descriptors()
	if len(descriptors) != 1 {
		t.Fatalf("Expected 1 descriptor, got %d", len(descriptors))
	}
	if descriptors[0].Pane != "Editor" {
		t.Errorf("Expected pane 'Editor', got %q", descriptors[0].Pane)
	}
	if group.PaneName() != "Editor" {
		t.Errorf("Expected pane name 'Editor', got %q", group.PaneName())
	}
}

func TestGroup_Retain(t *testing.T) {
	catalog := NewCatalog()
	group := catalog.AddPane("P").AddGroup("G")
	group.Add(Descriptor{Key: "keep"})
	group.Add(Descriptor{Key: "drop.1"})
	group.Add(Descriptor{Key: "drop.2"})

	group.Retain(func(d Descriptor) bool { return d.Key == "keep" })

	if group.Len() != 1 {
		t.Fatalf("Expected 1 descriptor after retain, got %d", group.Len())
	}
	if !group.Has("keep") || group.Has("drop.1") {
		t.Error("Retain kept the wrong descriptors")
	}
}

func TestControlKind_String(t *testing.T) {
	if ControlTextField.String() != "text" {
		t.Errorf("Expected 'text', got %q", ControlTextField.String())
	}
	if ControlToggle.String() != "toggle" {
		t.Errorf("Expected 'toggle', got %q", ControlToggle.String())
	}
}
