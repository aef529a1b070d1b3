package prefs

import (
	"reflect"
	"testing"
)

const gateKey = "preferences.show_other"

// staticTranslations is a Translations stub backed by a key set.
type staticTranslations map[string]bool

func (s staticTranslations) Has(key string) bool { return s[key] }

// newAugmenterFixture builds a catalog with a static editor pane and the
// gate entry in an Advanced/Other group, plus a store with the gate on.
func newAugmenterFixture() (*Catalog, *MemStore) {
	catalog := NewCatalog()
	general := catalog.AddPane("Editor").AddGroup("General")
	general.Add(Descriptor{Key: "editor.fontSize"})

	other := catalog.AddPane("Advanced").AddGroup("Other")
	other.Add(Descriptor{Key: gateKey, Control: Control{Kind: ControlToggle}})

	store := NewMemStore()
	store.Set(gateKey, "true")
	store.Set("editor.fontSize", "12")
	return catalog, store
}

func TestAugmenter_AddsMissingKeysSorted(t *testing.T) {
	catalog, store := newAugmenterFixture()
	store.Set("editor.wrapLines", "true")
	store.Set("console.fontSize", "11")
	store.Set("workbench.theme", "dark")

	aug := NewAugmenter(catalog, store, gateKey, nil)
	added := aug.Augment()
	if added != 3 {
		t.Fatalf("Expected 3 added descriptors, got %d", added)
	}

	group := catalog.FindGroupWithKey(gateKey)
	want := []string{gateKey, "console.fontSize", "editor.wrapLines", "workbench.theme"}
	if got := group.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected keys %v, got %v", want, got)
	}
}

func TestAugmenter_ControlInference(t *testing.T) {
	catalog, store := newAugmenterFixture()
	store.Set("editor.wrapLines", "true")
	store.Set("console.echo", "false")
	store.Set("console.fontSize", "11")
	store.Set("sketch.flag", "True") // not a strict literal

	aug := NewAugmenter(catalog, store, gateKey, nil)
	aug.Augment()

	group := catalog.FindGroupWithKey(gateKey)
	for _, d := range group.Descriptors() {
		switch d.Key {
		case "editor.wrapLines", "console.echo":
			if d.Control.Kind != ControlToggle {
				t.Errorf("Expected toggle for %s, got %+v", d.Key, d.Control)
			}
		case "console.fontSize", "sketch.flag":
			if d.Control.Kind != ControlTextField {
				t.Errorf("Expected text field for %s, got %+v", d.Key, d.Control)
			}
			if d.Control.MaxWidth != DefaultTextFieldWidth {
				t.Errorf("Expected bounded width for %s, got %d", d.Key, d.Control.MaxWidth)
			}
		}
	}
}

func TestAugmenter_LabelNamespacing(t *testing.T) {
	catalog, store := newAugmenterFixture()
	store.Set("editor.wrapLines", "true")
	store.Set("console.fontSize", "11")

	translations := staticTranslations{
		"preferences.editor.wrapLines": true,
	}
	aug := NewAugmenter(catalog, store, gateKey, translations)
	aug.Augment()

	group := catalog.FindGroupWithKey(gateKey)
	for _, d := range group.Descriptors() {
		switch d.Key {
		case "editor.wrapLines":
			if d.DescriptionKey != "preferences.editor.wrapLines" {
				t.Errorf("Expected namespaced label, got %q", d.DescriptionKey)
			}
		case "console.fontSize":
			if d.DescriptionKey != "console.fontSize" {
				t.Errorf("Expected raw key label, got %q", d.DescriptionKey)
			}
		}
	}
}

func TestAugmenter_GateOff(t *testing.T) {
	catalog, store := newAugmenterFixture()
	store.Set("editor.wrapLines", "true")

	for _, value := range []string{"false", "True", "1", ""} {
		store.Set(gateKey, value)
		aug := NewAugmenter(catalog, store, gateKey, nil)
		if added := aug.Augment(); added != 0 {
			t.Errorf("Gate value %q: expected no additions, got %d", value, added)
		}
	}
}

func TestAugmenter_GateUnregistered(t *testing.T) {
	catalog := NewCatalog()
	catalog.AddPane("Editor").AddGroup("General")

	store := NewMemStore()
	store.Set(gateKey, "true")
	store.Set("editor.wrapLines", "true")

	aug := NewAugmenter(catalog, store, gateKey, nil)
	if added := aug.Augment(); added != 0 {
		t.Errorf("Expected no-op for unregistered gate, got %d additions", added)
	}

	// Reset must be a silent no-op too.
	aug.Reset()
}

func TestAugmenter_Idempotent(t *testing.T) {
	catalog, store := newAugmenterFixture()
	store.Set("editor.wrapLines", "true")

	aug := NewAugmenter(catalog, store, gateKey, nil)
	if added := aug.Augment(); added != 1 {
		t.Fatalf("Expected 1 addition, got %d", added)
	}
	if added := aug.Augment(); added != 0 {
		t.Errorf("Expected second run to add nothing, got %d", added)
	}

	group := catalog.FindGroupWithKey(gateKey)
	if group.Len() != 2 {
		t.Errorf("Expected 2 descriptors (gate + 1), got %d", group.Len())
	}
}

func TestAugmenter_ResetRetainsGate(t *testing.T) {
	catalog, store := newAugmenterFixture()
	store.Set("editor.wrapLines", "true")
	store.Set("console.fontSize", "11")

	aug := NewAugmenter(catalog, store, gateKey, nil)
	aug.Augment()
	aug.Reset()

	group := catalog.FindGroupWithKey(gateKey)
	if group.Len() != 1 {
		t.Fatalf("Expected only the gate entry after reset, got %d", group.Len())
	}
	if !group.Has(gateKey) {
		t.Error("Gate entry should survive reset")
	}

	// Statically registered keys in other groups are untouched.
	if !catalog.HasKey("editor.fontSize") {
		t.Error("Static descriptors should survive reset")
	}
}

func TestAugmenter_TargetGroupIsFirstWithGate(t *testing.T) {
	catalog := NewCatalog()
	first := catalog.AddPane("A").AddGroup("One")
	first.Add(Descriptor{Key: gateKey})
	second := catalog.AddPane("B").AddGroup("Two")
	second.Add(Descriptor{Key: gateKey})

	store := NewMemStore()
	store.Set(gateKey, "true")
	store.Set("stray.key", "value")

	NewAugmenter(catalog, store, gateKey, nil).Augment()

	if !first.Has("stray.key") {
		t.Error("Expected additions in the first group containing the gate")
	}
	if second.Has("stray.key") {
		t.Error("Second group should stay untouched")
	}
}
