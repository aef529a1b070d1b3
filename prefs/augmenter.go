package prefs

import (
	"context"
	"sort"
)

// Translations is the subset of a translation catalog the augmenter needs
// to choose display labels. *locale.Catalog satisfies it.
type Translations interface {
	Has(key string) bool
}

// descriptionNamespace prefixes a store key to form its translation key.
const descriptionNamespace = "preferences."

// Augmenter supplements one designated catalog group with descriptors for
// stored preference keys no static panel registers. It runs only while the
// gate preference is true and its additions are transient: Reset removes
// everything from the target group except the gate entry itself.
//
// The target group is the first group, across all panes, containing the
// gate key. When the gate preference is unregistered every operation is a
// silent no-op.
type Augmenter struct {
	catalog      *Catalog
	store        Store
	gateKey      string
	translations Translations
}

// NewAugmenter creates an augmenter over the given catalog and live store.
// translations may be nil, in which case synthesized descriptors are
// labeled with their raw keys.
func NewAugmenter(catalog *Catalog, store Store, gateKey string, translations Translations) *Augmenter {
	return &Augmenter{
		catalog:      catalog,
		store:        store,
		gateKey:      gateKey,
		translations: translations,
	}
}

// GateKey returns the key of the gate preference.
func (a *Augmenter) GateKey() string {
	return a.gateKey
}

// Enabled reports whether the gate preference's stored value is the strict
// boolean literal "true".
func (a *Augmenter) Enabled() bool {
	return a.store.Get(a.gateKey) == "true"
}

// Augment synthesizes a descriptor for every store key absent from the
// catalog and appends them to the target group in sorted key order. It
// returns the number of descriptors added.
//
// Augment is idempotent: keys added by a previous run are registered in the
// catalog and therefore no longer missing, so repeated runs over an
// unchanged store add nothing.
func (a *Augmenter) Augment() int {
	if !a.Enabled() {
		return 0
	}

	group := a.catalog.FindGroupWithKey(a.gateKey)
	if group == nil {
		return 0
	}

	existing := make(map[string]bool)
	for _, key := range a.catalog.Keys() {
		existing[key] = true
	}

	var missing []string
	for _, key := range a.store.Keys() {
		if !existing[key] {
			missing = append(missing, key)
		}
	}
	sort.Strings(missing)

	for _, key := range missing {
		group.Add(a.synthesize(key))
	}

	if obs := getObserver(); obs != nil {
		obs.OnAugment(context.Background(), group.Name, len(missing))
	}
	return len(missing)
}

// synthesize builds a descriptor for an unclaimed store key. The display
// label is the namespaced form of the key when a translation exists for it,
// else the raw key. The control is a toggle when the stored value is a
// strict boolean literal, else a bounded-width text field. Type inference
// is purely syntactic; a value that happens to read "true" renders as a
// toggle regardless of intent.
func (a *Augmenter) synthesize(key string) Descriptor {
	descriptionKey := key
	if a.translations != nil && a.translations.Has(descriptionNamespace+key) {
		descriptionKey = descriptionNamespace + key
	}

	control := Control{Kind: ControlTextField, MaxWidth: DefaultTextFieldWidth}
	if isBoolLiteral(a.store.Get(key)) {
		control = Control{Kind: ControlToggle}
	}

	return Descriptor{Key: key, DescriptionKey: descriptionKey, Control: control}
}

// Reset removes every descriptor from the target group except the one whose
// key equals the gate key, restoring the group to its static registration.
// Called when the owning UI leaves composition.
func (a *Augmenter) Reset() {
	group := a.catalog.FindGroupWithKey(a.gateKey)
	if group == nil {
		return
	}
	group.Retain(func(d Descriptor) bool {
		return d.Key == a.gateKey
	})
}
