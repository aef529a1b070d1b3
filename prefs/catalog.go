package prefs

// ControlKind is the tagged variant selecting how a preference is edited.
// The kind is resolved once, when a descriptor is registered or synthesized,
// rather than re-inferred from value syntax on every render.
type ControlKind int

const (
	// ControlTextField edits the raw string value in a bounded-width field.
	ControlTextField ControlKind = iota
	// ControlToggle edits a strict boolean value.
	ControlToggle
)

// String returns a human-readable form of the control kind.
func (k ControlKind) String() string {
	if k == ControlToggle {
		return "toggle"
	}
	return "text"
}

// DefaultTextFieldWidth bounds the width, in columns, of synthesized text
// fields.
const DefaultTextFieldWidth = 40

// Control describes the UI control for a preference.
type Control struct {
	Kind ControlKind
	// MaxWidth bounds text fields, in columns. Ignored for toggles.
	MaxWidth int
}

// Descriptor describes one preference entry in the catalog: its store key,
// the translation key used for its display label, the name of the owning
// pane, and its control variant.
type Descriptor struct {
	Key            string
	DescriptionKey string
	Pane           string
	Control        Control
}

// Group is an ordered, mutable sequence of descriptors within a pane.
//
// Group mutation is not synchronized; the hosting UI is expected to
// serialize its composition passes, matching the single-writer ownership
// of the augmenter lifecycle.
type Group struct {
	Name string

	pane    string
	entries []Descriptor
}

// PaneName returns the name of the pane owning this group.
func (g *Group) PaneName() string {
	return g.pane
}

// Add appends a descriptor to the group.
func (g *Group) Add(d Descriptor) {
	if d.Pane == "" {
		d.Pane = g.pane
	}
	g.entries = append(g.entries, d)
}

// Retain keeps only the descriptors for which keep returns true,
// preserving order.
func (g *Group) Retain(keep func(Descriptor) bool) {
	kept := g.entries[:0]
	for _, d := range g.entries {
		if keep(d) {
			kept = append(kept, d)
		}
	}
	g.entries = kept
}

// Has reports whether the group contains a descriptor for key.
func (g *Group) Has(key string) bool {
	for _, d := range g.entries {
		if d.Key == key {
			return true
		}
	}
	return false
}

// Keys returns the group's descriptor keys in registration order.
func (g *Group) Keys() []string {
	keys := make([]string, len(g.entries))
	for i, d := range g.entries {
		keys[i] = d.Key
	}
	return keys
}

// Descriptors returns a copy of the group's descriptors.
func (g *Group) Descriptors() []Descriptor {
	return append([]Descriptor(nil), g.entries...)
}

// Len returns the number of descriptors in the group.
func (g *Group) Len() int {
	return len(g.entries)
}

// Pane is an ordered collection of groups under one settings tab.
type Pane struct {
	Name string

	groups []*Group
}

// AddGroup appends a new empty group to the pane and returns it.
func (p *Pane) AddGroup(name string) *Group {
	g := &Group{Name: name, pane: p.Name}
	p.groups = append(p.groups, g)
	return g
}

// Groups returns the pane's groups in order.
func (p *Pane) Groups() []*Group {
	return p.groups
}

// Catalog is the static, pane-grouped preference catalog assembled at
// startup. One designated group may be dynamically extended and shrunk by
// an Augmenter.
type Catalog struct {
	panes []*Pane
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{}
}

// AddPane appends a new empty pane to the catalog and returns it.
func (c *Catalog) AddPane(name string) *Pane {
	p := &Pane{Name: name}
	c.panes = append(c.panes, p)
	return p
}

// Panes returns the catalog's panes in order.
func (c *Catalog) Panes() []*Pane {
	return c.panes
}

// FindGroupWithKey returns the first group, across all panes in order, that
// contains a descriptor for key, or nil when no group does.
func (c *Catalog) FindGroupWithKey(key string) *Group {
	for _, pane := range c.panes {
		for _, group := range pane.groups {
			if group.Has(key) {
				return group
			}
		}
	}
	return nil
}

// Keys returns every registered preference key across all panes and groups,
// flattened in catalog order.
func (c *Catalog) Keys() []string {
	var keys []string
	for _, pane := range c.panes {
		for _, group := range pane.groups {
			keys = append(keys, group.Keys()...)
		}
	}
	return keys
}

// HasKey reports whether any pane or group registers key.
func (c *Catalog) HasKey(key string) bool {
	return c.FindGroupWithKey(key) != nil
}
