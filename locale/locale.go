// Package locale provides translation catalogs and a reactive locale provider
// for desktop applications.
//
// Features:
//   - Cascading .properties translation bundles (default, language, full tag, override)
//   - Missing-key fallback to the raw key, with per-lookup logging
//   - A provider that owns the language selection file and rebuilds catalogs on change
//   - File-watch driven reloads with explicit debounce semantics
//   - Right-to-left layout detection via the reserved locale.direction key
//   - Loading from embedded filesystems
//
// Example:
//
//	provider, err := locale.NewProvider(settingsDir, locale.Options{Dir: "languages"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	catalog := provider.Catalog()
//	label := catalog.Get("menu.file.open")
//
//	// React to language changes
//	changes, cancel := provider.Subscribe()
//	defer cancel()
//	go func() {
//	    for change := range changes {
//	        rebuildUI(change.Code, change.Direction)
//	    }
//	}()
package locale

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magiconair/properties"
)

// DirectionKey is the reserved translation key whose value selects the
// layout direction for a locale.
const DirectionKey = "locale.direction"

// rtlMarker is the only value of DirectionKey that selects right-to-left layout.
const rtlMarker = "rtl"

// Direction describes the text layout direction of a locale.
type Direction int

const (
	// LeftToRight is the default layout direction.
	LeftToRight Direction = iota
	// RightToLeft is selected when the catalog maps locale.direction to "rtl".
	RightToLeft
)

// String returns a human-readable form of the direction.
func (d Direction) String() string {
	if d == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// Options configures where translation bundles are found.
type Options struct {
	// Dir is the directory containing the .properties bundles.
	// Defaults to "languages".
	Dir string
	// Prefix is the bundle file prefix. Defaults to "PDE".
	Prefix string
	// Override is an optional path to an explicit override bundle, loaded
	// last so its keys win over every other bundle.
	Override string
}

func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = "languages"
	}
	if o.Prefix == "" {
		o.Prefix = "PDE"
	}
	return o
}

// Catalog is an immutable translation catalog for a single locale.
// It is built once per language change and safe for concurrent reads.
type Catalog struct {
	code    string
	tag     string
	entries map[string]string
	sources []string
}

// LoadCatalog builds a catalog for the given language tag (e.g. "es" or
// "es-MX") by loading bundles from the options' directory in cascade order:
// the default bundle, the language-code bundle, the full-tag bundle, and the
// explicit override bundle. Later bundles override earlier keys. A bundle
// that does not exist is skipped; a bundle that fails to parse is an error.
func LoadCatalog(tag string, opts Options) (*Catalog, error) {
	opts = opts.withDefaults()

	read := func(name string) ([]byte, error) {
		return os.ReadFile(filepath.Join(opts.Dir, name))
	}
	c, err := load(tag, bundleNames(opts.Prefix, tag), read)
	if err != nil {
		return nil, err
	}

	if opts.Override != "" {
		data, err := os.ReadFile(opts.Override)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read override bundle: %v", err)
		}
		if err == nil {
			if err := c.merge(opts.Override, data); err != nil {
				return nil, err
			}
		}
	}

	notifyCatalogLoad(c)
	return c, nil
}

// bundleNames returns the cascade of bundle file names for a tag, in load
// order. The full-tag bundle uses underscores in place of hyphens, matching
// the property-bundle naming convention.
func bundleNames(prefix, tag string) []string {
	lang := languageCode(tag)
	names := []string{
		prefix + ".properties",
		prefix + "_" + lang + ".properties",
	}
	full := strings.ReplaceAll(tag, "-", "_")
	if full != lang {
		names = append(names, prefix+"_"+full+".properties")
	}
	return names
}

// languageCode reduces a locale tag to its two-letter language-code prefix.
// Content shorter than two characters is returned unchanged; callers that
// need a usable code guard against that case themselves.
func languageCode(tag string) string {
	tag = strings.TrimSpace(tag)
	if len(tag) < 2 {
		return tag
	}
	return strings.ToLower(tag[:2])
}

// load builds a catalog from the named bundles using the supplied reader.
// Missing bundles are skipped.
func load(tag string, names []string, read func(string) ([]byte, error)) (*Catalog, error) {
	c := &Catalog{
		code:    languageCode(tag),
		tag:     strings.TrimSpace(tag),
		entries: make(map[string]string),
	}

	for _, name := range names {
		data, err := read(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read bundle %s: %v", name, err)
		}
		if err := c.merge(name, data); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// merge parses a .properties payload and overlays its keys on the catalog.
func (c *Catalog) merge(source string, data []byte) error {
	p, err := properties.Load(data, properties.UTF8)
	if err != nil {
		return fmt.Errorf("failed to parse bundle %s: %v", source, err)
	}
	for _, key := range p.Keys() {
		value, _ := p.Get(key)
		c.entries[key] = value
	}
	c.sources = append(c.sources, source)
	return nil
}

// Code returns the two-letter language code the catalog was built for.
func (c *Catalog) Code() string {
	return c.code
}

// Tag returns the full locale tag the catalog was built for.
func (c *Catalog) Tag() string {
	return c.tag
}

// Get returns the translation mapped to key, or the key itself when no
// translation exists. Every miss is logged and reported to the registered
// observer, once per lookup.
func (c *Catalog) Get(key string) string {
	if value, ok := c.entries[key]; ok {
		return value
	}

	log.Printf("[locale] missing translation for %q (%s)", key, c.code)
	if obs := getObserver(); obs != nil {
		obs.OnTranslationMiss(context.Background(), c.code, key)
	}
	return key
}

// Has reports whether a translation exists for key.
func (c *Catalog) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of translations in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Keys returns all translation keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Sources returns the bundle files that contributed to the catalog, in
// load order.
func (c *Catalog) Sources() []string {
	return append([]string(nil), c.sources...)
}

// Direction derives the layout direction from the reserved locale.direction
// key. Any value other than "rtl", including absence, is left-to-right.
func (c *Catalog) Direction() Direction {
	if c.entries[DirectionKey] == rtlMarker {
		return RightToLeft
	}
	return LeftToRight
}

func notifyCatalogLoad(c *Catalog) {
	if obs := getObserver(); obs != nil {
		obs.OnCatalogLoad(context.Background(), c.code, len(c.entries), len(c.sources))
	}
}
