// Package editor provides a web-based interface for editing .properties
// translation bundles.
//
// The editor is an optional, embeddable HTTP handler that gives translators
// a table view of every bundle in a directory: one row per key, one column
// per bundle, with missing translations highlighted. Saving rewrites the
// bundle files and, when a provider is attached, reloads the live catalog.
//
// Example:
//
//	handler := editor.NewHandler(editor.Config{
//	    BundlesDir: "./languages",
//	    Provider:   provider,
//	})
//	http.Handle("/locale-editor/", http.StripPrefix("/locale-editor", handler))
//
// Security Note:
// The editor should only be enabled in development environments or behind
// proper authentication in production.
package editor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magiconair/properties"

	"github.com/kdsmith18542/prefkit/locale"
)

// defaultBundle is the column name for the prefix-only bundle.
const defaultBundle = "default"

// Config configures the bundle editor.
type Config struct {
	BundlesDir string           // directory containing the .properties bundles
	Prefix     string           // bundle file prefix, defaults to "PDE"
	Provider   *locale.Provider // optional provider reloaded after saves
}

// BundleData is the payload exchanged with the editor UI: all keys, all
// bundle names, and the per-bundle translations.
type BundleData struct {
	Keys     []string                     `json:"keys"`
	Bundles  []string                     `json:"bundles"`
	Messages map[string]map[string]string `json:"messages"`
}

// NewHandler returns an http.Handler for the bundle editor.
//
// The returned handler serves:
//   - GET  /                  the editor UI
//   - GET  /api/bundles       the list of bundle names
//   - GET  /api/translations  all translation data
//   - POST /api/save          save translation data
func NewHandler(cfg Config) http.Handler {
	if cfg.Prefix == "" {
		cfg.Prefix = "PDE"
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveEditorUI)
	mux.HandleFunc("/api/bundles", cfg.handleBundles)
	mux.HandleFunc("/api/translations", cfg.handleTranslations)
	mux.HandleFunc("/api/save", cfg.handleSave)
	return mux
}

func serveEditorUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write([]byte(editorHTML))
}

// bundleName maps a file name to its editor column: "default" for the
// prefix-only bundle, the locale suffix otherwise. Files that do not match
// the prefix are ignored.
func (cfg Config) bundleName(file string) (string, bool) {
	if !strings.HasSuffix(file, ".properties") {
		return "", false
	}
	base := strings.TrimSuffix(file, ".properties")
	if base == cfg.Prefix {
		return defaultBundle, true
	}
	if strings.HasPrefix(base, cfg.Prefix+"_") {
		return strings.TrimPrefix(base, cfg.Prefix+"_"), true
	}
	return "", false
}

// bundleFile is the inverse of bundleName.
func (cfg Config) bundleFile(name string) string {
	if name == defaultBundle {
		return cfg.Prefix + ".properties"
	}
	return cfg.Prefix + "_" + name + ".properties"
}

// handleBundles returns the sorted list of bundle names in the directory.
func (cfg Config) handleBundles(w http.ResponseWriter, r *http.Request) {
	files, err := os.ReadDir(cfg.BundlesDir)
	if err != nil {
		http.Error(w, "Failed to read bundles dir", http.StatusInternalServerError)
		return
	}
	var bundles []string
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if name, ok := cfg.bundleName(f.Name()); ok {
			bundles = append(bundles, name)
		}
	}
	sort.Strings(bundles)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(bundles); err != nil {
		http.Error(w, "Failed to encode bundles", http.StatusInternalServerError)
	}
}

// handleTranslations returns every key across every bundle.
func (cfg Config) handleTranslations(w http.ResponseWriter, r *http.Request) {
	files, err := os.ReadDir(cfg.BundlesDir)
	if err != nil {
		http.Error(w, "Failed to read bundles dir", http.StatusInternalServerError)
		return
	}

	data := BundleData{Messages: make(map[string]map[string]string)}
	allKeys := make(map[string]bool)

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name, ok := cfg.bundleName(f.Name())
		if !ok {
			continue
		}

		messages, err := loadBundle(filepath.Join(cfg.BundlesDir, f.Name()))
		if err != nil {
			continue // Skip unparsable bundles.
		}

		data.Bundles = append(data.Bundles, name)
		data.Messages[name] = messages
		for key := range messages {
			allKeys[key] = true
		}
	}

	for key := range allKeys {
		data.Keys = append(data.Keys, key)
	}
	sort.Strings(data.Keys)
	sort.Strings(data.Bundles)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode data", http.StatusInternalServerError)
	}
}

// loadBundle parses a .properties file into a key-value map.
func loadBundle(path string) (map[string]string, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}

// handleSave writes the posted translations back to the bundle files and
// reloads the attached provider.
func (cfg Config) handleSave(w http.ResponseWriter, r *http.Request) {
	var data BundleData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "Invalid JSON data", http.StatusBadRequest)
		return
	}

	for _, bundle := range data.Bundles {
		messages, exists := data.Messages[bundle]
		if !exists {
			continue
		}
		if err := cfg.saveBundle(bundle, messages); err != nil {
			http.Error(w, fmt.Sprintf("Failed to save %s: %v", bundle, err), http.StatusInternalServerError)
			return
		}
	}

	if cfg.Provider != nil {
		if err := cfg.Provider.Reload(); err != nil {
			http.Error(w, fmt.Sprintf("Saved, but reload failed: %v", err), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "saved"})
}

// saveBundle writes a bundle's messages as sorted key=value lines. Keys
// with empty values are dropped so the cascade can fall through to the
// default bundle.
func (cfg Config) saveBundle(bundle string, messages map[string]string) error {
	p := properties.NewProperties()
	keys := make([]string, 0, len(messages))
	for key := range messages {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if strings.TrimSpace(messages[key]) == "" {
			continue
		}
		if _, _, err := p.Set(key, messages[key]); err != nil {
			return err
		}
	}

	var buffer strings.Builder
	if _, err := p.WriteComment(&buffer, "# ", properties.UTF8); err != nil {
		return err
	}
	path := filepath.Join(cfg.BundlesDir, cfg.bundleFile(bundle))
	return os.WriteFile(path, []byte(buffer.String()), 0644)
}
