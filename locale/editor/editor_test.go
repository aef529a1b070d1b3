package editor

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestBundles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"PDE.properties":    "menu.file=File\nmenu.help=Help\n",
		"PDE_es.properties": "menu.file=Archivo\n",
		"notes.txt":         "ignored\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestBundlesAPI(t *testing.T) {
	dir := setupTestBundles(t)
	h := NewHandler(Config{BundlesDir: dir})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/bundles", nil))
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var bundles []string
	if err := json.NewDecoder(w.Body).Decode(&bundles); err != nil {
		t.Fatalf("Failed to decode JSON: %v", err)
	}
	want := []string{"default", "es"}
	if len(bundles) != 2 || bundles[0] != want[0] || bundles[1] != want[1] {
		t.Errorf("Expected bundles %v, got %v", want, bundles)
	}
}

func TestTranslationsAPI(t *testing.T) {
	dir := setupTestBundles(t)
	h := NewHandler(Config{BundlesDir: dir})

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/api/translations", nil))
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var data BundleData
	if err := json.NewDecoder(w.Body).Decode(&data); err != nil {
		t.Fatalf("Failed to decode JSON: %v", err)
	}
	if len(data.Bundles) != 2 {
		t.Errorf("Expected 2 bundles, got %v", data.Bundles)
	}
	if len(data.Keys) != 2 {
		t.Errorf("Expected 2 keys, got %v", data.Keys)
	}
	if data.Messages["es"]["menu.file"] != "Archivo" {
		t.Errorf("Unexpected es messages: %v", data.Messages["es"])
	}
}

func TestSaveAPI(t *testing.T) {
	dir := setupTestBundles(t)
	h := NewHandler(Config{BundlesDir: dir})

	data := BundleData{
		Bundles: []string{"es"},
		Messages: map[string]map[string]string{
			"es": {
				"menu.file": "Archivo",
				"menu.help": "Ayuda",
				"menu.gone": "  ", // blank values are dropped
			},
		},
	}
	body, _ := json.Marshal(data)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/api/save", bytes.NewReader(body)))
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	saved, err := os.ReadFile(filepath.Join(dir, "PDE_es.properties"))
	if err != nil {
		t.Fatalf("Failed to read saved bundle: %v", err)
	}
	content := string(saved)
	if !strings.Contains(content, "menu.help") {
		t.Errorf("Expected menu.help in saved bundle, got:\n%s", content)
	}
	if strings.Contains(content, "menu.gone") {
		t.Errorf("Blank value should have been dropped, got:\n%s", content)
	}
}

func TestSaveAPI_InvalidJSON(t *testing.T) {
	h := NewHandler(Config{BundlesDir: t.TempDir()})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/api/save", strings.NewReader("{broken")))
	if w.Code != 400 {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestEditorUI(t *testing.T) {
	h := NewHandler(Config{BundlesDir: t.TempDir()})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != 200 {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Translation Bundle Editor") {
		t.Error("Expected editor UI in response")
	}
}

func TestBundleName(t *testing.T) {
	cfg := Config{Prefix: "PDE"}
	cases := []struct {
		file string
		want string
		ok   bool
	}{
		{"PDE.properties", "default", true},
		{"PDE_es.properties", "es", true},
		{"PDE_es_MX.properties", "es_MX", true},
		{"Other.properties", "", false},
		{"PDE.txt", "", false},
	}
	for _, tc := range cases {
		got, ok := cfg.bundleName(tc.file)
		if got != tc.want || ok != tc.ok {
			t.Errorf("bundleName(%s): expected (%q, %v), got (%q, %v)",
				tc.file, tc.want, tc.ok, got, ok)
		}
	}
}
