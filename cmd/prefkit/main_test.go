package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocaleCmd(t *testing.T) {
	cmd := LocaleCmd()
	if cmd == nil {
		t.Fatal("LocaleCmd() returned nil")
	}
	if cmd.Use != "locale" {
		t.Errorf("Expected Use 'locale', got '%s'", cmd.Use)
	}

	subs := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, name := range []string{"validate", "find-missing", "set", "editor"} {
		if !subs[name] {
			t.Errorf("Expected subcommand %q", name)
		}
	}
}

func TestPrefsCmd(t *testing.T) {
	cmd := PrefsCmd()
	if cmd == nil {
		t.Fatal("PrefsCmd() returned nil")
	}
	subs := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, name := range []string{"dump", "catalog", "find-unclaimed"} {
		if !subs[name] {
			t.Errorf("Expected subcommand %q", name)
		}
	}
}

func TestBackupCmd(t *testing.T) {
	cmd := BackupCmd()
	if cmd == nil {
		t.Fatal("BackupCmd() returned nil")
	}
	subs := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subs[sub.Name()] = true
	}
	for _, name := range []string{"snapshot", "restore", "list", "share", "verify-credentials"} {
		if !subs[name] {
			t.Errorf("Expected subcommand %q", name)
		}
	}
}

func TestBackendFlags_Open(t *testing.T) {
	flags := &backendFlags{backend: "local", dir: t.TempDir()}
	store, err := flags.open()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	store.Close()

	flags.backend = "s3"
	if _, err := flags.open(); err == nil {
		t.Error("Expected error for s3 backend without bucket")
	}

	flags.backend = "tape"
	if _, err := flags.open(); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestValidateBundles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "PDE.properties"), []byte("menu.file=File\n"), 0644); err != nil {
		t.Fatalf("Failed to write bundle: %v", err)
	}
	if err := ValidateBundles(dir); err != nil {
		t.Errorf("ValidateBundles failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "PDE_es.properties"), []byte("bad=\\u00zz\n"), 0644); err != nil {
		t.Fatalf("Failed to write bundle: %v", err)
	}
	if err := ValidateBundles(dir); err == nil {
		t.Error("Expected error for malformed bundle")
	}
}

func TestFindMissingKeys(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "PDE.properties"), []byte("a=1\nb=2\n"), 0644)
	os.WriteFile(filepath.Join(dir, "PDE_es.properties"), []byte("a=uno\n"), 0644)

	if err := FindMissingKeys(dir, "PDE"); err != nil {
		t.Errorf("FindMissingKeys failed: %v", err)
	}

	if err := FindMissingKeys(t.TempDir(), "PDE"); err == nil {
		t.Error("Expected error for empty directory")
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.0 MB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Errorf("FormatBytes(%d): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
