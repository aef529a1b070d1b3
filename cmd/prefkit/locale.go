package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/cobra"

	"github.com/kdsmith18542/prefkit/locale"
	"github.com/kdsmith18542/prefkit/locale/editor"
)

func LocaleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locale",
		Short: "Manage translation bundles and the language selection",
	}

	var bundlesDir string
	var prefix string
	cmd.PersistentFlags().StringVar(&bundlesDir, "dir", "./languages", "Directory containing .properties bundles")
	cmd.PersistentFlags().StringVar(&prefix, "prefix", "PDE", "Bundle file prefix")

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate bundle files for syntax errors",
		Run: func(cmd *cobra.Command, args []string) {
			if err := ValidateBundles(bundlesDir); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "find-missing",
		Short: "Find keys missing from localized bundles",
		Run: func(cmd *cobra.Command, args []string) {
			if err := FindMissingKeys(bundlesDir, prefix); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
		},
	})

	var settingsDir string
	setCmd := &cobra.Command{
		Use:   "set [code]",
		Short: "Set the active language",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			provider, err := locale.NewProvider(settingsDir, locale.Options{Dir: bundlesDir, Prefix: prefix})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			defer provider.Close()

			if err := provider.SetLocale(args[0]); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			catalog := provider.Catalog()
			fmt.Printf("Language set to '%s' (%d translations, %s)\n",
				provider.Code(), catalog.Len(), provider.Direction())
		},
	}
	setCmd.Flags().StringVar(&settingsDir, "settings", ".", "Settings directory holding the selection file")
	cmd.AddCommand(setCmd)

	var addr string
	editorCmd := &cobra.Command{
		Use:   "editor",
		Short: "Serve the web-based bundle editor",
		Run: func(cmd *cobra.Command, args []string) {
			handler := editor.NewHandler(editor.Config{BundlesDir: bundlesDir, Prefix: prefix})
			fmt.Printf("Bundle editor listening on http://%s/\n", addr)
			if err := http.ListenAndServe(addr, handler); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		},
	}
	editorCmd.Flags().StringVar(&addr, "addr", "localhost:8099", "Listen address for the editor")
	cmd.AddCommand(editorCmd)

	return cmd
}

// ValidateBundles parses every .properties file in the directory and
// reports the ones that fail.
func ValidateBundles(bundlesDir string) error {
	files, err := listBundles(bundlesDir, "")
	if err != nil {
		return err
	}

	fmt.Printf("Validating %d bundle files...\n\n", len(files))
	hasErrors := false
	for _, file := range files {
		fmt.Printf("Checking %s...\n", file)
		p, err := properties.LoadFile(filepath.Join(bundlesDir, file), properties.UTF8)
		if err != nil {
			hasErrors = true
			fmt.Printf("  parse error: %v\n", err)
			continue
		}
		fmt.Printf("  ok (%d keys)\n", p.Len())
	}

	if hasErrors {
		return fmt.Errorf("validation found issues")
	}
	fmt.Println("\nAll bundle files are valid.")
	return nil
}

// FindMissingKeys compares every localized bundle against the union of all
// keys and lists what each bundle lacks.
func FindMissingKeys(bundlesDir, prefix string) error {
	files, err := listBundles(bundlesDir, prefix)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s*.properties bundles found in %s", prefix, bundlesDir)
	}

	allKeys := make(map[string]bool)
	bundleKeys := make(map[string]map[string]bool)
	for _, file := range files {
		p, err := properties.LoadFile(filepath.Join(bundlesDir, file), properties.UTF8)
		if err != nil {
			fmt.Printf("Warning: failed to load %s: %v\n", file, err)
			continue
		}
		keys := make(map[string]bool)
		for _, key := range p.Keys() {
			keys[key] = true
			allKeys[key] = true
		}
		bundleKeys[file] = keys
	}

	fmt.Printf("Analyzing %d bundle files...\n\n", len(files))

	names := make([]string, 0, len(bundleKeys))
	for name := range bundleKeys {
		names = append(names, name)
	}
	sort.Strings(names)

	hasMissing := false
	for _, name := range names {
		var missing []string
		for key := range allKeys {
			if !bundleKeys[name][key] {
				missing = append(missing, key)
			}
		}
		if len(missing) == 0 {
			fmt.Printf("Bundle '%s': complete\n", name)
			continue
		}
		hasMissing = true
		sort.Strings(missing)
		fmt.Printf("Bundle '%s' is missing %d keys:\n", name, len(missing))
		for _, key := range missing {
			fmt.Printf("  - %s\n", key)
		}
		fmt.Println()
	}

	if !hasMissing {
		fmt.Println("All bundles are complete.")
	}
	return nil
}

// listBundles returns the .properties files in dir, optionally restricted
// to a file prefix.
func listBundles(dir, prefix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundles directory: %v", err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".properties") {
			continue
		}
		if prefix != "" && !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}
