package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kdsmith18542/prefkit/prefs"
)

func PrefsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect preference stores and catalogs",
	}

	var prefsFile string
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump a preferences file as flattened key=value pairs",
		Run: func(cmd *cobra.Command, args []string) {
			store, err := prefs.LoadTOML(prefsFile)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			for _, key := range store.Keys() {
				fmt.Printf("%s = %s\n", key, store.Get(key))
			}
			fmt.Printf("\n%d preferences\n", store.Len())
		},
	}
	dumpCmd.Flags().StringVar(&prefsFile, "file", "preferences.toml", "Preferences file")
	cmd.AddCommand(dumpCmd)

	var catalogFile string
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the pane/group layout of a catalog declaration",
		Run: func(cmd *cobra.Command, args []string) {
			catalog, err := prefs.LoadCatalog(catalogFile)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			for _, pane := range catalog.Panes() {
				fmt.Printf("Pane %s\n", pane.Name)
				for _, group := range pane.Groups() {
					fmt.Printf("  Group %s\n", group.Name)
					for _, d := range group.Descriptors() {
						fmt.Printf("    %-40s %s\n", d.Key, d.Control.Kind)
					}
				}
			}
		},
	}
	catalogCmd.Flags().StringVar(&catalogFile, "file", "catalog.toml", "Catalog declaration file")
	cmd.AddCommand(catalogCmd)

	var gateKey string
	missingCmd := &cobra.Command{
		Use:   "find-unclaimed",
		Short: "List stored preferences no catalog entry claims",
		Run: func(cmd *cobra.Command, args []string) {
			store, err := prefs.LoadTOML(prefsFile)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			catalog, err := prefs.LoadCatalog(catalogFile)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}

			count := 0
			for _, key := range store.Keys() {
				if !catalog.HasKey(key) {
					fmt.Println(key)
					count++
				}
			}
			if count == 0 {
				fmt.Println("Every stored preference is claimed by the catalog.")
			} else if gateKey != "" && !catalog.HasKey(gateKey) {
				fmt.Printf("\nNote: gate %q is not registered, so these would stay hidden.\n", gateKey)
			}
		},
	}
	missingCmd.Flags().StringVar(&prefsFile, "file", "preferences.toml", "Preferences file")
	missingCmd.Flags().StringVar(&catalogFile, "catalog", "catalog.toml", "Catalog declaration file")
	missingCmd.Flags().StringVar(&gateKey, "gate", "", "Gate preference key to check")
	cmd.AddCommand(missingCmd)

	return cmd
}
