package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prefkit",
		Short: "prefkit - localization and preferences toolkit for desktop apps",
	}

	rootCmd.AddCommand(LocaleCmd())
	rootCmd.AddCommand(PrefsCmd())
	rootCmd.AddCommand(BackupCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
