package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kdsmith18542/prefkit/backup"
	"github.com/kdsmith18542/prefkit/locale"
	"github.com/kdsmith18542/prefkit/prefs"
)

// backendFlags holds the shared backend selection flags.
type backendFlags struct {
	backend         string
	dir             string
	bucket          string
	prefix          string
	region          string
	accessKey       string
	secretKey       string
	endpoint        string
	forcePathStyle  bool
	credentialsFile string
	azureAccount    string
	azureKey        string
	azureContainer  string
}

func (f *backendFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.backend, "backend", "local", "Snapshot backend (local, s3, gcs, azure)")
	cmd.PersistentFlags().StringVar(&f.dir, "local-dir", "./backups", "Directory for the local backend")
	cmd.PersistentFlags().StringVar(&f.bucket, "bucket", "", "Bucket name (S3/GCS)")
	cmd.PersistentFlags().StringVar(&f.prefix, "key-prefix", "", "Object key prefix")
	cmd.PersistentFlags().StringVar(&f.region, "region", "", "Region (S3)")
	cmd.PersistentFlags().StringVar(&f.accessKey, "access-key", "", "Access key ID (S3)")
	cmd.PersistentFlags().StringVar(&f.secretKey, "secret-key", "", "Secret access key (S3)")
	cmd.PersistentFlags().StringVar(&f.endpoint, "endpoint", "", "Custom endpoint (S3-compatible services)")
	cmd.PersistentFlags().BoolVar(&f.forcePathStyle, "force-path-style", false, "Use path-style addressing (S3-compatible)")
	cmd.PersistentFlags().StringVar(&f.credentialsFile, "credentials-file", "", "Path to GCS service account JSON")
	cmd.PersistentFlags().StringVar(&f.azureAccount, "azure-account", os.Getenv("AZURE_STORAGE_ACCOUNT"), "Azure storage account name")
	cmd.PersistentFlags().StringVar(&f.azureKey, "azure-key", os.Getenv("AZURE_STORAGE_KEY"), "Azure storage account key")
	cmd.PersistentFlags().StringVar(&f.azureContainer, "azure-container", os.Getenv("AZURE_STORAGE_CONTAINER"), "Azure blob container name")
}

// open builds the configured snapshot store.
func (f *backendFlags) open() (backup.Store, error) {
	switch f.backend {
	case "local":
		return backup.NewLocal(f.dir), nil
	case "s3":
		if f.bucket == "" {
			return nil, fmt.Errorf("--bucket is required for the s3 backend")
		}
		return backup.NewS3(backup.S3Config{
			Bucket:          f.bucket,
			Prefix:          f.prefix,
			Region:          f.region,
			AccessKeyID:     f.accessKey,
			SecretAccessKey: f.secretKey,
			Endpoint:        f.endpoint,
			ForcePathStyle:  f.forcePathStyle,
		})
	case "gcs":
		if f.bucket == "" {
			return nil, fmt.Errorf("--bucket is required for the gcs backend")
		}
		return backup.NewGCS(backup.GCSConfig{
			Bucket:          f.bucket,
			Prefix:          f.prefix,
			CredentialsFile: f.credentialsFile,
		})
	case "azure":
		if f.azureContainer == "" {
			return nil, fmt.Errorf("--azure-container is required for the azure backend")
		}
		return backup.NewAzure(backup.AzureConfig{
			AccountName: f.azureAccount,
			AccountKey:  f.azureKey,
			Container:   f.azureContainer,
			Prefix:      f.prefix,
		})
	default:
		return nil, fmt.Errorf("supported backends: local, s3, gcs, azure")
	}
}

func BackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Snapshot and restore settings to a storage backend",
	}

	flags := &backendFlags{}
	flags.register(cmd)

	var prefsFile, settingsDir string
	snapshotCmd := &cobra.Command{
		Use:   "snapshot [name]",
		Short: "Write the current settings to the backend",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := flags.open()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			defer store.Close()

			prefStore, err := prefs.LoadTOML(prefsFile)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}

			provider, err := locale.NewProvider(settingsDir, locale.Options{})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			defer provider.Close()

			path, err := backup.Snapshot(store, args[0], prefStore, provider.Code())
			if err != nil {
				fmt.Printf("Failed to snapshot: %v\n", err)
				return
			}
			fmt.Printf("Snapshot written to %s\n", path)
		},
	}
	snapshotCmd.Flags().StringVar(&prefsFile, "prefs", "preferences.toml", "Preferences file to snapshot")
	snapshotCmd.Flags().StringVar(&settingsDir, "settings", ".", "Settings directory holding the selection file")
	cmd.AddCommand(snapshotCmd)

	var restoreTo string
	restoreCmd := &cobra.Command{
		Use:   "restore [name]",
		Short: "Restore a snapshot into a preferences file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := flags.open()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			defer store.Close()

			prefStore, language, err := backup.Restore(store, args[0])
			if err != nil {
				fmt.Printf("Failed to restore: %v\n", err)
				return
			}
			if err := prefStore.SaveTOML(restoreTo); err != nil {
				fmt.Printf("Failed to write preferences: %v\n", err)
				return
			}
			fmt.Printf("Restored %d preferences to %s (language: %s)\n",
				prefStore.Len(), restoreTo, language)
		},
	}
	restoreCmd.Flags().StringVar(&restoreTo, "prefs", "preferences.toml", "Preferences file to write")
	cmd.AddCommand(restoreCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List snapshots in the backend",
		Run: func(cmd *cobra.Command, args []string) {
			store, err := flags.open()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			defer store.Close()

			names, err := store.List()
			if err != nil {
				fmt.Printf("Failed to list snapshots: %v\n", err)
				return
			}
			if len(names) == 0 {
				fmt.Println("No snapshots found.")
				return
			}
			fmt.Printf("Found %d snapshots:\n", len(names))
			for _, name := range names {
				size, err := store.Size(name)
				if err != nil {
					fmt.Printf("  %s (size unknown)\n", name)
				} else {
					fmt.Printf("  %s (%s)\n", name, FormatBytes(size))
				}
			}
		},
	})

	var expiration string
	urlCmd := &cobra.Command{
		Use:   "share [name]",
		Short: "Generate a pre-signed URL for a snapshot",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			store, err := flags.open()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			defer store.Close()

			expiry, err := time.ParseDuration(expiration)
			if err != nil {
				fmt.Printf("Invalid expiration: %v\n", err)
				return
			}
			if !store.Exists(args[0]) {
				fmt.Printf("Snapshot not found: %s\n", args[0])
				return
			}
			url, err := store.SignedURL(args[0], expiry)
			if err != nil {
				fmt.Printf("Failed to generate URL: %v\n", err)
				return
			}
			fmt.Printf("Pre-signed URL for %s (expires in %s):\n%s\n", args[0], expiry, url)
		},
	}
	urlCmd.Flags().StringVar(&expiration, "expiration", "1h", "URL validity (e.g. 1h, 30m)")
	cmd.AddCommand(urlCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "verify-credentials",
		Short: "Verify backend credentials and access",
		Run: func(cmd *cobra.Command, args []string) {
			store, err := flags.open()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			defer store.Close()

			info, err := store.Info()
			if err != nil {
				fmt.Printf("Failed to access backend: %v\n", err)
				return
			}
			fmt.Printf("%s backend access verified.\n", flags.backend)
			fmt.Printf("Backend info: %v\n", info)
		},
	})

	return cmd
}

func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
