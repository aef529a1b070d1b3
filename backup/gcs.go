package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// GCSConfig holds configuration for the Google Cloud Storage backend.
type GCSConfig struct {
	Bucket          string // GCS bucket name (required)
	Prefix          string // object prefix for all snapshots (optional)
	CredentialsFile string // path to service account JSON file (optional, uses env if empty)
}

// GCS implements the Store interface on Google Cloud Storage.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS creates a GCS snapshot store. Credentials come from the
// environment unless a service account file is configured.
func NewGCS(config GCSConfig) (*GCS, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	if config.CredentialsFile != "" {
		if err := os.Setenv("GOOGLE_APPLICATION_CREDENTIALS", config.CredentialsFile); err != nil {
			return nil, fmt.Errorf("failed to set GOOGLE_APPLICATION_CREDENTIALS: %v", err)
		}
	}
	client, err := storage.NewClient(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %v", err)
	}
	return &GCS{
		client: client,
		bucket: config.Bucket,
		prefix: strings.Trim(config.Prefix, "/"),
	}, nil
}

func (g *GCS) key(name string) string {
	if g.prefix == "" {
		return name
	}
	return path.Join(g.prefix, name)
}

// Put uploads a snapshot to the bucket.
func (g *GCS) Put(name string, reader io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	ctx := context.Background()
	w := g.client.Bucket(g.bucket).Object(g.key(name)).NewWriter(ctx)
	if _, err := io.Copy(w, reader); err != nil {
		if closeErr := w.Close(); closeErr != nil {
			return "", fmt.Errorf("failed to write snapshot: %v, and failed to close writer: %v", err, closeErr)
		}
		return "", fmt.Errorf("failed to write snapshot: %v", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %v", err)
	}
	return name, nil
}

// Get downloads a snapshot from the bucket.
func (g *GCS) Get(name string) (io.ReadCloser, error) {
	reader, err := g.client.Bucket(g.bucket).Object(g.key(name)).NewReader(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %v", err)
	}
	return reader, nil
}

// Exists reports whether a snapshot object is present in the bucket.
func (g *GCS) Exists(name string) bool {
	_, err := g.client.Bucket(g.bucket).Object(g.key(name)).Attrs(context.Background())
	return err == nil
}

// Size returns the size of a snapshot object in bytes.
func (g *GCS) Size(name string) (int64, error) {
	attrs, err := g.client.Bucket(g.bucket).Object(g.key(name)).Attrs(context.Background())
	if err != nil {
		return 0, err
	}
	return attrs.Size, nil
}

// List returns the names of all snapshots under the configured prefix.
func (g *GCS) List() ([]string, error) {
	ctx := context.Background()
	var query *storage.Query
	strip := ""
	if g.prefix != "" {
		strip = g.prefix + "/"
		query = &storage.Query{Prefix: strip}
	}

	var names []string
	it := g.client.Bucket(g.bucket).Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			return nil, err
		}
		names = append(names, strings.TrimPrefix(attrs.Name, strip))
	}
	return names, nil
}

// Delete removes a snapshot object from the bucket.
func (g *GCS) Delete(name string) error {
	return g.client.Bucket(g.bucket).Object(g.key(name)).Delete(context.Background())
}

// SignedURL generates a signed GET URL. It requires credentials with a
// private key (GOOGLE_ACCESS_ID and GOOGLE_PRIVATE_KEY in the environment).
func (g *GCS) SignedURL(name string, expiry time.Duration) (string, error) {
	opts := &storage.SignedURLOptions{
		GoogleAccessID: os.Getenv("GOOGLE_ACCESS_ID"),
		PrivateKey:     []byte(os.Getenv("GOOGLE_PRIVATE_KEY")),
		Method:         "GET",
		Expires:        time.Now().Add(expiry),
	}
	return storage.SignedURL(g.bucket, g.key(name), opts)
}

// Info returns bucket metadata plus snapshot count and total size.
func (g *GCS) Info() (map[string]interface{}, error) {
	ctx := context.Background()
	info := map[string]interface{}{
		"type":   "gcs",
		"bucket": g.bucket,
	}
	if g.prefix != "" {
		info["prefix"] = g.prefix
	}
	if attrs, err := g.client.Bucket(g.bucket).Attrs(ctx); err == nil {
		info["location"] = attrs.Location
		info["storageClass"] = attrs.StorageClass
		info["created"] = attrs.Created
	}

	names, err := g.List()
	if err != nil {
		return info, err
	}
	var totalSize int64
	for _, name := range names {
		if size, err := g.Size(name); err == nil {
			totalSize += size
		}
	}
	info["totalSize"] = totalSize
	info["count"] = len(names)
	return info, nil
}

// Close releases the GCS client.
func (g *GCS) Close() error {
	return g.client.Close()
}
