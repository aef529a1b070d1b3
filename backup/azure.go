package backup

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"
)

// AzureConfig holds configuration for the Azure Blob Storage backend.
type AzureConfig struct {
	AccountName string // Azure storage account name (required)
	AccountKey  string // Azure storage account key (required)
	Container   string // blob container name (required)
	Prefix      string // blob prefix for all snapshots (optional)
}

// Azure implements the Store interface on Azure Blob Storage.
type Azure struct {
	client      *azblob.Client
	accountName string
	container   string
	prefix      string
	keyCred     *azblob.SharedKeyCredential
}

// NewAzure creates an Azure Blob snapshot store using shared key
// authentication.
func NewAzure(config AzureConfig) (*Azure, error) {
	if config.AccountName == "" || config.AccountKey == "" || config.Container == "" {
		return nil, fmt.Errorf("account name, account key, and container are required")
	}
	cred, err := azblob.NewSharedKeyCredential(config.AccountName, config.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credentials: %v", err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", config.AccountName)
	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure client: %v", err)
	}
	return &Azure{
		client:      client,
		accountName: config.AccountName,
		container:   config.Container,
		prefix:      strings.Trim(config.Prefix, "/"),
		keyCred:     cred,
	}, nil
}

func (a *Azure) key(name string) string {
	if a.prefix == "" {
		return name
	}
	return path.Join(a.prefix, name)
}

// Put uploads a snapshot to the container.
func (a *Azure) Put(name string, reader io.Reader) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	_, err := a.client.UploadStream(context.Background(), a.container, a.key(name), reader, nil)
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %v", err)
	}
	return name, nil
}

// Get downloads a snapshot from the container.
func (a *Azure) Get(name string) (io.ReadCloser, error) {
	blobClient := a.client.ServiceClient().NewContainerClient(a.container).NewBlobClient(a.key(name))
	response, err := blobClient.DownloadStream(context.Background(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to download snapshot: %v", err)
	}
	return response.Body, nil
}

// Exists reports whether a snapshot blob is present in the container.
func (a *Azure) Exists(name string) bool {
	blobClient := a.client.ServiceClient().NewContainerClient(a.container).NewBlobClient(a.key(name))
	_, err := blobClient.GetProperties(context.Background(), nil)
	return err == nil
}

// Size returns the size of a snapshot blob in bytes.
func (a *Azure) Size(name string) (int64, error) {
	blobClient := a.client.ServiceClient().NewContainerClient(a.container).NewBlobClient(a.key(name))
	props, err := blobClient.GetProperties(context.Background(), nil)
	if err != nil {
		return 0, err
	}
	return *props.ContentLength, nil
}

// List returns the names of all snapshots under the configured prefix.
func (a *Azure) List() ([]string, error) {
	ctx := context.Background()
	strip := ""
	var opts *azblob.ListBlobsFlatOptions
	if a.prefix != "" {
		strip = a.prefix + "/"
		opts = &azblob.ListBlobsFlatOptions{Prefix: &strip}
	}

	var names []string
	pager := a.client.NewListBlobsFlatPager(a.container, opts)
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, blob := range resp.Segment.BlobItems {
			names = append(names, strings.TrimPrefix(*blob.Name, strip))
		}
	}
	return names, nil
}

// Delete removes a snapshot blob from the container.
func (a *Azure) Delete(name string) error {
	_, err := a.client.DeleteBlob(context.Background(), a.container, a.key(name), nil)
	return err
}

// SignedURL generates a SAS URL for temporary read access to a snapshot.
func (a *Azure) SignedURL(name string, expiry time.Duration) (string, error) {
	if a.keyCred == nil {
		return "", fmt.Errorf("shared key credential required for SAS URL")
	}
	values := sas.BlobSignatureValues{
		ContainerName: a.container,
		BlobName:      a.key(name),
		Permissions:   "r",
		StartTime:     time.Now().Add(-5 * time.Minute),
		ExpiryTime:    time.Now().Add(expiry),
	}
	q, err := values.SignWithSharedKey(a.keyCred)
	if err != nil {
		return "", fmt.Errorf("failed to generate SAS token: %v", err)
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s/%s?%s",
		a.accountName, a.container, a.key(name), q.Encode()), nil
}

// Info returns container metadata plus snapshot count and total size.
func (a *Azure) Info() (map[string]interface{}, error) {
	info := map[string]interface{}{
		"type":      "azure",
		"account":   a.accountName,
		"container": a.container,
	}
	if a.prefix != "" {
		info["prefix"] = a.prefix
	}

	names, err := a.List()
	if err != nil {
		return info, nil
	}
	var totalSize int64
	for _, name := range names {
		if size, err := a.Size(name); err == nil {
			totalSize += size
		}
	}
	info["totalSize"] = totalSize
	info["count"] = len(names)
	return info, nil
}

// Close is a no-op; the Azure SDK needs no explicit cleanup.
func (a *Azure) Close() error {
	return nil
}
