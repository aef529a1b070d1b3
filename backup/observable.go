package backup

import (
	"context"
	"io"
	"time"

	"github.com/kdsmith18542/prefkit/observability"
)

// Observable wraps a Store implementation with observability hooks. Every
// operation is reported to the global observer with its duration and
// outcome.
type Observable struct {
	store     Store
	storeType string
}

// NewObservable creates an observable wrapper around a snapshot store.
// storeType labels the backend in traces and metrics ("local", "s3", ...).
func NewObservable(store Store, storeType string) *Observable {
	return &Observable{store: store, storeType: storeType}
}

func (o *Observable) report(operation string, start time.Time, success bool) {
	observability.GetObserver().OnStoreOperation(
		context.Background(), operation, o.storeType, time.Since(start), success)
}

func (o *Observable) Put(name string, reader io.Reader) (string, error) {
	start := time.Now()
	path, err := o.store.Put(name, reader)
	o.report("put", start, err == nil)
	return path, err
}

func (o *Observable) Get(name string) (io.ReadCloser, error) {
	start := time.Now()
	reader, err := o.store.Get(name)
	o.report("get", start, err == nil)
	return reader, err
}

func (o *Observable) Exists(name string) bool {
	start := time.Now()
	exists := o.store.Exists(name)
	o.report("exists", start, true)
	return exists
}

func (o *Observable) Size(name string) (int64, error) {
	start := time.Now()
	size, err := o.store.Size(name)
	o.report("size", start, err == nil)
	return size, err
}

func (o *Observable) List() ([]string, error) {
	start := time.Now()
	names, err := o.store.List()
	o.report("list", start, err == nil)
	return names, err
}

func (o *Observable) Delete(name string) error {
	start := time.Now()
	err := o.store.Delete(name)
	o.report("delete", start, err == nil)
	return err
}

func (o *Observable) SignedURL(name string, expiry time.Duration) (string, error) {
	start := time.Now()
	url, err := o.store.SignedURL(name, expiry)
	o.report("signed_url", start, err == nil)
	return url, err
}

func (o *Observable) Info() (map[string]interface{}, error) {
	start := time.Now()
	info, err := o.store.Info()
	o.report("info", start, err == nil)
	return info, err
}

func (o *Observable) Close() error {
	start := time.Now()
	err := o.store.Close()
	o.report("close", start, err == nil)
	return err
}
