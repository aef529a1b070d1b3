package prefs

import (
	"context"
	"testing"
	"time"
)

type countingObserver struct {
	augments int
	binds    int
	errors   int
}

func (o *countingObserver) OnAugment(ctx context.Context, group string, added int) { o.augments++ }
func (o *countingObserver) OnBindStart(ctx context.Context, target string)         { o.binds++ }
func (o *countingObserver) OnBindEnd(ctx context.Context, target string, errorCount int, duration time.Duration) {
}
func (o *countingObserver) OnBindError(ctx context.Context, target string, field string, message string) {
	o.errors++
}

func TestObserver_AugmentHook(t *testing.T) {
	observer := &countingObserver{}
	RegisterObserver(observer)
	defer RegisterObserver(nil)

	catalog, store := newAugmenterFixture()
	store.Set("editor.wrapLines", "true")
	NewAugmenter(catalog, store, gateKey, nil).Augment()

	if observer.augments != 1 {
		t.Errorf("Expected 1 augment event, got %d", observer.augments)
	}
}

func TestObserver_BindHooks(t *testing.T) {
	observer := &countingObserver{}
	RegisterObserver(observer)
	defer RegisterObserver(nil)

	store := NewMemStore()
	store.Set("editor.fontSize", "notanumber")
	var p editorPrefs
	Bind(store, &p)

	if observer.binds != 1 {
		t.Errorf("Expected 1 bind start, got %d", observer.binds)
	}
	if observer.errors == 0 {
		t.Error("Expected bind error events")
	}
}

func TestEnableObservability_Prefs(t *testing.T) {
	EnableObservability()
	defer RegisterObserver(nil)
	if getObserver() == nil {
		t.Error("Observer should be registered after EnableObservability")
	}
}
