package prefs

import (
	"context"
	"time"

	"github.com/kdsmith18542/prefkit/observability"
)

// Observer defines hooks for tracing and metrics in preference operations
type Observer interface {
	OnAugment(ctx context.Context, group string, added int)
	OnBindStart(ctx context.Context, target string)
	OnBindEnd(ctx context.Context, target string, errorCount int, duration time.Duration)
	OnBindError(ctx context.Context, target string, field string, message string)
}

var observer Observer

// RegisterObserver sets the global observer for preference events
func RegisterObserver(obs Observer) {
	observer = obs
}

// getObserver returns the registered observer (or nil)
func getObserver() Observer {
	return observer
}

// prefsObserver implements Observer using the global observability system
type prefsObserver struct{}

func (p *prefsObserver) OnAugment(ctx context.Context, group string, added int) {
	observability.GetObserver().OnAugment(ctx, group, added)
}

func (p *prefsObserver) OnBindStart(ctx context.Context, target string) {
	observability.GetObserver().OnBindStart(ctx, target)
}

func (p *prefsObserver) OnBindEnd(ctx context.Context, target string, errorCount int, duration time.Duration) {
	observability.GetObserver().OnBindEnd(ctx, target, errorCount, duration)
}

func (p *prefsObserver) OnBindError(ctx context.Context, target string, field string, message string) {
	observability.GetObserver().OnBindError(ctx, target, field, message)
}

// EnableObservability enables observability integration for the prefs package
func EnableObservability() {
	RegisterObserver(&prefsObserver{})
}
