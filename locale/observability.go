package locale

import (
	"context"

	"github.com/kdsmith18542/prefkit/observability"
)

// Observer defines hooks for tracing and metrics in locale operations
type Observer interface {
	OnTranslationMiss(ctx context.Context, code string, key string)
	OnCatalogLoad(ctx context.Context, code string, entries int, sources int)
	OnLocaleChange(ctx context.Context, oldCode string, newCode string)
}

var observer Observer

// RegisterObserver sets the global observer for locale events
func RegisterObserver(obs Observer) {
	observer = obs
}

// getObserver returns the registered observer (or nil)
func getObserver() Observer {
	return observer
}

// localeObserver implements Observer using the global observability system
type localeObserver struct{}

func (l *localeObserver) OnTranslationMiss(ctx context.Context, code string, key string) {
	observability.GetObserver().OnTranslationMiss(ctx, code, key)
}

func (l *localeObserver) OnCatalogLoad(ctx context.Context, code string, entries int, sources int) {
	observability.GetObserver().OnCatalogLoad(ctx, code, entries, sources)
}

func (l *localeObserver) OnLocaleChange(ctx context.Context, oldCode string, newCode string) {
	observability.GetObserver().OnLocaleChange(ctx, oldCode, newCode)
}

// EnableObservability enables observability integration for the locale package
func EnableObservability() {
	RegisterObserver(&localeObserver{})
}
