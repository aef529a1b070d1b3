package locale

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// SelectionFile is the name of the file holding the current language code
// inside the settings directory.
const SelectionFile = "language.txt"

// Change describes a locale change published to subscribers.
type Change struct {
	Code      string
	Direction Direction
	Version   uint64
}

// Provider owns the language selection file and republishes a fresh Catalog
// whenever the selection changes, by explicit call or external file edit.
//
// The provider replaces ambient global state with an explicit version
// counter and a subscription contract: every change bumps Version and is
// delivered to all subscribers.
type Provider struct {
	settingsDir string
	opts        Options

	mu      sync.RWMutex
	code    string
	catalog *Catalog
	version uint64

	subMu   sync.Mutex
	subs    map[int]chan Change
	nextSub int

	watchMu  sync.Mutex
	watchers []func() error

	done      chan struct{}
	closeOnce sync.Once
}

// NewProvider creates a provider rooted at the given settings directory.
// If the selection file is absent it is created with the platform default
// language; a truncated selection (fewer than two characters) is reset to
// the platform default and rewritten.
func NewProvider(settingsDir string, opts Options) (*Provider, error) {
	opts = opts.withDefaults()

	if err := os.MkdirAll(settingsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %v", err)
	}

	p := &Provider{
		settingsDir: settingsDir,
		opts:        opts,
		subs:        make(map[int]chan Change),
		done:        make(chan struct{}),
	}

	code, err := p.readSelection()
	if err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(code, opts)
	if err != nil {
		return nil, err
	}

	p.code = code
	p.catalog = catalog
	return p, nil
}

// SelectionPath returns the path of the language selection file.
func (p *Provider) SelectionPath() string {
	return filepath.Join(p.settingsDir, SelectionFile)
}

// readSelection reads the selection file, creating or repairing it as needed.
func (p *Provider) readSelection() (string, error) {
	path := p.SelectionPath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		code := PlatformDefault()
		if werr := os.WriteFile(path, []byte(code), 0644); werr != nil {
			return "", fmt.Errorf("failed to create selection file: %v", werr)
		}
		return code, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read selection file: %v", err)
	}

	code, ok := parseSelection(string(data))
	if !ok {
		code = PlatformDefault()
		if werr := os.WriteFile(path, []byte(code), 0644); werr != nil {
			return "", fmt.Errorf("failed to repair selection file: %v", werr)
		}
	}
	return code, nil
}

// parseSelection derives the language code from selection file content:
// the first two characters of the trimmed content, lowercased. Content
// shorter than two characters is rejected.
func parseSelection(content string) (string, bool) {
	content = strings.TrimSpace(content)
	if len(content) < 2 {
		return "", false
	}
	return strings.ToLower(content[:2]), true
}

// Catalog returns the current translation catalog.
func (p *Provider) Catalog() *Catalog {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.catalog
}

// Code returns the current two-letter language code.
func (p *Provider) Code() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.code
}

// Direction returns the layout direction of the current catalog.
func (p *Provider) Direction() Direction {
	return p.Catalog().Direction()
}

// Version returns the monotonically increasing change counter. It starts at
// zero and is bumped on every locale change or reload.
func (p *Provider) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// SetLocale writes the new language code to the selection file, rebuilds
// the catalog, bumps the version, and notifies subscribers. The code is
// reduced to its two-letter form before persisting.
func (p *Provider) SetLocale(code string) error {
	normalized := languageCode(code)
	if len(normalized) < 2 {
		return fmt.Errorf("invalid language code %q", code)
	}

	if err := os.WriteFile(p.SelectionPath(), []byte(normalized), 0644); err != nil {
		return fmt.Errorf("failed to write selection file: %v", err)
	}

	return p.apply(normalized)
}

// Reload rebuilds the catalog for the current code, bumps the version, and
// notifies subscribers. Used after bundle files change on disk.
func (p *Provider) Reload() error {
	p.mu.RLock()
	code := p.code
	p.mu.RUnlock()
	return p.rebuild(code)
}

// apply switches to the given code if it differs from the current one.
func (p *Provider) apply(code string) error {
	p.mu.RLock()
	current := p.code
	p.mu.RUnlock()
	if code == current {
		return nil
	}
	return p.rebuild(code)
}

func (p *Provider) rebuild(code string) error {
	catalog, err := LoadCatalog(code, p.opts)
	if err != nil {
		return err
	}

	p.mu.Lock()
	old := p.code
	p.code = code
	p.catalog = catalog
	p.version++
	change := Change{Code: code, Direction: catalog.Direction(), Version: p.version}
	p.mu.Unlock()

	if obs := getObserver(); obs != nil {
		obs.OnLocaleChange(context.Background(), old, code)
	}
	p.broadcast(change)
	return nil
}

// Subscribe registers a change subscriber. The returned cancel function
// removes the subscription and closes the channel. Deliveries never block:
// a subscriber that falls behind misses intermediate changes and should
// consult Catalog() for current state.
func (p *Provider) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, 4)

	p.subMu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch
	p.subMu.Unlock()

	cancel := func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		if _, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

func (p *Provider) broadcast(change Change) {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- change:
		default:
		}
	}
}

// Close stops all watchers started on this provider.
func (p *Provider) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.done)
		p.watchMu.Lock()
		defer p.watchMu.Unlock()
		for _, stop := range p.watchers {
			if cerr := stop(); cerr != nil && err == nil {
				err = cerr
			}
		}
	})
	return err
}

// PlatformDefault detects the platform default language from the locale
// environment, falling back to English.
func PlatformDefault() string {
	for _, env := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		value := os.Getenv(env)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if i := strings.IndexByte(value, '.'); i >= 0 {
			value = value[:i]
		}
		tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
		if err != nil {
			continue
		}
		base, conf := tag.Base()
		if conf == language.No {
			continue
		}
		return base.String()
	}
	return "en"
}
