package locale

import (
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval is the window used to coalesce rapid successive file
// edits into a single reload. The last write wins.
const debounceInterval = 100 * time.Millisecond

// Watch watches the selection file for external edits and applies the new
// language code when it changes. The watcher runs until Close is called.
func (p *Provider) Watch() error {
	return p.watch(p.settingsDir, func(name string) bool {
		return filepath.Base(name) == SelectionFile
	}, p.applySelection)
}

// WatchBundles watches the bundle directory for edits to .properties files
// and reloads the active catalog when they change. Useful in development
// for live translation editing.
func (p *Provider) WatchBundles() error {
	return p.watch(p.opts.Dir, func(name string) bool {
		return strings.HasSuffix(name, ".properties")
	}, func() {
		if err := p.Reload(); err != nil {
			log.Printf("[locale] bundle reload failed: %v", err)
		}
	})
}

func (p *Provider) watch(dir string, match func(string) bool, fire func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	p.watchMu.Lock()
	p.watchers = append(p.watchers, watcher.Close)
	p.watchMu.Unlock()

	go p.watchLoop(watcher, match, fire)
	return nil
}

// applySelection re-reads the selection file and rebuilds the catalog when
// the stored code changed.
func (p *Provider) applySelection() {
	code, err := p.readSelection()
	if err != nil {
		log.Printf("[locale] %v", err)
		return
	}
	if err := p.apply(code); err != nil {
		log.Printf("[locale] locale reload failed: %v", err)
	}
}

func (p *Provider) watchLoop(watcher *fsnotify.Watcher, match func(string) bool, fire func()) {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !match(event.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounceInterval)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			fire()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[locale] watcher error: %v", err)
		case <-p.done:
			return
		}
	}
}
