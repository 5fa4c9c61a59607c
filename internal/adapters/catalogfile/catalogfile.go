// Package catalogfile loads the item catalog from a YAML file and keeps the
// in-memory snapshot fresh when the file changes on disk.
package catalogfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/kitforge/kitforge/internal/domain/catalog"
	"github.com/kitforge/kitforge/internal/domain/model"
	"github.com/kitforge/kitforge/pkg/logger"
	"github.com/kitforge/kitforge/pkg/metrics"
)

// Default provider configuration constants.
const (
	defaultReloadDebounce = 250 * time.Millisecond
)

// file is the on-disk catalog document.
type file struct {
	Items      []model.Item          `yaml:"items"`
	Subclasses []catalog.SubclassKit `yaml:"subclasses"`
}

// Load reads and validates a catalog file, returning an indexed snapshot.
func Load(path string) (*catalog.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var doc file
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	if err := validate(doc); err != nil {
		return nil, err
	}

	return catalog.NewSnapshot(doc.Items, doc.Subclasses), nil
}

// validate checks structural invariants the engine relies on.
func validate(doc file) error {
	if len(doc.Items) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[string]struct{}, len(doc.Items))
	for _, item := range doc.Items {
		if item.ID == "" || item.Name == "" {
			return fmt.Errorf("%w: item %q missing id or name", ErrInvalidItem, item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
		}
		seen[item.ID] = struct{}{}

		switch item.Category {
		case model.CategoryWeapon:
			if item.WeaponSlot == "" {
				return fmt.Errorf("%w: weapon %s has no slot", ErrInvalidItem, item.ID)
			}
		case model.CategoryArmor:
			if item.ArmorSlot == "" {
				return fmt.Errorf("%w: armor %s has no slot", ErrInvalidItem, item.ID)
			}
		case model.CategoryMod:
			if !model.ValidStat(item.Boost) || item.BoostAmount <= 0 {
				return fmt.Errorf("%w: mod %s has no usable boost", ErrInvalidItem, item.ID)
			}
		case model.CategorySubclass:
			// Subclass items carry no extra requirements; the kit lives in
			// the subclasses section.
		default:
			return fmt.Errorf("%w: item %s has unknown category %q", ErrInvalidItem, item.ID, item.Category)
		}
	}
	return nil
}

// Provider serves the active catalog snapshot and optionally watches the
// backing file for changes. Lookups never block on reloads; a failed reload
// keeps the previous snapshot.
type Provider struct {
	path           string
	watch          bool
	reloadDebounce time.Duration

	snapshot atomic.Pointer[catalog.Snapshot]

	watcher  *fsnotify.Watcher
	wg       sync.WaitGroup
	stopChan chan struct{}

	logger logger.Logger
}

// NewProvider loads the catalog and, when watching is enabled, starts a
// background reloader keyed on filesystem events.
func NewProvider(ctx context.Context, path string, opts ...Option) (*Provider, error) {
	p := &Provider{
		path:           path,
		reloadDebounce: defaultReloadDebounce,
		stopChan:       make(chan struct{}),
		logger:         logger.Get().Named("catalog"),
	}
	for _, opt := range opts {
		opt(p)
	}

	snap, err := Load(path)
	if err != nil {
		return nil, err
	}
	p.snapshot.Store(snap)
	metrics.UpdateCatalogItems(snap.Len())
	metrics.RecordCatalogReload("ok")

	if p.watch {
		if err := p.startWatcher(ctx); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Snapshot returns the active catalog view.
func (p *Provider) Snapshot() catalog.View {
	return p.snapshot.Load()
}

// Len returns the item count of the active snapshot.
func (p *Provider) Len() int {
	return p.snapshot.Load().Len()
}

// Close stops the file watcher, if any.
func (p *Provider) Close() error {
	select {
	case <-p.stopChan:
	default:
		close(p.stopChan)
	}
	var err error
	if p.watcher != nil {
		err = p.watcher.Close()
	}
	p.wg.Wait()
	return err
}

// startWatcher watches the catalog's directory. Editors and config pushers
// replace files with rename-and-create, so watching the file alone would
// lose the subscription after the first update.
func (p *Provider) startWatcher(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch catalog directory: %w", err)
	}
	p.watcher = watcher

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		var debounce *time.Timer
		var debounceC <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stopChan:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(p.path) {
					continue
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				// Collapse editor write bursts into one reload.
				if debounce == nil {
					debounce = time.NewTimer(p.reloadDebounce)
					debounceC = debounce.C
				} else {
					debounce.Reset(p.reloadDebounce)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.logger.Warn(ctx, "catalog watcher error", logger.Error(err))
			case <-debounceC:
				debounce = nil
				debounceC = nil
				p.reload(ctx)
			}
		}
	}()
	return nil
}

// reload swaps in a new snapshot. A failed load keeps the previous one.
func (p *Provider) reload(ctx context.Context) {
	snap, err := Load(p.path)
	if err != nil {
		metrics.RecordCatalogReload("error")
		p.logger.Error(ctx, "catalog reload failed, keeping previous snapshot",
			logger.String("path", p.path),
			logger.Error(err),
		)
		return
	}
	p.snapshot.Store(snap)
	metrics.UpdateCatalogItems(snap.Len())
	metrics.RecordCatalogReload("ok")
	p.logger.Info(ctx, "catalog reloaded",
		logger.String("path", p.path),
		logger.Int("items", snap.Len()),
	)
}
