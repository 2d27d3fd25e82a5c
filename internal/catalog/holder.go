package catalog

import (
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/strongslime/atelier/internal/catalog/domain"
	"github.com/strongslime/atelier/internal/config"
	"go.uber.org/zap"
)

// Holder keeps the active catalog behind an atomic.Value so readers
// never block. Loading failures fall back to the built-in default
// catalog: the wizard must stay usable with stale pricing rather than
// refuse to start.
type Holder struct {
	current atomic.Value // holds domain.Catalog

	log         *zap.Logger
	catalogPath string
	themePath   string
	watcher     *fsnotify.Watcher
	done        chan struct{}
}

func NewHolder(cfg config.Config, log *zap.Logger) *Holder {
	h := &Holder{
		log:         log.Named("catalog"),
		catalogPath: cfg.CatalogPath,
		themePath:   cfg.ThemePath,
	}
	h.current.Store(h.load())
	return h
}

// Get returns the active catalog.
func (h *Holder) Get() domain.Catalog {
	return h.current.Load().(domain.Catalog)
}

func (h *Holder) load() domain.Catalog {
	if h.catalogPath == "" {
		h.log.Info("no catalog source configured, using built-in catalog")
		return domain.Default()
	}

	cat, err := Load(h.catalogPath)
	if err != nil {
		h.log.Warn("catalog load failed, falling back to built-in catalog",
			zap.String("path", h.catalogPath), zap.Error(err))
		return domain.Default()
	}

	if h.themePath != "" {
		theme, err := LoadTheme(h.themePath)
		if err != nil {
			h.log.Warn("theme load failed, continuing without theme",
				zap.String("path", h.themePath), zap.Error(err))
		} else {
			cat.Theme = theme
		}
	}

	h.log.Info("catalog loaded",
		zap.String("path", h.catalogPath),
		zap.Int("types", len(cat.CommissionTypes)),
		zap.Int("currencies", len(cat.Currencies)))
	return cat
}

// Watch reloads the catalog when either source document changes.
// Invalid updates are ignored and the current catalog stays active.
func (h *Holder) Watch() error {
	if h.catalogPath == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	h.watcher = watcher
	h.done = make(chan struct{})

	dirs := map[string]struct{}{filepath.Dir(h.catalogPath): {}}
	if h.themePath != "" {
		dirs[filepath.Dir(h.themePath)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			h.log.Warn("catalog watch unavailable", zap.String("dir", dir), zap.Error(err))
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
					continue
				}
				if event.Name != h.catalogPath && event.Name != h.themePath {
					continue
				}
				cat, err := Load(h.catalogPath)
				if err != nil {
					h.log.Warn("catalog reload rejected", zap.Error(err))
					continue
				}
				if h.themePath != "" {
					if theme, err := LoadTheme(h.themePath); err == nil {
						cat.Theme = theme
					}
				}
				h.current.Store(cat)
				h.log.Info("catalog reloaded", zap.String("source", event.Name))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				h.log.Warn("catalog watcher error", zap.Error(err))
			case <-h.done:
				return
			}
		}
	}()

	return nil
}

func (h *Holder) Close() error {
	if h.watcher == nil {
		return nil
	}
	close(h.done)
	return h.watcher.Close()
}
