// Package watch schedules rebuilds when source files appear or disappear in
// a watched workspace. Edits to existing file contents are the compiler
// daemon's concern; only structural changes invalidate the build definition.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/editor"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	bridgefs "github.com/cranebuild/bspbridge/src/bridge/internal/fs"
	"github.com/cranebuild/bspbridge/src/bridge/repository/session"
	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey = "watch"

	_defaultDebounce = 500 * time.Millisecond
)

// Rebuilder is the downstream pipeline a change event eventually drives.
// Implemented by the prepare controller.
type Rebuilder interface {
	Prepare(ctx context.Context, scope entity.ScopeName) (*entity.BuildDescriptor, error)
	BuildOnce(ctx context.Context, desc *entity.BuildDescriptor) error
}

// Controller watches source roots and schedules debounced rebuilds.
type Controller interface {
	// Watch registers recursive watchers over the given roots and associates
	// them with the scope for rebuild scheduling.
	Watch(ctx context.Context, scope entity.ScopeName, roots []string) error
	// Dispose stops the session's watcher and cancels pending rebuilds.
	// Safe to call for sessions that never watched anything.
	Dispose(ctx context.Context) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Sessions  session.Repository
	Rebuilder Rebuilder
	Editor    editor.Gateway
	FS        bridgefs.BridgeFS
	Logger    *zap.SugaredLogger
	Config    config.Provider
	Stats     tally.Scope
}

// sessionWatch is the per-session watch state: one fsnotify watcher, the
// scope each watched root belongs to, and the per-scope debounce timers.
type sessionWatch struct {
	watcher *fsnotify.Watcher
	closer  chan bool

	mu     sync.Mutex
	roots  map[string]entity.ScopeName
	timers map[entity.ScopeName]*time.Timer
}

type controller struct {
	sessions  session.Repository
	rebuilder Rebuilder
	editor    editor.Gateway
	fs        bridgefs.BridgeFS
	logger    *zap.SugaredLogger
	cfg       entity.BuildConfig
	stats     tally.Scope
	debounce  time.Duration

	mu      sync.Mutex
	watches map[uuid.UUID]*sessionWatch
}

// New creates a new controller for watch-triggered rebuild scheduling.
func New(p Params) Controller {
	cfg := entity.BuildConfig{}
	if err := p.Config.Get(entity.BuildConfigKey).Populate(&cfg); err != nil {
		panic(fmt.Sprintf("getting configuration for %q: %v", entity.BuildConfigKey, err))
	}

	debounce := _defaultDebounce
	if cfg.DebounceMillis > 0 {
		debounce = time.Duration(cfg.DebounceMillis) * time.Millisecond
	}

	return &controller{
		sessions:  p.Sessions,
		rebuilder: p.Rebuilder,
		editor:    p.Editor,
		fs:        p.FS,
		logger:    p.Logger.With("plugin", _nameKey),
		cfg:       cfg,
		stats:     p.Stats.SubScope(_nameKey),
		debounce:  debounce,
		watches:   make(map[uuid.UUID]*sessionWatch),
	}
}

func (c *controller) Watch(ctx context.Context, scope entity.ScopeName, roots []string) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	w, err := c.sessionWatch(s.UUID)
	if err != nil {
		return err
	}

	for _, root := range roots {
		w.mu.Lock()
		w.roots[root] = scope
		w.mu.Unlock()

		if err := c.addRecursive(w.watcher, root); err != nil {
			c.logger.Warnf("Failed to watch %q: %v", root, err)
			return err
		}
	}
	return nil
}

func (c *controller) Dispose(ctx context.Context) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	w, ok := c.watches[s.UUID]
	delete(c.watches, s.UUID)
	c.mu.Unlock()
	if !ok {
		return nil
	}

	w.closer <- true
	return nil
}

// sessionWatch returns the watch state for the session, starting the
// watcher and its event loop on first use.
func (c *controller) sessionWatch(id uuid.UUID) (*sessionWatch, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if w, ok := c.watches[id]; ok {
		return w, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fs watcher: %w", err)
	}

	w := &sessionWatch{
		watcher: watcher,
		closer:  make(chan bool, 1),
		roots:   make(map[string]entity.ScopeName),
		timers:  make(map[entity.ScopeName]*time.Timer),
	}
	c.watches[id] = w

	go c.handleChanges(id, w)
	return w, nil
}

// addRecursive registers the root and every directory below it. fsnotify
// watches are not recursive on their own.
func (c *controller) addRecursive(watcher *fsnotify.Watcher, root string) error {
	if exists, err := c.fs.DirExists(root); err != nil || !exists {
		return err
	}
	return c.fs.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if hiddenSegment(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func (c *controller) handleChanges(id uuid.UUID, w *sessionWatch) {
	for {
		select {
		case event := <-w.watcher.Events:
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Newly created directories must be added to the watch set
			// before events inside them can be seen.
			if event.Has(fsnotify.Create) {
				if isDir, _ := c.fs.DirExists(event.Name); isDir {
					if err := c.addRecursive(w.watcher, event.Name); err != nil {
						c.logger.Warnf("Failed to extend watch to %q: %v", event.Name, err)
					}
					continue
				}
			}
			c.handleDebounce(id, w, event)

		case err := <-w.watcher.Errors:
			c.logger.Warnf("Failure in source watcher: %v", err)

		case <-w.closer:
			w.mu.Lock()
			for _, timer := range w.timers {
				timer.Stop()
			}
			w.timers = make(map[entity.ScopeName]*time.Timer)
			w.mu.Unlock()

			if err := w.watcher.Close(); err != nil {
				c.logger.Warnf("Failed to close source watcher: %v", err)
			}
			return
		}
	}
}

// handleDebounce coalesces bursts of events for one scope into a single
// rebuild once the workspace has been quiet for the debounce interval.
func (c *controller) handleDebounce(id uuid.UUID, w *sessionWatch, event fsnotify.Event) {
	if !c.relevant(event.Name) {
		return
	}

	scope, ok := c.scopeFor(w, event.Name)
	if !ok {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.timers[scope]; exists {
		timer.Stop()
	}
	c.stats.Counter("events").Inc(1)

	w.timers[scope] = time.AfterFunc(c.debounce, func() {
		w.mu.Lock()
		delete(w.timers, scope)
		w.mu.Unlock()

		c.rebuild(id, scope)
	})
}

// rebuild runs the preparation pipeline and a fresh build for the scope.
// Failures never propagate past this point; the next change or an
// interactive compile retries naturally.
func (c *controller) rebuild(id uuid.UUID, scope entity.ScopeName) {
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)

	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		// Session ended while the timer was pending.
		return
	}

	desc, err := c.rebuilder.Prepare(ctx, scope)
	if err != nil {
		c.stats.Counter("rebuild_failed").Inc(1)
		c.logger.Debugf("Watch-triggered preparation failed for scope %q: %v", scope, err)
		return
	}

	if desc.Changed && s.Target != nil {
		if err := c.editor.DidChangeBuildTarget(ctx, &bsp.DidChangeBuildTargetParams{
			Changes: []bsp.BuildTargetEvent{{Target: *s.Target, Kind: bsp.BuildTargetEventChanged}},
		}); err != nil {
			c.logger.Debugf("Failed to notify target change: %v", err)
		}
	}

	if err := c.rebuilder.BuildOnce(ctx, desc); err != nil {
		c.stats.Counter("rebuild_failed").Inc(1)
		c.logger.Debugf("Watch-triggered build failed for scope %q: %v", scope, err)
		return
	}
	c.stats.Counter("rebuilds").Inc(1)
}

// relevant reports whether a path should trigger a rebuild: a recognized
// source file outside any hidden directory.
func (c *controller) relevant(path string) bool {
	if hiddenSegment(path) {
		return false
	}
	ext := filepath.Ext(path)
	for _, allowed := range c.cfg.SourceExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func (c *controller) scopeFor(w *sessionWatch, path string) (entity.ScopeName, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for root, scope := range w.roots {
		if strings.HasPrefix(path, root+string(filepath.Separator)) || path == root {
			return scope, true
		}
	}
	return "", false
}

// hiddenSegment reports whether any path segment is dot-prefixed, e.g.
// editor swap directories or VCS metadata.
func hiddenSegment(path string) bool {
	for _, segment := range strings.Split(path, string(filepath.Separator)) {
		if len(segment) > 1 && strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}
