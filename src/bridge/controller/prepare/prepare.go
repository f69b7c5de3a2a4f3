// Package prepare implements the build preparation pipeline: it turns the
// workspace inputs into a compiler-ready build descriptor for one scope.
package prepare

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/buildengine"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/resolver"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/cranebuild/bspbridge/src/bridge/internal/errors"
	bridgefs "github.com/cranebuild/bspbridge/src/bridge/internal/fs"
	"github.com/cranebuild/bspbridge/src/bridge/internal/resourcesync"
	"github.com/cranebuild/bspbridge/src/bridge/repository/session"
	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey          = "prepare"
	_generatedDirName = "generated"
	_registryFileName = "resource-registry.txt"
)

// Controller drives build preparation and one-shot builds for each scope.
type Controller interface {
	// Prepare resolves, scopes, and materializes the build state for the
	// given scope, returning a fresh descriptor. Concurrent calls for the
	// same scope of the same session are serialized.
	Prepare(ctx context.Context, scope entity.ScopeName) (*entity.BuildDescriptor, error)
	// BuildOnce runs a full build of the prepared scope, then synchronizes
	// resource files into the build output.
	BuildOnce(ctx context.Context, desc *entity.BuildDescriptor) error
	// PostProcess propagates semantic metadata into the generated-source
	// tree after a successful compile.
	PostProcess(ctx context.Context, desc *entity.BuildDescriptor) error
	// RegisteredSources returns the source items recorded during the most
	// recent preparation of the scope.
	RegisteredSources(ctx context.Context, scope entity.ScopeName) []bsp.SourceItem
	// LastDescriptor returns the most recent descriptor for the scope.
	LastDescriptor(ctx context.Context, scope entity.ScopeName) (*entity.BuildDescriptor, bool)
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Sessions session.Repository
	Resolver resolver.Resolver
	Engine   buildengine.Engine
	Syncer   resourcesync.Syncer
	FS       bridgefs.BridgeFS
	Logger   *zap.SugaredLogger
	Config   config.Provider
	Stats    tally.Scope
}

// scopeState is the per-session, per-scope slot holding the last descriptor
// and the single-slot in-flight guard for preparation.
type scopeState struct {
	mu      sync.Mutex
	desc    *entity.BuildDescriptor
	sources []bsp.SourceItem
}

type controller struct {
	sessions session.Repository
	resolver resolver.Resolver
	engine   buildengine.Engine
	syncer   resourcesync.Syncer
	fs       bridgefs.BridgeFS
	logger   *zap.SugaredLogger
	cfg      entity.BuildConfig
	stats    tally.Scope

	statesMu sync.Mutex
	states   map[uuid.UUID]map[entity.ScopeName]*scopeState
}

// New creates a new controller for build preparation.
func New(p Params) Controller {
	cfg := entity.BuildConfig{}
	if err := p.Config.Get(entity.BuildConfigKey).Populate(&cfg); err != nil {
		panic(fmt.Sprintf("getting configuration for %q: %v", entity.BuildConfigKey, err))
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []entity.ScopeName{entity.ScopeMain}
	}

	return &controller{
		sessions: p.Sessions,
		resolver: p.Resolver,
		engine:   p.Engine,
		syncer:   p.Syncer,
		fs:       p.FS,
		logger:   p.Logger.With("plugin", _nameKey),
		cfg:      cfg,
		stats:    p.Stats.SubScope(_nameKey),
		states:   make(map[uuid.UUID]map[entity.ScopeName]*scopeState),
	}
}

func (c *controller) Prepare(ctx context.Context, scope entity.ScopeName) (*entity.BuildDescriptor, error) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, err
	}

	state := c.scopeState(s.UUID, scope)

	// Single-slot guard: a watch-triggered rebuild and an interactive
	// compile racing on the same scope queue here instead of preparing
	// concurrently.
	state.mu.Lock()
	defer state.mu.Unlock()

	resolved, err := c.resolver.ResolveSources(ctx, s.WorkspaceRoot, c.cfg.Scopes)
	if err != nil {
		return nil, errors.NewBuildError(errors.StageResolve, string(scope), err)
	}

	scoped, err := c.resolver.ScopedSources(ctx, s.WorkspaceRoot, resolved, scope, entity.BuildOptions{})
	if err != nil {
		return nil, errors.NewBuildError(errors.StageScope, string(scope), err)
	}

	// The resolved sources may refine the input options.
	effective := scoped.Options

	generatedDir := filepath.Join(s.WorkspaceRoot, c.cfg.MetadataDir, _generatedDirName, string(scope))
	if err := c.materializeGeneratedSources(generatedDir, scoped.GeneratedSources); err != nil {
		return nil, errors.NewBuildError(errors.StageGenerate, string(scope), err)
	}

	// Record extra dependency and generated sources so that downstream
	// protocol responses reflect them. This happens before the external
	// prepare call and is not rolled back if it fails.
	state.sources = sourceItems(scoped, generatedDir)

	res, err := c.engine.PrepareBuild(ctx, &buildengine.PrepareRequest{
		WorkspaceRoot: s.WorkspaceRoot,
		Scope:         scope,
		Sources:       *scoped,
		GeneratedDir:  generatedDir,
		Options:       effective,
	})
	if err != nil {
		return nil, errors.NewBuildError(errors.StagePrepare, string(scope), err)
	}

	desc := &entity.BuildDescriptor{
		Scope:        scope,
		Sources:      *scoped,
		Options:      effective,
		ClassesDir:   res.ClassesDir,
		GeneratedDir: generatedDir,
		Artifacts:    res.Artifacts,
		Project:      res.Project,
		Changed:      res.Changed,
	}
	state.desc = desc

	c.stats.Counter("prepared").Inc(1)
	return desc, nil
}

func (c *controller) BuildOnce(ctx context.Context, desc *entity.BuildDescriptor) error {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return err
	}

	if err := c.engine.BuildOnce(ctx, desc); err != nil {
		c.stats.Counter("build_failed").Inc(1)
		return errors.NewBuildError(errors.StageBuild, string(desc.Scope), err)
	}
	c.stats.Counter("build_completed").Inc(1)

	return c.syncResources(s.WorkspaceRoot, desc.ClassesDir)
}

func (c *controller) PostProcess(ctx context.Context, desc *entity.BuildDescriptor) error {
	return c.engine.PostProcess(ctx, desc)
}

func (c *controller) RegisteredSources(ctx context.Context, scope entity.ScopeName) []bsp.SourceItem {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil
	}

	state := c.scopeState(s.UUID, scope)
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.sources
}

func (c *controller) LastDescriptor(ctx context.Context, scope entity.ScopeName) (*entity.BuildDescriptor, bool) {
	s, err := c.sessions.GetFromContext(ctx)
	if err != nil {
		return nil, false
	}

	state := c.scopeState(s.UUID, scope)
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.desc == nil {
		return nil, false
	}
	return state.desc, true
}

// syncResources brings the output directory in line with the current
// resource files. Sync failures are fatal to the build that triggered them.
func (c *controller) syncResources(workspaceRoot string, classesDir string) error {
	resourceDirs := make([]string, 0, len(c.cfg.ResourceDirs))
	for _, dir := range c.cfg.ResourceDirs {
		resourceDirs = append(resourceDirs, filepath.Join(workspaceRoot, dir))
	}

	mapping, err := c.syncer.ComputeMapping(resourceDirs, c.cfg.MetadataDir)
	if err != nil {
		return fmt.Errorf("computing resource mapping: %w", err)
	}

	registryPath := filepath.Join(workspaceRoot, c.cfg.MetadataDir, _registryFileName)
	if err := c.syncer.Sync(classesDir, registryPath, mapping); err != nil {
		return fmt.Errorf("synchronizing resources: %w", err)
	}
	return nil
}

func (c *controller) materializeGeneratedSources(generatedDir string, sources []entity.GeneratedSource) error {
	if len(sources) == 0 {
		return nil
	}
	for _, src := range sources {
		path := filepath.Join(generatedDir, src.RelPath)
		if err := c.fs.MkdirAll(filepath.Dir(path)); err != nil {
			return err
		}
		if err := c.fs.WriteFile(path, src.Content); err != nil {
			return err
		}
	}
	return nil
}

func (c *controller) scopeState(id uuid.UUID, scope entity.ScopeName) *scopeState {
	c.statesMu.Lock()
	defer c.statesMu.Unlock()

	scopes, ok := c.states[id]
	if !ok {
		scopes = make(map[entity.ScopeName]*scopeState)
		c.states[id] = scopes
	}
	state, ok := scopes[scope]
	if !ok {
		state = &scopeState{}
		scopes[scope] = state
	}
	return state
}

func sourceItems(scoped *entity.SourceSet, generatedDir string) []bsp.SourceItem {
	items := make([]bsp.SourceItem, 0, len(scoped.Roots)+len(scoped.ExtraDependencies)+len(scoped.GeneratedSources))
	for _, root := range scoped.Roots {
		items = append(items, bsp.SourceItem{
			URI:  uri.File(root),
			Kind: bsp.SourceItemDirectory,
		})
	}
	for _, dep := range scoped.ExtraDependencies {
		items = append(items, bsp.SourceItem{
			URI:  uri.File(dep),
			Kind: bsp.SourceItemFile,
		})
	}
	for _, gen := range scoped.GeneratedSources {
		items = append(items, bsp.SourceItem{
			URI:       uri.File(filepath.Join(generatedDir, gen.RelPath)),
			Kind:      bsp.SourceItemFile,
			Generated: true,
		})
	}
	return items
}
