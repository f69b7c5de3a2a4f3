package prepare

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/factory"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/buildengine"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/buildengine/buildenginemock"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/resolver/resolvermock"
	bridgeerrors "github.com/cranebuild/bspbridge/src/bridge/internal/errors"
	bridgefs "github.com/cranebuild/bspbridge/src/bridge/internal/fs"
	"github.com/cranebuild/bspbridge/src/bridge/internal/resourcesync"
	"github.com/cranebuild/bspbridge/src/bridge/repository/session"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tally "github.com/uber-go/tally/v4"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newTestController(t *testing.T, workspaceRoot string, resolverMock *resolvermock.MockResolver, engineMock *buildenginemock.MockEngine) (*controller, context.Context) {
	t.Helper()

	testScope := tally.NewTestScope("testing", make(map[string]string, 0))
	sessions := session.New(testScope)
	id := factory.UUID()
	require.NoError(t, sessions.Set(context.Background(), &entity.Session{
		UUID:          id,
		WorkspaceRoot: workspaceRoot,
	}))
	ctx := context.WithValue(context.Background(), entity.SessionContextKey, id)

	fs := bridgefs.New()
	c := &controller{
		sessions: sessions,
		resolver: resolverMock,
		engine:   engineMock,
		syncer:   resourcesync.New(fs),
		fs:       fs,
		logger:   zap.NewNop().Sugar(),
		cfg: entity.BuildConfig{
			Scopes:       []entity.ScopeName{entity.ScopeMain},
			ResourceDirs: []string{"resources"},
			MetadataDir:  ".bridge",
		},
		stats:  testScope,
		states: make(map[uuid.UUID]map[entity.ScopeName]*scopeState),
	}
	return c, ctx
}

func TestPrepare(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("produces a fresh descriptor and materializes generated sources", func(t *testing.T) {
		root := t.TempDir()
		resolverMock := resolvermock.NewMockResolver(ctrl)
		engineMock := buildenginemock.NewMockEngine(ctrl)
		c, ctx := newTestController(t, root, resolverMock, engineMock)

		resolved := []entity.SourceSet{{Scope: entity.ScopeMain}}
		scoped := entity.SourceSet{
			Scope: entity.ScopeMain,
			Roots: []string{filepath.Join(root, "src")},
			GeneratedSources: []entity.GeneratedSource{
				{RelPath: "gen/Version.kt", Content: "val version = 1"},
			},
			ExtraDependencies: []string{filepath.Join(root, "lib", "dep.jar")},
		}

		resolverMock.EXPECT().ResolveSources(gomock.Any(), root, []entity.ScopeName{entity.ScopeMain}).Return(resolved, nil)
		resolverMock.EXPECT().ScopedSources(gomock.Any(), root, resolved, entity.ScopeMain, entity.BuildOptions{}).Return(&scoped, nil)
		engineMock.EXPECT().PrepareBuild(gomock.Any(), gomock.Any()).Return(&buildengine.PrepareResult{
			ClassesDir:   filepath.Join(root, "classes"),
			CompilerArgs: []string{"-language-version", "2.0"},
			Changed:      true,
		}, nil)

		desc, err := c.Prepare(ctx, entity.ScopeMain)
		require.NoError(t, err)

		assert.Equal(t, entity.ScopeMain, desc.Scope)
		assert.True(t, desc.Changed)
		assert.Equal(t, filepath.Join(root, "classes"), desc.ClassesDir)

		content, err := os.ReadFile(filepath.Join(root, ".bridge", "generated", "main", "gen", "Version.kt"))
		require.NoError(t, err)
		assert.Equal(t, "val version = 1", string(content))

		// Registered sources cover roots, extra dependencies, and generated files.
		items := c.RegisteredSources(ctx, entity.ScopeMain)
		assert.Len(t, items, 3)

		stored, ok := c.LastDescriptor(ctx, entity.ScopeMain)
		require.True(t, ok)
		assert.Equal(t, desc, stored)
	})

	t.Run("resolution failure short-circuits with a typed build error", func(t *testing.T) {
		root := t.TempDir()
		resolverMock := resolvermock.NewMockResolver(ctrl)
		engineMock := buildenginemock.NewMockEngine(ctrl)
		c, ctx := newTestController(t, root, resolverMock, engineMock)

		resolverMock.EXPECT().ResolveSources(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("unresolvable"))

		_, err := c.Prepare(ctx, entity.ScopeMain)
		require.Error(t, err)
		be, ok := bridgeerrors.IsBuildError(err)
		require.True(t, ok)
		assert.Equal(t, bridgeerrors.StageResolve, be.Stage)
	})

	t.Run("scoping failure is a typed build error", func(t *testing.T) {
		root := t.TempDir()
		resolverMock := resolvermock.NewMockResolver(ctrl)
		engineMock := buildenginemock.NewMockEngine(ctrl)
		c, ctx := newTestController(t, root, resolverMock, engineMock)

		resolverMock.EXPECT().ResolveSources(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.SourceSet{}, nil)
		resolverMock.EXPECT().ScopedSources(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("bad scope"))

		_, err := c.Prepare(ctx, entity.ScopeMain)
		require.Error(t, err)
		be, ok := bridgeerrors.IsBuildError(err)
		require.True(t, ok)
		assert.Equal(t, bridgeerrors.StageScope, be.Stage)
	})

	t.Run("external prepare failure is a typed build error", func(t *testing.T) {
		root := t.TempDir()
		resolverMock := resolvermock.NewMockResolver(ctrl)
		engineMock := buildenginemock.NewMockEngine(ctrl)
		c, ctx := newTestController(t, root, resolverMock, engineMock)

		resolverMock.EXPECT().ResolveSources(gomock.Any(), gomock.Any(), gomock.Any()).Return([]entity.SourceSet{}, nil)
		resolverMock.EXPECT().ScopedSources(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&entity.SourceSet{Scope: entity.ScopeMain}, nil)
		engineMock.EXPECT().PrepareBuild(gomock.Any(), gomock.Any()).Return(nil, errors.New("engine down"))

		_, err := c.Prepare(ctx, entity.ScopeMain)
		require.Error(t, err)
		be, ok := bridgeerrors.IsBuildError(err)
		require.True(t, ok)
		assert.Equal(t, bridgeerrors.StagePrepare, be.Stage)
	})

	t.Run("fails without a session on the context", func(t *testing.T) {
		root := t.TempDir()
		resolverMock := resolvermock.NewMockResolver(ctrl)
		engineMock := buildenginemock.NewMockEngine(ctrl)
		c, _ := newTestController(t, root, resolverMock, engineMock)

		_, err := c.Prepare(context.Background(), entity.ScopeMain)
		assert.Error(t, err)
	})
}

func TestBuildOnce(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("runs the build and synchronizes resources into the output", func(t *testing.T) {
		root := t.TempDir()
		resolverMock := resolvermock.NewMockResolver(ctrl)
		engineMock := buildenginemock.NewMockEngine(ctrl)
		c, ctx := newTestController(t, root, resolverMock, engineMock)

		classesDir := filepath.Join(root, "classes")
		require.NoError(t, os.MkdirAll(filepath.Join(root, "resources"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "resources", "app.yaml"), []byte("name: demo"), 0644))

		desc := &entity.BuildDescriptor{Scope: entity.ScopeMain, ClassesDir: classesDir}
		engineMock.EXPECT().BuildOnce(gomock.Any(), desc).Return(nil)

		require.NoError(t, c.BuildOnce(ctx, desc))

		copied, err := os.ReadFile(filepath.Join(classesDir, "app.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "name: demo", string(copied))

		registry, err := os.ReadFile(filepath.Join(root, ".bridge", "resource-registry.txt"))
		require.NoError(t, err)
		assert.Equal(t, "app.yaml\n", string(registry))
	})

	t.Run("build failure is a typed build error and skips resource sync", func(t *testing.T) {
		root := t.TempDir()
		resolverMock := resolvermock.NewMockResolver(ctrl)
		engineMock := buildenginemock.NewMockEngine(ctrl)
		c, ctx := newTestController(t, root, resolverMock, engineMock)

		desc := &entity.BuildDescriptor{Scope: entity.ScopeMain, ClassesDir: filepath.Join(root, "classes")}
		engineMock.EXPECT().BuildOnce(gomock.Any(), desc).Return(errors.New("compile failed"))

		err := c.BuildOnce(ctx, desc)
		require.Error(t, err)
		be, ok := bridgeerrors.IsBuildError(err)
		require.True(t, ok)
		assert.Equal(t, bridgeerrors.StageBuild, be.Stage)

		_, err = os.Stat(filepath.Join(root, ".bridge", "resource-registry.txt"))
		assert.True(t, os.IsNotExist(err))
	})
}
