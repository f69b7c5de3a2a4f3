package bridge

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cranebuild/bspbridge/src/bridge/controller/prepare/preparemock"
	"github.com/cranebuild/bspbridge/src/bridge/controller/watch/watchmock"
	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/factory"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/buildengine/buildenginemock"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/compiledaemon/compiledaemonmock"
	"github.com/cranebuild/bspbridge/src/bridge/gateway/editor/editormock"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/cranebuild/bspbridge/src/bridge/repository/session/repositorymock"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type testMocks struct {
	sessions *repositorymock.MockRepository
	editor   *editormock.MockGateway
	daemon   *compiledaemonmock.MockGateway
	engine   *buildenginemock.MockEngine
	prepare  *preparemock.MockController
	watch    *watchmock.MockController
}

func newTestController(ctrl *gomock.Controller) (*controller, *testMocks) {
	m := &testMocks{
		sessions: repositorymock.NewMockRepository(ctrl),
		editor:   editormock.NewMockGateway(ctrl),
		daemon:   compiledaemonmock.NewMockGateway(ctrl),
		engine:   buildenginemock.NewMockEngine(ctrl),
		prepare:  preparemock.NewMockController(ctrl),
		watch:    watchmock.NewMockController(ctrl),
	}
	c := &controller{
		sessions:           m.sessions,
		editor:             m.editor,
		daemon:             m.daemon,
		engine:             m.engine,
		prepare:            m.prepare,
		watch:              m.watch,
		logger:             zap.NewNop().Sugar(),
		cfg:                entity.BuildConfig{Scopes: []entity.ScopeName{entity.ScopeMain}},
		idleTimer:          time.NewTimer(time.Hour),
		idleTimeoutMinutes: time.Hour,
		watched:            make(map[uuid.UUID]map[entity.ScopeName]struct{}),
	}
	return c, m
}

func TestInitialize(t *testing.T) {
	ctrl := gomock.NewController(t)
	params := &bsp.InitializeBuildParams{
		DisplayName: "editor",
		RootURI:     "file:///workspace/demo",
	}

	t.Run("connects the daemon and assigns the target", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateCreated}
		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.daemon.EXPECT().Connect(gomock.Any()).Return(nil)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, updated *entity.Session) error {
			assert.Equal(t, entity.StateConnected, updated.State)
			assert.Equal(t, "/workspace/demo", updated.WorkspaceRoot)
			require.NotNil(t, updated.Target)
			assert.Equal(t, params.RootURI, updated.Target.URI)
			return nil
		})

		result, err := c.Initialize(context.Background(), params)
		require.NoError(t, err)
		assert.Equal(t, _serverName, result.DisplayName)
		require.NotNil(t, result.Capabilities.CompileProvider)
		assert.Equal(t, _languageIDs, result.Capabilities.CompileProvider.LanguageIDs)
	})

	t.Run("rejects a second initialize", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateListening}
		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)

		_, err := c.Initialize(context.Background(), params)
		var invalid *entity.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("daemon connection failure", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateCreated}
		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.daemon.EXPECT().Connect(gomock.Any()).Return(errors.New("refused"))

		_, err := c.Initialize(context.Background(), params)
		assert.Error(t, err)
	})
}

func TestInitialized(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("prepares, watches, and starts the initial build", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateConnected}
		desc := &entity.BuildDescriptor{
			Scope:   entity.ScopeMain,
			Sources: entity.SourceSet{Roots: []string{"/workspace/demo/src"}},
		}

		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
		m.prepare.EXPECT().Prepare(gomock.Any(), entity.ScopeMain).Return(desc, nil)
		m.watch.EXPECT().Watch(gomock.Any(), entity.ScopeMain, desc.Sources.Roots).Return(nil)
		m.prepare.EXPECT().BuildOnce(gomock.Any(), desc).Return(nil)
		m.editor.EXPECT().ShowMessage(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, c.Initialized(context.Background()))
		c.wg.Wait()
		assert.Equal(t, entity.StateListening, s.State)
	})

	t.Run("initial preparation failure is not fatal", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateConnected}

		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
		m.prepare.EXPECT().Prepare(gomock.Any(), entity.ScopeMain).Return(nil, errors.New("unbuildable"))
		m.editor.EXPECT().ShowMessage(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, c.Initialized(context.Background()))
		c.wg.Wait()
	})

	t.Run("initial build failure is logged and dropped", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateConnected}
		desc := &entity.BuildDescriptor{Scope: entity.ScopeMain}

		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
		m.prepare.EXPECT().Prepare(gomock.Any(), entity.ScopeMain).Return(desc, nil)
		m.watch.EXPECT().Watch(gomock.Any(), entity.ScopeMain, gomock.Any()).Return(nil)
		m.prepare.EXPECT().BuildOnce(gomock.Any(), desc).Return(errors.New("broken build"))
		m.editor.EXPECT().ShowMessage(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, c.Initialized(context.Background()))
		c.wg.Wait()
	})
}

func TestShutdown(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("disposes watchers and closes the daemon", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateListening}

		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.watch.EXPECT().Dispose(gomock.Any()).Return(nil)
		m.daemon.EXPECT().Close().Return(nil)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, c.Shutdown(context.Background()))
		assert.Equal(t, entity.StateShuttingDown, s.State)
	})

	t.Run("second shutdown is a no-op", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateShuttingDown}
		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)

		assert.NoError(t, c.Shutdown(context.Background()))
	})

	t.Run("safe before listening", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateCreated}

		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.watch.EXPECT().Dispose(gomock.Any()).Return(nil)
		m.daemon.EXPECT().Close().Return(nil)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, c.Shutdown(context.Background()))
	})

	t.Run("full shutdown asks the daemon to stop", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateListening}

		require.NoError(t, c.RequestFullShutdown(context.Background()))
		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.watch.EXPECT().Dispose(gomock.Any()).Return(nil)
		m.daemon.EXPECT().Shutdown(gomock.Any()).Return(nil)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, c.Shutdown(context.Background()))
	})

	t.Run("aggregates teardown errors", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateListening}

		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.watch.EXPECT().Dispose(gomock.Any()).Return(errors.New("watcher stuck"))
		m.daemon.EXPECT().Close().Return(errors.New("daemon gone"))
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

		err := c.Shutdown(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "watcher stuck")
		assert.Contains(t, err.Error(), "daemon gone")
	})
}

func TestExit(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("after shutdown ends the session", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateShuttingDown}

		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil).Times(3)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)
		m.watch.EXPECT().Dispose(gomock.Any()).Return(nil)
		m.editor.EXPECT().DeregisterClient(gomock.Any(), s.UUID).Return(nil)
		m.sessions.EXPECT().Delete(gomock.Any(), s.UUID).Return(nil)
		m.sessions.EXPECT().SessionCount(gomock.Any()).Return(0, nil)

		require.NoError(t, c.Exit(context.Background()))
		assert.Equal(t, entity.StateTerminated, s.State)
	})

	t.Run("without prior shutdown still releases resources", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateListening}

		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil).Times(3)
		m.watch.EXPECT().Dispose(gomock.Any()).Return(nil).Times(2)
		m.daemon.EXPECT().Close().Return(nil)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		m.editor.EXPECT().DeregisterClient(gomock.Any(), s.UUID).Return(nil)
		m.sessions.EXPECT().Delete(gomock.Any(), s.UUID).Return(nil)
		m.sessions.EXPECT().SessionCount(gomock.Any()).Return(0, nil)

		require.NoError(t, c.Exit(context.Background()))
		assert.Equal(t, entity.StateTerminated, s.State)
	})

	t.Run("full shutdown zeroes the idle timer", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), State: entity.StateShuttingDown}

		require.NoError(t, c.RequestFullShutdown(context.Background()))
		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil).Times(3)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, c.Exit(context.Background()))
	})
}

func TestInitAndEndSession(t *testing.T) {
	ctrl := gomock.NewController(t)

	t.Run("init registers the client and stores a session", func(t *testing.T) {
		c, m := newTestController(ctrl)

		m.editor.EXPECT().RegisterClient(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		m.sessions.EXPECT().Set(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, s *entity.Session) error {
			assert.Equal(t, entity.StateCreated, s.State)
			return nil
		})
		m.sessions.EXPECT().SessionCount(gomock.Any()).Return(1, nil)

		id, err := c.InitSession(context.Background(), nil)
		require.NoError(t, err)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
	})

	t.Run("end disposes watchers and deletes the session", func(t *testing.T) {
		c, m := newTestController(ctrl)
		id := factory.UUID()

		m.watch.EXPECT().Dispose(gomock.Any()).Return(nil)
		m.editor.EXPECT().DeregisterClient(gomock.Any(), id).Return(nil)
		m.sessions.EXPECT().Delete(gomock.Any(), id).Return(nil)
		m.sessions.EXPECT().SessionCount(gomock.Any()).Return(0, nil)

		require.NoError(t, c.EndSession(context.Background(), id))
	})
}
