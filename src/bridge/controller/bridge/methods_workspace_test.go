package bridge

import (
	"context"
	"testing"

	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/factory"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWorkspaceBuildTargets(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := bsp.BuildTargetIdentifier{URI: "file:///workspace/demo"}

	t.Run("returns the workspace target", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{
			UUID:          factory.UUID(),
			WorkspaceRoot: "/workspace/demo",
			Target:        &target,
		}
		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)

		result, err := c.WorkspaceBuildTargets(context.Background())
		require.NoError(t, err)
		require.Len(t, result.Targets, 1)
		assert.Equal(t, target, result.Targets[0].ID)
		assert.Equal(t, "demo", result.Targets[0].DisplayName)
		assert.True(t, result.Targets[0].Capabilities.CanCompile)
	})

	t.Run("empty before initialize assigns a target", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID()}
		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)

		result, err := c.WorkspaceBuildTargets(context.Background())
		require.NoError(t, err)
		assert.Empty(t, result.Targets)
	})
}

func TestSources(t *testing.T) {
	ctrl := gomock.NewController(t)
	target := bsp.BuildTargetIdentifier{URI: "file:///workspace/demo"}

	t.Run("aggregates registered sources across scopes", func(t *testing.T) {
		c, m := newTestController(ctrl)
		c.cfg.Scopes = []entity.ScopeName{entity.ScopeMain, entity.ScopeTest}
		s := &entity.Session{UUID: factory.UUID(), Target: &target}

		mainItems := []bsp.SourceItem{{URI: "file:///workspace/demo/src/main", Kind: bsp.SourceItemDirectory}}
		testItems := []bsp.SourceItem{{URI: "file:///workspace/demo/src/test", Kind: bsp.SourceItemDirectory}}

		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)
		m.prepare.EXPECT().RegisteredSources(gomock.Any(), entity.ScopeMain).Return(mainItems)
		m.prepare.EXPECT().RegisteredSources(gomock.Any(), entity.ScopeTest).Return(testItems)

		result, err := c.Sources(context.Background(), &bsp.SourcesParams{Targets: []bsp.BuildTargetIdentifier{target}})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, target, result.Items[0].Target)
		assert.Len(t, result.Items[0].Sources, 2)
	})

	t.Run("no targets requested", func(t *testing.T) {
		c, m := newTestController(ctrl)
		s := &entity.Session{UUID: factory.UUID(), Target: &target}
		m.sessions.EXPECT().GetFromContext(gomock.Any()).Return(s, nil)

		result, err := c.Sources(context.Background(), &bsp.SourcesParams{})
		require.NoError(t, err)
		assert.Empty(t, result.Items)
	})
}
