package mapper

import (
	"context"
	"testing"

	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestSessionModelRoundTrip(t *testing.T) {
	s := &entity.Session{
		State:         entity.StateListening,
		WorkspaceRoot: "/workspace/demo",
		Target:        &bsp.BuildTargetIdentifier{},
	}

	m := SessionToModel(s)
	assert.Equal(t, int(entity.StateListening), m.State)
	assert.Equal(t, s.WorkspaceRoot, m.WorkspaceRoot)

	back, err := ModelToSession(m)
	assert.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestContextToSessionUUID(t *testing.T) {
	t.Run("uuid present", func(t *testing.T) {
		s := entity.Session{}
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, s.UUID)

		result, err := ContextToSessionUUID(ctx)
		assert.NoError(t, err)
		assert.Equal(t, s.UUID, result)
	})

	t.Run("uuid missing", func(t *testing.T) {
		_, err := ContextToSessionUUID(context.Background())
		assert.Error(t, err)
	})

	t.Run("wrong value type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), entity.SessionContextKey, "not-a-uuid")
		_, err := ContextToSessionUUID(ctx)
		assert.Error(t, err)
	})
}

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
