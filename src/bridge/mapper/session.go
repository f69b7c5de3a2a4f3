// Package mapper converts between wire, entity, and model representations.
package mapper

import (
	"context"

	"github.com/cranebuild/bspbridge/src/bridge/entity"
	"github.com/cranebuild/bspbridge/src/bridge/internal/errors"
	"github.com/cranebuild/bspbridge/src/bridge/model"
	"github.com/gofrs/uuid"
)

// SessionToModel maps a Session entity to its model equivalent.
func SessionToModel(s *entity.Session) *model.Session {
	return &model.Session{
		UUID:             s.UUID,
		InitializeParams: s.InitializeParams,
		Conn:             s.Conn,
		State:            int(s.State),
		WorkspaceRoot:    s.WorkspaceRoot,
		Target:           s.Target,
	}
}

// ModelToSession maps a model Session to its entity equivalent.
func ModelToSession(s *model.Session) (*entity.Session, error) {
	return &entity.Session{
		UUID:             s.UUID,
		InitializeParams: s.InitializeParams,
		Conn:             s.Conn,
		State:            entity.SessionState(s.State),
		WorkspaceRoot:    s.WorkspaceRoot,
		Target:           s.Target,
	}, nil
}

// ContextToSessionUUID extracts the session UUID placed on the context by the
// request router.
func ContextToSessionUUID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(entity.SessionContextKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &errors.NoSessionFoundError{}
	}
	return id, nil
}
