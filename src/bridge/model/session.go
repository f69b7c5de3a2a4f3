// Package model holds the repository layer models.
package model

import (
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

// Session is the repository layer model for an individual editor session.
type Session struct {
	UUID             uuid.UUID
	InitializeParams *bsp.InitializeBuildParams
	Conn             *jsonrpc2.Conn
	State            int
	WorkspaceRoot    string
	Target           *bsp.BuildTargetIdentifier
}
