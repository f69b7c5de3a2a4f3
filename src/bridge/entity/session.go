// Package entity contains the domain types for the bridge daemon.
package entity

import (
	"github.com/cranebuild/bspbridge/src/bridge/internal/bsp"
	"github.com/gofrs/uuid"
	"go.lsp.dev/jsonrpc2"
)

type keyType string

// SessionContextKey indicates the key to be used to identify the session UUID in the context.
const SessionContextKey keyType = "SessionUUID"

// BuildConfigKey is the config key that contains the workspace build configuration.
const BuildConfigKey = "build"

// SessionState tracks where a session is in its lifecycle. Transitions are
// guarded; handles that used to be assigned out of constructor order are now
// only touched in the state they belong to.
type SessionState int

const (
	// StateCreated is the state of a freshly accepted connection.
	StateCreated SessionState = iota
	// StateConnected means the compile daemon connection is established and
	// identity has been exchanged.
	StateConnected
	// StateListening means the session is serving requests and watching files.
	StateListening
	// StateShuttingDown means teardown has begun.
	StateShuttingDown
	// StateTerminated is the final state.
	StateTerminated
)

// String implements fmt.Stringer.
func (s SessionState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateConnected:
		return "connected"
	case StateListening:
		return "listening"
	case StateShuttingDown:
		return "shutting-down"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

var validTransitions = map[SessionState][]SessionState{
	StateCreated:      {StateConnected, StateShuttingDown},
	StateConnected:    {StateListening, StateShuttingDown},
	StateListening:    {StateShuttingDown},
	StateShuttingDown: {StateShuttingDown, StateTerminated},
	StateTerminated:   {},
}

// CanTransition reports whether moving to the given state is allowed.
func (s SessionState) CanTransition(to SessionState) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Session entity representing a single editor connection.
type Session struct {
	UUID             uuid.UUID                  `json:"uuid"`
	InitializeParams *bsp.InitializeBuildParams `json:"-"`
	Conn             *jsonrpc2.Conn             `json:"-"`
	State            SessionState               `json:"state"`
	WorkspaceRoot    string                     `json:"workspaceRoot"`
	// Target is the identity assigned during the initialize exchange. It is
	// nil until established; no change notification is sent before then.
	Target *bsp.BuildTargetIdentifier `json:"target,omitempty"`
}

// Transition moves the session to the given state, or fails if the lifecycle
// does not permit the move.
func (s *Session) Transition(to SessionState) error {
	if !s.State.CanTransition(to) {
		return &InvalidTransitionError{From: s.State, To: to}
	}
	s.State = to
	return nil
}

// InvalidTransitionError reports a disallowed session state transition.
type InvalidTransitionError struct {
	From SessionState
	To   SessionState
}

// Error is an implementation of the error interface.
func (e *InvalidTransitionError) Error() string {
	return "invalid session transition from " + e.From.String() + " to " + e.To.String()
}
