package errors

import (
	stderr "errors"
	"fmt"
)

// BuildStage identifies the pipeline step a build error originated from.
type BuildStage string

const (
	// StageResolve is cross-scope source resolution.
	StageResolve BuildStage = "resolve"
	// StageScope is narrowing to the requested scope.
	StageScope BuildStage = "scope"
	// StageGenerate is generated-source materialization.
	StageGenerate BuildStage = "generate"
	// StagePrepare is the external build-definition step.
	StagePrepare BuildStage = "prepare"
	// StageBuild is the build-once invocation.
	StageBuild BuildStage = "build"
)

// BuildError is the typed, recoverable failure surfaced by the preparation
// pipeline. It is returned as a value, never thrown across the public
// operations of the bridge.
type BuildError struct {
	Stage BuildStage
	Scope string
	Err   error
}

// Error is an implementation of the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed at stage %q for scope %q: %v", e.Stage, e.Scope, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *BuildError) Unwrap() error {
	return e.Err
}

// NewBuildError wraps err with the stage and scope it occurred in.
func NewBuildError(stage BuildStage, scope string, err error) error {
	return &BuildError{Stage: stage, Scope: scope, Err: err}
}

// IsBuildError reports whether a BuildError is part of the error chain, and
// returns it if so.
func IsBuildError(e error) (*BuildError, bool) {
	var be *BuildError
	if !stderr.As(e, &be) {
		return nil, false
	}
	return be, true
}
