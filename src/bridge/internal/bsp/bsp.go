// Package bsp defines the build-server protocol messages exchanged with the
// editor, plus the methods the bridge issues against the compile daemon's own
// JSON-RPC surface.
package bsp

import "go.lsp.dev/uri"

// Methods initiated by the editor.
const (
	MethodBuildInitialize       = "build/initialize"
	MethodBuildInitialized      = "build/initialized"
	MethodBuildShutdown         = "build/shutdown"
	MethodBuildExit             = "build/exit"
	MethodWorkspaceBuildTargets = "workspace/buildTargets"
	MethodBuildTargetSources    = "buildTarget/sources"
	MethodBuildTargetCompile    = "buildTarget/compile"
)

// Notifications sent to the editor.
const (
	MethodBuildTargetDidChange = "buildTarget/didChange"
	MethodBuildLogMessage      = "build/logMessage"
	MethodBuildShowMessage     = "build/showMessage"
)

// Methods issued against the compile daemon.
const (
	MethodDaemonResolveSources = "daemon/resolveSources"
	MethodDaemonScopedSources  = "daemon/scopedSources"
	MethodDaemonPrepareBuild   = "daemon/prepareBuild"
	MethodDaemonBuildOnce      = "daemon/buildOnce"
	MethodDaemonCompile        = "daemon/compile"
	MethodDaemonPostProcess    = "daemon/postProcess"
	MethodDaemonShutdown       = "daemon/shutdown"
)

// InitializeBuildParams is sent by the editor as the first request on a
// connection, identifying the client and the workspace to build.
type InitializeBuildParams struct {
	DisplayName  string                  `json:"displayName"`
	Version      string                  `json:"version"`
	BspVersion   string                  `json:"bspVersion"`
	RootURI      uri.URI                 `json:"rootUri"`
	Capabilities BuildClientCapabilities `json:"capabilities"`
}

// BuildClientCapabilities describes what the connected editor supports.
type BuildClientCapabilities struct {
	LanguageIDs []string `json:"languageIds"`
}

// InitializeBuildResult is the server's half of the identity exchange.
type InitializeBuildResult struct {
	DisplayName  string                  `json:"displayName"`
	Version      string                  `json:"version"`
	BspVersion   string                  `json:"bspVersion"`
	Capabilities BuildServerCapabilities `json:"capabilities"`
}

// BuildServerCapabilities describes what this server supports.
type BuildServerCapabilities struct {
	CompileProvider *CompileProvider `json:"compileProvider,omitempty"`
	CanReload       bool             `json:"canReload"`
}

// CompileProvider lists the languages for which compile requests are accepted.
type CompileProvider struct {
	LanguageIDs []string `json:"languageIds"`
}

// BuildTargetIdentifier is the opaque identity the protocol assigns to a
// build scope. Change notifications address targets by this value.
type BuildTargetIdentifier struct {
	URI uri.URI `json:"uri"`
}

// BuildTarget describes one addressable build scope.
type BuildTarget struct {
	ID            BuildTargetIdentifier   `json:"id"`
	DisplayName   string                  `json:"displayName"`
	BaseDirectory uri.URI                 `json:"baseDirectory"`
	LanguageIDs   []string                `json:"languageIds"`
	Capabilities  BuildTargetCapabilities `json:"capabilities"`
}

// BuildTargetCapabilities flags the operations valid for a target.
type BuildTargetCapabilities struct {
	CanCompile bool `json:"canCompile"`
	CanTest    bool `json:"canTest"`
	CanRun     bool `json:"canRun"`
}

// WorkspaceBuildTargetsResult lists the targets of the current workspace.
type WorkspaceBuildTargetsResult struct {
	Targets []BuildTarget `json:"targets"`
}

// SourcesParams requests the source listing for a set of targets.
type SourcesParams struct {
	Targets []BuildTargetIdentifier `json:"targets"`
}

// SourcesResult carries per-target source items.
type SourcesResult struct {
	Items []SourcesItem `json:"items"`
}

// SourcesItem lists the sources of a single target.
type SourcesItem struct {
	Target  BuildTargetIdentifier `json:"target"`
	Sources []SourceItem          `json:"sources"`
}

// SourceItemKind discriminates files from directories in a SourceItem.
type SourceItemKind int

const (
	// SourceItemFile marks an individual source file.
	SourceItemFile SourceItemKind = 1
	// SourceItemDirectory marks a source root scanned recursively.
	SourceItemDirectory SourceItemKind = 2
)

// SourceItem is a single source file or root.
type SourceItem struct {
	URI       uri.URI        `json:"uri"`
	Kind      SourceItemKind `json:"kind"`
	Generated bool           `json:"generated"`
}

// CompileParams requests compilation of the given targets.
type CompileParams struct {
	Targets   []BuildTargetIdentifier `json:"targets"`
	OriginID  string                  `json:"originId,omitempty"`
	Arguments []string                `json:"arguments,omitempty"`
}

// StatusCode is the outcome of a compile round-trip.
type StatusCode int

const (
	// StatusOK reports a successful compile.
	StatusOK StatusCode = 1
	// StatusError reports a failed compile.
	StatusError StatusCode = 2
	// StatusCancelled reports a compile aborted before completion.
	StatusCancelled StatusCode = 3
)

// CompileResult is the response to a compile request, returned unchanged to
// the editor regardless of any post-processing outcome.
type CompileResult struct {
	OriginID   string     `json:"originId,omitempty"`
	StatusCode StatusCode `json:"statusCode"`
}

// DidChangeBuildTargetParams notifies the editor that build definitions
// changed since it last queried them.
type DidChangeBuildTargetParams struct {
	Changes []BuildTargetEvent `json:"changes"`
}

// BuildTargetEventKind categorizes a target change.
type BuildTargetEventKind int

const (
	// BuildTargetEventCreated signals a newly known target.
	BuildTargetEventCreated BuildTargetEventKind = 1
	// BuildTargetEventChanged signals a target whose definition changed.
	BuildTargetEventChanged BuildTargetEventKind = 2
	// BuildTargetEventDeleted signals a target that no longer exists.
	BuildTargetEventDeleted BuildTargetEventKind = 3
)

// BuildTargetEvent is a single change entry in a didChange notification.
type BuildTargetEvent struct {
	Target BuildTargetIdentifier `json:"target"`
	Kind   BuildTargetEventKind  `json:"kind"`
}

// MessageType mirrors the severity levels of window messages.
type MessageType int

const (
	// MessageError is an error level message.
	MessageError MessageType = 1
	// MessageWarning is a warning level message.
	MessageWarning MessageType = 2
	// MessageInfo is an informational message.
	MessageInfo MessageType = 3
	// MessageLog is a log level message.
	MessageLog MessageType = 4
)

// LogMessageParams carries a log line shown in the editor's output panel.
type LogMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

// ShowMessageParams carries a message surfaced directly to the user.
type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
