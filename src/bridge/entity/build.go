package entity

// ScopeName is a named build partition with its own source set and options.
type ScopeName string

const (
	// ScopeMain is the primary source scope.
	ScopeMain ScopeName = "main"
	// ScopeTest is the test source scope.
	ScopeTest ScopeName = "test"
)

// BuildConfig is the workspace build configuration loaded from YAML.
type BuildConfig struct {
	// Scopes lists the build partitions to prepare, in order.
	Scopes []ScopeName `yaml:"scopes"`
	// SourceExtensions are the file extensions recognized as sources by the
	// watch scheduler.
	SourceExtensions []string `yaml:"sourceExtensions"`
	// ResourceDirs are workspace-relative directories scanned for resource
	// files to copy into build output.
	ResourceDirs []string `yaml:"resourceDirs"`
	// MetadataDir is the internal build-metadata directory name. Files under
	// it are never treated as resources, and all derived state (generated
	// sources, the resource registry) lives below it.
	MetadataDir string `yaml:"metadataDir"`
	// DebounceMillis is the quiescence window for watch-triggered rebuilds.
	DebounceMillis int `yaml:"debounceMillis"`
}

// BuildOptions are the effective compiler options for one scope.
type BuildOptions struct {
	CompilerArgs []string          `json:"compilerArgs"`
	LanguageID   string            `json:"languageId"`
	Defines      map[string]string `json:"defines,omitempty"`
}

// GeneratedSource is a derived source produced during preparation, written
// into the scope's generated-source root before the build definition step.
type GeneratedSource struct {
	RelPath string `json:"relPath"`
	Content string `json:"content"`
}

// SourceSet is the scoped view of the workspace inputs after resolution.
type SourceSet struct {
	Scope             ScopeName         `json:"scope"`
	Roots             []string          `json:"roots"`
	Files             []string          `json:"files"`
	Options           BuildOptions      `json:"options"`
	GeneratedSources  []GeneratedSource `json:"generatedSources,omitempty"`
	ExtraDependencies []string          `json:"extraDependencies,omitempty"`
}

// ProjectDescriptor is the build engine's view of the prepared project.
type ProjectDescriptor struct {
	Name    string   `json:"name"`
	Modules []string `json:"modules,omitempty"`
}

// BuildDescriptor is the resolved, ready-to-compile representation of one
// scope. Every preparation call produces a fresh value; holders replace their
// previous copy rather than mutating it.
type BuildDescriptor struct {
	Scope        ScopeName         `json:"scope"`
	Sources      SourceSet         `json:"sources"`
	Options      BuildOptions      `json:"options"`
	ClassesDir   string            `json:"classesDir"`
	GeneratedDir string            `json:"generatedDir"`
	Artifacts    []string          `json:"artifacts"`
	Project      ProjectDescriptor `json:"project"`
	// Changed reports whether the build definition differs from the previous
	// preparation of this scope.
	Changed bool `json:"changed"`
}
