// Package resourcesync keeps previously-copied output resource files
// consistent with the current source tree. It diffs the current resource
// mapping against a persisted registry, prunes stale outputs, copies current
// files, and rewrites the registry.
package resourcesync

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	bridgefs "github.com/cranebuild/bspbridge/src/bridge/internal/fs"
	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Mapping maps an absolute source-resource path to its output-relative path.
type Mapping map[string]string

// Syncer synchronizes resource files into build output.
type Syncer interface {
	// ComputeMapping walks each resource directory that exists on disk and
	// maps every regular file to its path relative to that directory. Files
	// whose first path segment equals metadataDirName are excluded, so
	// generated artifacts are never reinterpreted as resources. On relative
	// path collisions the later directory wins.
	ComputeMapping(resourceDirs []string, metadataDirName string) (Mapping, error)

	// Sync brings outputRoot and the registry at registryPath in line with
	// the given mapping: stale outputs are deleted, current files copied,
	// and the registry rewritten. An empty mapping removes the registry
	// file entirely. Filesystem errors propagate to the caller.
	Sync(outputRoot string, registryPath string, mapping Mapping) error
}

type syncer struct {
	fs bridgefs.BridgeFS
}

// New creates a new Syncer.
func New(fs bridgefs.BridgeFS) Syncer {
	return &syncer{fs: fs}
}

func (s *syncer) ComputeMapping(resourceDirs []string, metadataDirName string) (Mapping, error) {
	mapping := Mapping{}

	for _, dir := range resourceDirs {
		exists, err := s.fs.DirExists(dir)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}

		err = s.fs.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.Type().IsRegular() {
				return nil
			}

			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			if firstSegment(rel) == metadataDirName {
				return nil
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			mapping[abs] = rel
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return mapping, nil
}

func (s *syncer) Sync(outputRoot string, registryPath string, mapping Mapping) error {
	previous, err := s.readRegistry(registryPath)
	if err != nil {
		return err
	}

	current := make(map[string]struct{}, len(mapping))
	for _, rel := range mapping {
		current[rel] = struct{}{}
	}

	// Prune outputs recorded in the registry that no longer map to a source.
	for rel := range previous {
		if _, ok := current[rel]; ok {
			continue
		}
		if err := s.fs.Remove(filepath.Join(outputRoot, rel)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	for src, rel := range mapping {
		if err := s.fs.CopyFile(src, filepath.Join(outputRoot, rel)); err != nil {
			return err
		}
	}

	return s.writeRegistry(registryPath, current)
}

// readRegistry parses the registry file into a set of relative paths. A
// missing file yields an empty set.
func (s *syncer) readRegistry(registryPath string) (map[string]struct{}, error) {
	data, err := s.fs.ReadFile(registryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]struct{}{}, nil
		}
		return nil, err
	}

	set := map[string]struct{}{}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			continue
		}
		set[line] = struct{}{}
	}
	return set, nil
}

// writeRegistry fully rewrites the registry as a sorted list of distinct
// relative paths, one per line. An empty set removes the file; no empty
// registry is ever persisted.
func (s *syncer) writeRegistry(registryPath string, relPaths map[string]struct{}) error {
	if len(relPaths) == 0 {
		if err := s.fs.Remove(registryPath); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	sorted := make([]string, 0, len(relPaths))
	for rel := range relPaths {
		sorted = append(sorted, rel)
	}
	sort.Strings(sorted)

	if err := s.fs.MkdirAll(filepath.Dir(registryPath)); err != nil {
		return err
	}
	return s.fs.WriteFile(registryPath, strings.Join(sorted, "\n")+"\n")
}

func firstSegment(rel string) string {
	rel = filepath.ToSlash(rel)
	if i := strings.Index(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return rel
}
