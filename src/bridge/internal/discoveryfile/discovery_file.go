// Package discoveryfile maintains the connection discovery file that editors
// read to find a running bridge instance.
package discoveryfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _configKeyDiscoveryFile = "discoveryFilePath"

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// DiscoveryFile manages the contents of a single discovery file. Static
// identity fields are written at launch; the listen address is filled in once
// the transport is up. The file is removed at service stop.
type DiscoveryFile interface {
	UpdateField(key string, value string) error
}

type module struct {
	path         string
	logger       *zap.SugaredLogger
	fileContents map[string]interface{}
	mu           sync.Mutex
}

// Params define values to be used by DiscoveryFile.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
}

// New creates a new DiscoveryFile populated with the server's identity.
func New(p Params) (DiscoveryFile, error) {
	m := module{
		logger: p.Logger,
		fileContents: map[string]interface{}{
			"name":       "bsp-bridged",
			"bspVersion": "2.1.0",
			"languages":  []string{"kotlin", "java"},
			"argv":       os.Args,
		},
	}

	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: m.OnStop,
	})

	return &m, nil
}

func (m *module) OnStop(ctx context.Context) error {
	if m.path != "" {
		if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

func (m *module) UpdateField(key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fileContents[key] = value
	jsonOutput, err := json.Marshal(m.fileContents)
	if err != nil {
		return fmt.Errorf("marshalling json: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("creating discovery directory: %w", err)
	}
	if err := os.WriteFile(m.path, jsonOutput, 0644); err != nil {
		return fmt.Errorf("creating discovery file: %w", err)
	}
	m.logger.Infow("connection info saved", zap.String("file", m.path), zap.String(key, value))
	return nil
}

func (m *module) processConfig(cfg config.Provider) error {
	val := cfg.Get(_configKeyDiscoveryFile)
	if err := val.Populate(&m.path); err != nil {
		// incorrectly formatted config
		return fmt.Errorf("getting config field %q: %w", _configKeyDiscoveryFile, err)
	}

	if m.path == "" {
		// yaml is missing either the key or value
		return fmt.Errorf("missing field %q in config", _configKeyDiscoveryFile)
	}

	return nil
}
