package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigDir(t *testing.T) {
	tests := []struct {
		name           string
		setupEnv       func()
		expectedResult string
	}{
		{
			name: "returns environment variable when set",
			setupEnv: func() {
				os.Setenv("BSPBRIDGE_CONFIG_DIR", "/custom/config/path")
			},
			expectedResult: "/custom/config/path",
		},
		{
			name: "returns default path when environment variable not set",
			setupEnv: func() {
				os.Unsetenv("BSPBRIDGE_CONFIG_DIR")
			},
			expectedResult: "src/bridge/config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			t.Cleanup(func() {
				os.Unsetenv("BSPBRIDGE_CONFIG_DIR")
			})

			result := getConfigDir()
			assert.Equal(t, tt.expectedResult, result)
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("fails when config directory doesn't exist", func(t *testing.T) {
		t.Setenv("BSPBRIDGE_CONFIG_DIR", "/nonexistent/path")

		provider, err := NewConfig()
		assert.Error(t, err)
		assert.Nil(t, provider)
	})

	t.Run("fails when no listed files exist", func(t *testing.T) {
		tempDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "meta.yaml"), []byte("files:\n  - missing.yaml\n"), 0644))
		t.Setenv("BSPBRIDGE_CONFIG_DIR", tempDir)

		provider, err := NewConfig()
		assert.Error(t, err)
		assert.Nil(t, provider)
	})

	t.Run("merges listed files in order and skips missing ones", func(t *testing.T) {
		tempDir := t.TempDir()

		metaConfig := `files:
  - base.yaml
  - development.yaml
  - absent.yaml`

		baseConfig := `service:
  name: base-service
logging:
  level: info`

		devConfig := `logging:
  level: debug`

		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "meta.yaml"), []byte(metaConfig), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "base.yaml"), []byte(baseConfig), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "development.yaml"), []byte(devConfig), 0644))

		t.Setenv("BSPBRIDGE_CONFIG_DIR", tempDir)

		provider, err := NewConfig()
		require.NoError(t, err)
		require.NotNil(t, provider)

		serviceName := provider.Get("service.name")
		assert.True(t, serviceName.HasValue())
		assert.Equal(t, "base-service", serviceName.String())

		// Later files override earlier ones.
		loggingLevel := provider.Get("logging.level")
		assert.True(t, loggingLevel.HasValue())
		assert.Equal(t, "debug", loggingLevel.String())
	})
}

func TestConfigName(t *testing.T) {
	c := Config{}
	assert.Equal(t, "config", c.Name())
}
