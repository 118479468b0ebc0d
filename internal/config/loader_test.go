package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndValidate_Valid(t *testing.T) {
	path := writeConfig(t, `
version: "1"
storage:
  models_dir: /tmp/models
probe:
  interval: 1m
  cache_ttl: 10m
server:
  addr: :8080
models:
  resnet:
    source:
      local:
        path: /models/resnet.onnx
    providers:
      - name: CUDAExecutionProvider
        options:
          device_id: 0
      - name: CPUExecutionProvider
    session:
      intra_op_threads: 4
      graph_optimization: all
    tags: [vision]
  bert:
    source:
      huggingface:
        repo: org/bert-onnx
        file: model.onnx
    disabled: true
`)

	cfg, err := LoadAndValidate(path, "")
	require.NoError(t, err)

	assert.Equal(t, "1", cfg.Version)
	assert.Equal(t, "/tmp/models", cfg.Storage.ModelsDir)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Len(t, cfg.Models, 2)

	resnet := cfg.Models["resnet"]
	assert.Equal(t, []string{"CUDAExecutionProvider", "CPUExecutionProvider"}, resnet.ProviderNames())
	assert.Equal(t, 4, resnet.Session.IntraOpThreads)
	assert.Equal(t, "all", resnet.Session.GraphOptimization)
	require.NotNil(t, resnet.Source.Local)
	assert.Equal(t, "/models/resnet.onnx", resnet.Source.Local.Path)

	bert := cfg.Models["bert"]
	assert.True(t, bert.Disabled)
	require.NotNil(t, bert.Source.HuggingFace)
	assert.Equal(t, "org/bert-onnx", bert.Source.HuggingFace.Repo)
	assert.Equal(t, "model.onnx", bert.Source.HuggingFace.File)

	interval, err := cfg.Probe.IntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, interval)

	ttl, err := cfg.Probe.CacheTTLDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, ttl)
}

func TestLoadAndValidate_Defaults(t *testing.T) {
	path := writeConfig(t, `
version: "1"
models:
  m:
    source:
      local:
        path: /models/m.onnx
`)

	cfg, err := LoadAndValidate(path, "")
	require.NoError(t, err)

	interval, err := cfg.Probe.IntervalDuration()
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), interval)

	ttl, err := cfg.Probe.CacheTTLDuration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)
}

func TestLoadAndValidate_UnknownProvider(t *testing.T) {
	path := writeConfig(t, `
version: "1"
models:
  m:
    source:
      local:
        path: /models/m.onnx
    providers:
      - name: QuantumExecutionProvider
`)

	_, err := LoadAndValidate(path, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadAndValidate_MissingSource(t *testing.T) {
	path := writeConfig(t, `
version: "1"
models:
  m:
    providers:
      - name: CPUExecutionProvider
`)

	_, err := LoadAndValidate(path, "")
	assert.Error(t, err)
}

func TestLoadAndValidate_TwoSources(t *testing.T) {
	path := writeConfig(t, `
version: "1"
models:
  m:
    source:
      local:
        path: /models/m.onnx
      huggingface:
        repo: org/m
`)

	_, err := LoadAndValidate(path, "")
	assert.Error(t, err)
}

func TestLoadAndValidate_BadDuration(t *testing.T) {
	path := writeConfig(t, `
version: "1"
probe:
  interval: often
models:
  m:
    source:
      local:
        path: /models/m.onnx
`)

	_, err := LoadAndValidate(path, "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "probe.interval")
}

func TestLoadAndValidate_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "version: [unclosed")

	_, err := LoadAndValidate(path, "")
	assert.Error(t, err)
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	_, err := LoadAndValidate(filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, err)
}
