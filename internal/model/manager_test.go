package model

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/modelprobe/internal/config"
	"github.com/ekisa-team/modelprobe/internal/envvar"
)

func localModelConfig(t *testing.T, id string) (config.ModelConfig, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), id+".onnx")
	require.NoError(t, os.WriteFile(path, []byte("onnx"), 0o644))

	cfg := config.ModelConfig{}
	cfg.SetLocalSource(config.LocalSource{Path: path})
	return cfg, path
}

func TestManager_LoadModelsFromConfig(t *testing.T) {
	t.Setenv(envvar.ModelprobeModelsPath, t.TempDir())

	resnetCfg, resnetPath := localModelConfig(t, "resnet")
	disabledCfg, _ := localModelConfig(t, "old")
	disabledCfg.Disabled = true

	cfg := &config.Config{
		Version: "1",
		Models: map[string]config.ModelConfig{
			"resnet": resnetCfg,
			"old":    disabledCfg,
		},
	}

	m := NewManager()
	require.NoError(t, m.LoadModelsFromConfig(context.Background(), cfg))

	list := m.Registry().List()
	require.Len(t, list, 1)
	assert.Equal(t, "resnet", list[0].ID)
	assert.Equal(t, resnetPath, list[0].Path)
	assert.Equal(t, StatusResolved, list[0].Status())

	_, ok := m.Registry().Get("old")
	assert.False(t, ok)
}

func TestManager_ReloadRemovesDroppedModels(t *testing.T) {
	t.Setenv(envvar.ModelprobeModelsPath, t.TempDir())

	resnetCfg, _ := localModelConfig(t, "resnet")
	bertCfg, _ := localModelConfig(t, "bert")

	m := NewManager()
	require.NoError(t, m.LoadModelsFromConfig(context.Background(), &config.Config{
		Version: "1",
		Models: map[string]config.ModelConfig{
			"resnet": resnetCfg,
			"bert":   bertCfg,
		},
	}))
	require.Len(t, m.Registry().List(), 2)

	require.NoError(t, m.LoadModelsFromConfig(context.Background(), &config.Config{
		Version: "1",
		Models: map[string]config.ModelConfig{
			"bert": bertCfg,
		},
	}))

	list := m.Registry().List()
	require.Len(t, list, 1)
	assert.Equal(t, "bert", list[0].ID)
}

func TestManager_Model(t *testing.T) {
	t.Setenv(envvar.ModelprobeModelsPath, t.TempDir())

	resnetCfg, _ := localModelConfig(t, "resnet")

	m := NewManager()
	_, err := m.Model("resnet")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.LoadModelsFromConfig(context.Background(), &config.Config{
		Version: "1",
		Models:  map[string]config.ModelConfig{"resnet": resnetCfg},
	}))

	inst, err := m.Model("resnet")
	require.NoError(t, err)
	assert.Equal(t, "resnet", inst.ID)

	_, err = m.Model("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_MissingLocalModelFails(t *testing.T) {
	t.Setenv(envvar.ModelprobeModelsPath, t.TempDir())

	missing := config.ModelConfig{}
	missing.SetLocalSource(config.LocalSource{Path: filepath.Join(t.TempDir(), "nope.onnx")})

	m := NewManager()
	err := m.LoadModelsFromConfig(context.Background(), &config.Config{
		Version: "1",
		Models:  map[string]config.ModelConfig{"m": missing},
	})
	assert.Error(t, err)
}
