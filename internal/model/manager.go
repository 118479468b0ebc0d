package model

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/ekisa-team/modelprobe/internal/config"
	"github.com/ekisa-team/modelprobe/internal/config/source"
	"github.com/ekisa-team/modelprobe/internal/envvar"
	"github.com/ekisa-team/modelprobe/internal/xfs"
)

// Manager orchestrates model lifecycle.
type Manager struct {
	registry *Registry
	mu       sync.RWMutex
}

// NewManager creates a new Manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// Registry returns the model registry.
func (m *Manager) Registry() *Registry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.registry
}

// Model returns the loaded instance with the given ID.
func (m *Manager) Model(id string) (*Instance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.registry != nil {
		if instance, ok := m.registry.Get(id); ok {
			return instance, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// LoadModelsFromConfig resolves all enabled models from the config and
// updates the registry. Sources are downloaded if needed and the ONNX
// model file is located inside each artifact.
func (m *Manager) LoadModelsFromConfig(ctx context.Context, cfg *config.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registry == nil {
		m.registry = NewRegistry(cfg)
	} else {
		m.registry.config = cfg
	}

	modelsPath := resolveModelsPath(cfg)
	if err := source.EnsureModelsDirectory(modelsPath); err != nil {
		return fmt.Errorf("failed to prepare models directory %s: %w", modelsPath, err)
	}

	loadedKeys := make(map[string]bool)
	for modelID := range cfg.Models {
		modelConfig := cfg.Models[modelID]
		if modelConfig.Disabled {
			slog.Info("Model disabled, skipping", "model_id", modelID)
			continue
		}

		modelSource, err := modelConfig.GetSource()
		if err != nil {
			return fmt.Errorf("failed to get model source for %s: %w", modelID, err)
		}

		downloader, err := source.GetDownloader(ctx, modelSource.Type())
		if err != nil {
			return fmt.Errorf("failed to get downloader for %s: %w", modelID, err)
		}

		basePath, cached, err := downloader.Download(ctx, &modelConfig, modelsPath)
		if err != nil {
			return fmt.Errorf("failed to resolve model %s: %w", modelID, err)
		}

		modelPath, err := ResolveModelFile(basePath, modelFileHint(&modelConfig))
		if err != nil {
			return fmt.Errorf("failed to locate model file for %s: %w", modelID, err)
		}

		instance := NewInstance(&modelConfig, modelID, basePath, modelPath)
		instance.SetStatus(StatusResolved)
		loadedKeys[modelID] = true
		m.registry.Set(instance)

		slog.Info("Model loaded into registry",
			"model_id", modelID, "path", modelPath, "cached", cached)
	}

	// Drop registry entries for models removed from the config.
	for _, instance := range m.registry.List() {
		if !loadedKeys[instance.ID] {
			m.registry.Delete(instance.ID)
			slog.Info("Model removed from registry", "model_id", instance.ID)
		}
	}

	return nil
}

// modelFileHint returns the configured model file, if any.
func modelFileHint(cfg *config.ModelConfig) string {
	if cfg.Source.HuggingFace != nil {
		return cfg.Source.HuggingFace.File
	}
	return ""
}

// resolveModelsPath returns the path to the models directory.
// Precedence:
// 1. MODELPROBE_MODELS_PATH environment variable.
// 2. ModelsDir field in the config.
// 3. Default models path.
func resolveModelsPath(cfg *config.Config) string {
	if p := os.Getenv(envvar.ModelprobeModelsPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	if cfg.Storage.ModelsDir != "" {
		return xfs.ExpandTilde(cfg.Storage.ModelsDir)
	}
	return xfs.ExpandTilde(config.DefaultModelsPath())
}
