package model

import (
	"sync"

	"github.com/ekisa-team/modelprobe/internal/config"
)

// Status tracks where a model instance is in its lifecycle.
type Status string

const (
	// StatusPending means the model's source has not been resolved yet.
	StatusPending Status = "pending"
	// StatusResolved means the model artifact exists on disk.
	StatusResolved Status = "resolved"
	// StatusProbed means the last session probe succeeded.
	StatusProbed Status = "probed"
	// StatusFailed means the last session probe failed.
	StatusFailed Status = "failed"
)

// Instance is a configured model bound to a resolved artifact on disk.
type Instance struct {
	// ID is the model's key in the config.
	ID string
	// Config is the model's configuration.
	Config *config.ModelConfig
	// BasePath is the artifact root (download directory or the file itself).
	BasePath string
	// Path is the resolved .onnx model file.
	Path string

	mu     sync.RWMutex
	status Status
}

// NewInstance creates an Instance in the pending state.
func NewInstance(cfg *config.ModelConfig, id, basePath, path string) *Instance {
	return &Instance{
		ID:       id,
		Config:   cfg,
		BasePath: basePath,
		Path:     path,
		status:   StatusPending,
	}
}

// Status returns the instance status.
func (i *Instance) Status() Status {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return i.status
}

// SetStatus updates the instance status.
func (i *Instance) SetStatus(s Status) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.status = s
}
