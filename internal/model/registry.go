package model

import (
	"sort"
	"sync"

	"github.com/ekisa-team/modelprobe/internal/config"
)

// Registry stores loaded model instances.
type Registry struct {
	models map[string]*Instance
	config *config.Config
	mu     sync.RWMutex
}

// NewRegistry creates a new model registry.
func NewRegistry(config *config.Config) *Registry {
	return &Registry{
		models: make(map[string]*Instance),
		config: config,
	}
}

// Set adds a model instance to the registry.
func (r *Registry) Set(instance *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.models[instance.ID] = instance
}

// Get returns the model instance with the given ID.
func (r *Registry) Get(id string) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, ok := r.models[id]
	return instance, ok
}

// List returns all model instances ordered by ID.
func (r *Registry) List() []*Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instances := make([]*Instance, 0, len(r.models))
	for _, instance := range r.models {
		instances = append(instances, instance)
	}
	sort.Slice(instances, func(i, j int) bool {
		return instances[i].ID < instances[j].ID
	})

	return instances
}

// Delete deletes the model instance with the given ID.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.models, id)
}
