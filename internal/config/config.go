package config

import (
	"errors"
	"fmt"
	"time"
)

// SourceType represents the type of model source.
type SourceType string

const (
	// SourceTypeHuggingFace represents a Hugging Face model repository source.
	SourceTypeHuggingFace SourceType = "huggingface"
	// SourceTypeLocal represents a model file already present on disk.
	SourceTypeLocal SourceType = "local"
)

// Config holds the main configuration for the application.
type Config struct {
	Version string                 `json:"version"           yaml:"version"`
	Storage StorageConfig          `json:"storage,omitempty" yaml:"storage,omitempty"`
	Runtime RuntimeConfig          `json:"runtime,omitempty" yaml:"runtime,omitempty"`
	Models  map[string]ModelConfig `json:"models"            yaml:"models"`
	Probe   ProbeConfig            `json:"probe,omitempty"   yaml:"probe,omitempty"`
	Server  ServerConfig           `json:"server,omitempty"  yaml:"server,omitempty"`
}

// StorageConfig holds configuration for caching and auto-download.
type StorageConfig struct {
	ModelsDir string `json:"models_dir,omitempty" yaml:"models_dir,omitempty"`
}

// RuntimeConfig holds configuration for the ONNX Runtime shared library.
type RuntimeConfig struct {
	// LibraryPath points at the ONNX Runtime shared library.
	// Empty means search well-known system locations.
	LibraryPath string `json:"library_path,omitempty" yaml:"library_path,omitempty"`
}

// ProbeConfig holds probing behavior settings for watch mode.
type ProbeConfig struct {
	// Interval between periodic re-probes, as a Go duration string.
	// Empty disables periodic re-probing (probes still run on config change).
	Interval string `json:"interval,omitempty" yaml:"interval,omitempty"`

	// CacheTTL controls how long a probe result for an unchanged model
	// artifact is reused, as a Go duration string. The cache is built once
	// at startup; changing this value requires a restart.
	CacheTTL string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"`
}

// ServerConfig holds the status server settings for watch mode.
type ServerConfig struct {
	// Addr is the listen address. Empty disables the status server.
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`
}

// ModelConfig holds configuration for a specific model.
type ModelConfig struct {
	Source    SourceConfig     `json:"source"              yaml:"source"`
	Providers []ProviderConfig `json:"providers,omitempty" yaml:"providers,omitempty"`
	Session   SessionConfig    `json:"session,omitempty"   yaml:"session,omitempty"`
	Tags      []string         `json:"tags,omitempty"      yaml:"tags,omitempty"`
	Disabled  bool             `json:"disabled,omitempty"  yaml:"disabled,omitempty"`
}

// ProviderConfig names an execution provider and its options.
// Providers are tried in the order they appear in the list; the CPU
// provider is the implicit last resort.
type ProviderConfig struct {
	Name    string         `json:"name"              yaml:"name"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// SessionConfig holds session creation options shared by all providers.
type SessionConfig struct {
	IntraOpThreads    int    `json:"intra_op_threads,omitempty"   yaml:"intra_op_threads,omitempty"`
	InterOpThreads    int    `json:"inter_op_threads,omitempty"   yaml:"inter_op_threads,omitempty"`
	GraphOptimization string `json:"graph_optimization,omitempty" yaml:"graph_optimization,omitempty"`
}

// SourceConfig wraps optional sources (only one should be set).
type SourceConfig struct {
	HuggingFace *HuggingFaceSource `json:"huggingface,omitempty" yaml:"huggingface,omitempty"`
	Local       *LocalSource       `json:"local,omitempty"       yaml:"local,omitempty"`
}

// -------------------------
// Source definitions
// -------------------------

// ModelSource represents a source for a model.
type ModelSource interface {
	Type() SourceType
}

// HuggingFaceSource represents a Hugging Face model repository source.
type HuggingFaceSource struct {
	Repo          string   `json:"repo"                     yaml:"repo"`
	Revision      string   `json:"revision,omitempty"       yaml:"revision,omitempty"`
	RepoType      string   `json:"repo_type,omitempty"      yaml:"repo_type,omitempty"`
	Token         string   `json:"token,omitempty"          yaml:"token,omitempty"`
	File          string   `json:"file,omitempty"           yaml:"file,omitempty"`
	Include       []string `json:"include,omitempty"        yaml:"include,omitempty"`
	Exclude       []string `json:"exclude,omitempty"        yaml:"exclude,omitempty"`
	MaxWorkers    int      `json:"max_workers,omitempty"    yaml:"max_workers,omitempty"`
	ForceDownload bool     `json:"force_download,omitempty" yaml:"force_download,omitempty"`
}

// Type returns the Hugging Face source type.
func (h HuggingFaceSource) Type() SourceType {
	return SourceTypeHuggingFace
}

// LocalSource represents a model file already present on the local filesystem.
type LocalSource struct {
	Path string `json:"path" yaml:"path"`
}

// Type returns the local source type.
func (l LocalSource) Type() SourceType {
	return SourceTypeLocal
}

// GetSource returns the active source for the model.
func (m *ModelConfig) GetSource() (ModelSource, error) {
	if m.Source.HuggingFace != nil {
		return *m.Source.HuggingFace, nil
	}
	if m.Source.Local != nil {
		return *m.Source.Local, nil
	}

	return nil, errors.New("no source configured for model")
}

// SetHuggingFaceSource sets the Hugging Face source.
func (m *ModelConfig) SetHuggingFaceSource(source HuggingFaceSource) {
	m.Source.HuggingFace = &source
}

// SetLocalSource sets the local source.
func (m *ModelConfig) SetLocalSource(source LocalSource) {
	m.Source.Local = &source
}

// ProviderNames returns the configured provider names in preference order.
func (m *ModelConfig) ProviderNames() []string {
	names := make([]string, 0, len(m.Providers))
	for _, p := range m.Providers {
		names = append(names, p.Name)
	}
	return names
}

// IntervalDuration parses the periodic re-probe interval.
// Zero means periodic re-probing is disabled.
func (p ProbeConfig) IntervalDuration() (time.Duration, error) {
	return parseDuration(p.Interval, 0)
}

// CacheTTLDuration parses the probe cache TTL.
// The default is five minutes.
func (p ProbeConfig) CacheTTLDuration() (time.Duration, error) {
	return parseDuration(p.CacheTTL, 5*time.Minute)
}

func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}
