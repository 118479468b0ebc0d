// Package source resolves configured model sources to local artifacts.
package source

import (
	"context"
	"fmt"
	"os"

	"github.com/ekisa-team/modelprobe/internal/config"
)

// Downloader fetches a model into the local models directory.
// It returns the local base path of the artifact and whether it was
// already cached.
type Downloader interface {
	Download(ctx context.Context, modelConfig *config.ModelConfig, targetDir string) (path string, cached bool, err error)
}

// GetDownloader returns the downloader for the given source type.
func GetDownloader(_ context.Context, t config.SourceType) (Downloader, error) {
	switch t {
	case config.SourceTypeHuggingFace:
		return &HuggingFaceDownloader{}, nil
	case config.SourceTypeLocal:
		return &LocalResolver{}, nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", t)
	}
}

// EnsureModelsDirectory creates the models directory if it does not exist.
func EnsureModelsDirectory(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("failed to create models directory %s: %w", path, err)
	}
	return nil
}
