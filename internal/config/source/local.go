package source

import (
	"context"
	"fmt"
	"os"

	"github.com/ekisa-team/modelprobe/internal/config"
	"github.com/ekisa-team/modelprobe/internal/xfs"
)

// LocalResolver "downloads" a local source by validating that it exists.
type LocalResolver struct{}

// Download resolves a local path. The targetDir is ignored; nothing is copied.
func (r *LocalResolver) Download(_ context.Context, modelConfig *config.ModelConfig, _ string) (string, bool, error) {
	src, err := modelConfig.GetSource()
	if err != nil {
		return "", false, fmt.Errorf("failed to get model source: %w", err)
	}

	local, ok := src.(config.LocalSource)
	if !ok {
		return "", false, fmt.Errorf("invalid source type: %T", src)
	}

	path := xfs.ExpandTilde(local.Path)
	if _, err := os.Stat(path); err != nil {
		return "", false, fmt.Errorf("local model path: %w", err)
	}

	return path, true, nil
}
