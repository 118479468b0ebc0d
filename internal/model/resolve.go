package model

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ResolveModelFile locates the ONNX model file under basePath.
//
// If file is non-empty it is taken as a path relative to basePath.
// If basePath itself is a regular file, it is used directly.
// Otherwise the directory is searched; exactly one .onnx file must match.
func ResolveModelFile(basePath, file string) (string, error) {
	if file != "" {
		path := filepath.Join(basePath, file)
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("model file %s: %w", path, err)
		}
		if !info.Mode().IsRegular() {
			return "", fmt.Errorf("model file %s is not a regular file", path)
		}
		return path, nil
	}

	info, err := os.Stat(basePath)
	if err != nil {
		return "", fmt.Errorf("model path %s: %w", basePath, err)
	}
	if info.Mode().IsRegular() {
		return basePath, nil
	}

	var candidates []string
	err = filepath.WalkDir(basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".onnx") {
			candidates = append(candidates, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", basePath, err)
	}

	switch len(candidates) {
	case 0:
		return "", fmt.Errorf("no .onnx file found under %s", basePath)
	case 1:
		return candidates[0], nil
	default:
		return "", fmt.Errorf("multiple .onnx files under %s, set source.huggingface.file to pick one: %s",
			basePath, strings.Join(candidates, ", "))
	}
}
