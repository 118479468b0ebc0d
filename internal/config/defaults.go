package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigPath returns the default path for the modelprobe config directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "modelprobe", "config")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "modelprobe")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "modelprobe")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "modelprobe")
		}
		return filepath.Join(home, ".config", "modelprobe")
	}
}

// DefaultModelsPath returns the default path for the modelprobe models directory.
func DefaultModelsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "modelprobe", "models")
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Local", "modelprobe", "models")
	case "darwin":
		return filepath.Join(home, "Library", "Caches", "modelprobe", "models")
	default: // Linux, BSD, etc.
		if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
			return filepath.Join(xdg, "modelprobe", "models")
		}
		return filepath.Join(home, ".cache", "modelprobe", "models")
	}
}
