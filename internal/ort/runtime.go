// Package ort wraps the ONNX Runtime binding: environment lifecycle,
// execution provider selection, and inference session creation.
//
// The heavy lifting happens inside github.com/yalue/onnxruntime_go; this
// package owns library discovery, the ordered provider preference list,
// and session metadata collection.
package ort

import (
	"fmt"
	"os"
	goruntime "runtime"
	"sync"

	onnxruntime "github.com/yalue/onnxruntime_go"

	"github.com/ekisa-team/modelprobe/internal/envvar"
	"github.com/ekisa-team/modelprobe/internal/xfs"
)

// Runtime owns the process-wide ONNX Runtime environment.
// The environment is initialized at most once and must be closed on
// shutdown. Runtime is safe for concurrent use.
type Runtime struct {
	libraryPath string

	mu          sync.Mutex
	initialized bool
}

// NewRuntime creates a Runtime. libraryPath may be empty, in which case
// the MODELPROBE_ORT_LIBRARY environment variable and then well-known
// system locations are consulted.
func NewRuntime(libraryPath string) *Runtime {
	return &Runtime{libraryPath: libraryPath}
}

// Init initializes the ONNX Runtime environment. Calling Init on an
// already initialized Runtime is a no-op.
func (r *Runtime) Init() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.initialized {
		return nil
	}

	if r.libraryPath == "" {
		r.libraryPath = discoverLibrary()
	}
	if r.libraryPath != "" {
		onnxruntime.SetSharedLibraryPath(r.libraryPath)
	}

	if err := onnxruntime.InitializeEnvironment(); err != nil {
		return fmt.Errorf("ort: failed to initialize environment (library %q): %w", r.libraryPath, err)
	}

	r.initialized = true
	return nil
}

// Close destroys the ONNX Runtime environment. Safe to call multiple times.
func (r *Runtime) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.initialized {
		return nil
	}
	r.initialized = false

	if err := onnxruntime.DestroyEnvironment(); err != nil {
		return fmt.Errorf("ort: failed to destroy environment: %w", err)
	}
	return nil
}

// LibraryPath returns the shared library path in use, or empty if the
// binding's default search applies.
func (r *Runtime) LibraryPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.libraryPath
}

// discoverLibrary finds the ONNX Runtime shared library.
// An explicit environment override wins; otherwise well-known install
// locations are checked. Empty means fall back to the binding's default.
func discoverLibrary() string {
	if p := os.Getenv(envvar.ModelprobeOrtLibrary); p != "" {
		return p
	}

	var candidates []string
	switch goruntime.GOOS {
	case "darwin":
		candidates = []string{
			"/opt/homebrew/lib/libonnxruntime.dylib",
			"/opt/homebrew/opt/onnxruntime/lib/libonnxruntime.dylib",
			"/usr/local/lib/libonnxruntime.dylib",
		}
	case "linux":
		candidates = []string{
			"/usr/lib/libonnxruntime.so",
			"/usr/lib64/libonnxruntime.so",
			"/usr/local/lib/libonnxruntime.so",
			"/usr/lib/x86_64-linux-gnu/libonnxruntime.so",
		}
	}

	for _, c := range candidates {
		if xfs.IsRegularFile(c) {
			return c
		}
	}

	return ""
}
