package probe

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/modelprobe/internal/config"
	"github.com/ekisa-team/modelprobe/internal/model"
	"github.com/ekisa-team/modelprobe/internal/ort"
)

func testInstance(path string) *model.Instance {
	cfg := &config.ModelConfig{
		Providers: []config.ProviderConfig{{Name: ort.CPUExecutionProvider}},
	}
	cfg.SetLocalSource(config.LocalSource{Path: path})
	return model.NewInstance(cfg, "test-model", path, path)
}

func TestProbe_MissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.onnx")
	inst := testInstance(path)

	p := New(ort.NewRuntime(""))
	report := p.Probe(context.Background(), inst)

	assert.False(t, report.OK())
	assert.Equal(t, OutcomeFailed, report.Outcome)
	assert.NotEmpty(t, report.Error)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "test-model", report.Model)
	assert.Equal(t, []string{ort.CPUExecutionProvider}, report.RequestedProviders)
	assert.Equal(t, model.StatusFailed, inst.Status())
}

func TestProbe_CacheHitMarksProbed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.onnx")
	require.NoError(t, os.WriteFile(path, []byte("onnx"), 0o644))

	digest, size, err := FileDigest(path)
	require.NoError(t, err)

	cache := NewCache(time.Minute)
	defer cache.Stop()
	cache.Set(digest, &Report{
		ID:           "original",
		Model:        "test-model",
		Path:         path,
		Digest:       digest,
		SizeBytes:    size,
		UsedProvider: ort.CPUExecutionProvider,
		Outcome:      OutcomeOK,
	})

	inst := testInstance(path)
	p := New(ort.NewRuntime(""), WithCache(cache))
	report := p.Probe(context.Background(), inst)

	assert.True(t, report.OK())
	assert.True(t, report.Cached)
	assert.NotEqual(t, "original", report.ID)
	assert.Equal(t, model.StatusProbed, inst.Status())
}

func TestProbe_CanceledContext(t *testing.T) {
	inst := testInstance(filepath.Join(t.TempDir(), "model.onnx"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(ort.NewRuntime(""))
	report := p.Probe(ctx, inst)

	assert.False(t, report.OK())
	assert.Contains(t, report.Error, "context canceled")
}
