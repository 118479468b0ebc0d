package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("onnx"), 0o644))
}

func TestResolveModelFile_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "onnx", "model.onnx"))

	got, err := ResolveModelFile(dir, "onnx/model.onnx")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "onnx", "model.onnx"), got)
}

func TestResolveModelFile_ExplicitFileMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := ResolveModelFile(dir, "nope.onnx")
	assert.Error(t, err)
}

func TestResolveModelFile_BasePathIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.onnx")
	writeFile(t, path)

	got, err := ResolveModelFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolveModelFile_SingleCandidate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "model.onnx"))
	writeFile(t, filepath.Join(dir, "README.md"))

	got, err := ResolveModelFile(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub", "model.onnx"), got)
}

func TestResolveModelFile_MultipleCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.onnx"))
	writeFile(t, filepath.Join(dir, "b.onnx"))

	_, err := ResolveModelFile(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "multiple .onnx files")
}

func TestResolveModelFile_NoCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "weights.bin"))

	_, err := ResolveModelFile(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no .onnx file")
}
