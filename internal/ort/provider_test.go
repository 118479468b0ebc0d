package ort

import (
	"testing"

	onnxruntime "github.com/yalue/onnxruntime_go"

	"github.com/stretchr/testify/assert"
)

func TestKnown(t *testing.T) {
	for _, name := range KnownProviders() {
		assert.True(t, Known(name), name)
	}
	assert.False(t, Known("QuantumExecutionProvider"))
	assert.False(t, Known(""))
}

func TestKnownProviders_CPUFirst(t *testing.T) {
	providers := KnownProviders()
	assert.NotEmpty(t, providers)
	assert.Equal(t, CPUExecutionProvider, providers[0])
}

func TestSupportedOnHost_CPUAlways(t *testing.T) {
	assert.True(t, SupportedOnHost(CPUExecutionProvider))
	assert.False(t, SupportedOnHost("QuantumExecutionProvider"))
}

func TestHostCPU(t *testing.T) {
	info := HostCPU()
	assert.Greater(t, info.LogicalCores, 0)
}

func TestHostHint(t *testing.T) {
	for _, name := range KnownProviders() {
		assert.NotEmpty(t, HostHint(name), name)
	}
	assert.Empty(t, HostHint("QuantumExecutionProvider"))
}

func TestGraphOptimizationLevel(t *testing.T) {
	cases := map[string]onnxruntime.GraphOptimizationLevel{
		"disabled": onnxruntime.GraphOptimizationLevelDisableAll,
		"basic":    onnxruntime.GraphOptimizationLevelEnableBasic,
		"extended": onnxruntime.GraphOptimizationLevelEnableExtended,
		"all":      onnxruntime.GraphOptimizationLevelEnableAll,
	}

	for name, want := range cases {
		got, err := graphOptimizationLevel(name)
		assert.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := graphOptimizationLevel("fastest")
	assert.Error(t, err)
}
