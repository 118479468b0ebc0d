package mapsafe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_Present(t *testing.T) {
	m := map[string]any{
		"threads": 4,
		"ratio":   0.5,
		"name":    "cpu",
		"enabled": true,
	}

	assert.Equal(t, 4, Get(m, "threads", 0))
	assert.Equal(t, 0.5, Get(m, "ratio", 0.0))
	assert.Equal(t, "cpu", Get(m, "name", ""))
	assert.Equal(t, true, Get(m, "enabled", false))
}

func TestGet_MissingReturnsDefault(t *testing.T) {
	m := map[string]any{}

	assert.Equal(t, 8, Get(m, "threads", 8))
	assert.Equal(t, "default", Get(m, "name", "default"))
}

func TestGet_NumericConversion(t *testing.T) {
	// YAML decodes bare numbers as int, JSON as float64. Both should
	// satisfy an int default.
	m := map[string]any{"device_id": float64(2)}
	assert.Equal(t, 2, Get(m, "device_id", 0))

	m = map[string]any{"scale": 3}
	assert.Equal(t, 3.0, Get(m, "scale", 0.0))
}

func TestGet_WrongTypeReturnsDefault(t *testing.T) {
	m := map[string]any{"threads": "many"}
	assert.Equal(t, 1, Get(m, "threads", 1))
}

func TestStrings(t *testing.T) {
	m := map[string]any{
		"device_id":   0,
		"use_fp16":    true,
		"mem_limit":   int64(1024),
		"gpu_util":    0.75,
		"device_type": "GPU",
	}

	got := Strings(m)
	assert.Equal(t, map[string]string{
		"device_id":   "0",
		"use_fp16":    "true",
		"mem_limit":   "1024",
		"gpu_util":    "0.75",
		"device_type": "GPU",
	}, got)
}

func TestStrings_Empty(t *testing.T) {
	assert.Nil(t, Strings(nil))
	assert.Nil(t, Strings(map[string]any{}))
}
