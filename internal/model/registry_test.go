package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ekisa-team/modelprobe/internal/config"
)

func newTestInstance(id string) *Instance {
	cfg := &config.ModelConfig{}
	cfg.SetLocalSource(config.LocalSource{Path: "/models/" + id + ".onnx"})
	return NewInstance(cfg, id, "/models", "/models/"+id+".onnx")
}

func TestRegistry_SetAndGet(t *testing.T) {
	reg := NewRegistry(&config.Config{})

	inst := newTestInstance("resnet")
	reg.Set(inst)

	got, ok := reg.Get("resnet")
	assert.True(t, ok)
	assert.Equal(t, inst, got)

	_, ok = reg.Get("missing")
	assert.False(t, ok)
}

func TestRegistry_ListSorted(t *testing.T) {
	reg := NewRegistry(&config.Config{})

	reg.Set(newTestInstance("yolo"))
	reg.Set(newTestInstance("bert"))
	reg.Set(newTestInstance("resnet"))

	list := reg.List()
	assert.Len(t, list, 3)
	assert.Equal(t, "bert", list[0].ID)
	assert.Equal(t, "resnet", list[1].ID)
	assert.Equal(t, "yolo", list[2].ID)
}

func TestRegistry_Delete(t *testing.T) {
	reg := NewRegistry(&config.Config{})

	reg.Set(newTestInstance("resnet"))
	reg.Delete("resnet")

	_, ok := reg.Get("resnet")
	assert.False(t, ok)
	assert.Empty(t, reg.List())
}

func TestInstance_Status(t *testing.T) {
	inst := newTestInstance("resnet")
	assert.Equal(t, StatusPending, inst.Status())

	inst.SetStatus(StatusResolved)
	assert.Equal(t, StatusResolved, inst.Status())

	inst.SetStatus(StatusProbed)
	assert.Equal(t, StatusProbed, inst.Status())
}
