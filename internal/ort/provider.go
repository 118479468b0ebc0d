package ort

import (
	"fmt"
	goruntime "runtime"

	"github.com/klauspost/cpuid/v2"
	onnxruntime "github.com/yalue/onnxruntime_go"

	"github.com/ekisa-team/modelprobe/mapsafe"
)

// Execution provider names as ONNX Runtime reports them.
const (
	CPUExecutionProvider      = "CPUExecutionProvider"
	CUDAExecutionProvider     = "CUDAExecutionProvider"
	TensorrtExecutionProvider = "TensorrtExecutionProvider"
	CoreMLExecutionProvider   = "CoreMLExecutionProvider"
	DmlExecutionProvider      = "DmlExecutionProvider"
	OpenVINOExecutionProvider = "OpenVINOExecutionProvider"
)

// Provider specifies an execution provider and its configuration options.
type Provider struct {
	Name    string
	Options map[string]any
}

// KnownProviders returns the provider names this package can configure.
func KnownProviders() []string {
	return []string{
		CPUExecutionProvider,
		CUDAExecutionProvider,
		TensorrtExecutionProvider,
		CoreMLExecutionProvider,
		DmlExecutionProvider,
		OpenVINOExecutionProvider,
	}
}

// Known reports whether name is a provider this package can configure.
func Known(name string) bool {
	for _, p := range KnownProviders() {
		if p == name {
			return true
		}
	}
	return false
}

// SupportedOnHost reports whether the provider can possibly work on this
// operating system. It does not detect drivers or devices; session
// creation is the authoritative check.
func SupportedOnHost(name string) bool {
	switch name {
	case CPUExecutionProvider:
		return true
	case CUDAExecutionProvider, TensorrtExecutionProvider:
		return goruntime.GOOS == "linux" || goruntime.GOOS == "windows"
	case CoreMLExecutionProvider:
		return goruntime.GOOS == "darwin"
	case DmlExecutionProvider:
		return goruntime.GOOS == "windows"
	case OpenVINOExecutionProvider:
		return goruntime.GOOS == "linux" || goruntime.GOOS == "windows"
	default:
		return false
	}
}

// CPUInfo summarizes the host CPU the default provider runs on.
type CPUInfo struct {
	Brand         string `json:"brand"`
	PhysicalCores int    `json:"physical_cores"`
	LogicalCores  int    `json:"logical_cores"`
	AVX2          bool   `json:"avx2"`
	AVX512        bool   `json:"avx512"`
}

// HostCPU returns the host CPU summary.
func HostCPU() CPUInfo {
	return CPUInfo{
		Brand:         cpuid.CPU.BrandName,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		AVX2:          cpuid.CPU.Supports(cpuid.AVX2),
		AVX512:        cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ),
	}
}

// HostHint returns a short human-readable note about the provider on
// this host, for display alongside availability.
func HostHint(name string) string {
	switch name {
	case CPUExecutionProvider:
		info := HostCPU()
		return fmt.Sprintf("%s, %d cores, avx2=%t avx512=%t",
			info.Brand, info.LogicalCores, info.AVX2, info.AVX512)
	case CUDAExecutionProvider, TensorrtExecutionProvider:
		return "requires NVIDIA driver and a CUDA-enabled onnxruntime build"
	case CoreMLExecutionProvider:
		return "macOS only"
	case DmlExecutionProvider:
		return "Windows only (DirectML)"
	case OpenVINOExecutionProvider:
		return "requires an OpenVINO-enabled onnxruntime build"
	default:
		return ""
	}
}

// appendProvider registers p on the session options. The CPU provider is
// ONNX Runtime's built-in default and needs no registration.
func appendProvider(opts *onnxruntime.SessionOptions, p Provider) error {
	switch p.Name {
	case CPUExecutionProvider:
		return nil

	case CUDAExecutionProvider:
		cudaOpts, err := onnxruntime.NewCUDAProviderOptions()
		if err != nil {
			return fmt.Errorf("failed to create CUDA provider options: %w", err)
		}
		defer cudaOpts.Destroy()
		if o := mapsafe.Strings(p.Options); len(o) > 0 {
			if err := cudaOpts.Update(o); err != nil {
				return fmt.Errorf("failed to apply CUDA provider options: %w", err)
			}
		}
		return opts.AppendExecutionProviderCUDA(cudaOpts)

	case TensorrtExecutionProvider:
		trtOpts, err := onnxruntime.NewTensorRTProviderOptions()
		if err != nil {
			return fmt.Errorf("failed to create TensorRT provider options: %w", err)
		}
		defer trtOpts.Destroy()
		if o := mapsafe.Strings(p.Options); len(o) > 0 {
			if err := trtOpts.Update(o); err != nil {
				return fmt.Errorf("failed to apply TensorRT provider options: %w", err)
			}
		}
		return opts.AppendExecutionProviderTensorRT(trtOpts)

	case CoreMLExecutionProvider:
		return opts.AppendExecutionProviderCoreMLV2(mapsafe.Strings(p.Options))

	case DmlExecutionProvider:
		return opts.AppendExecutionProviderDirectML(mapsafe.Get(p.Options, "device_id", 0))

	case OpenVINOExecutionProvider:
		return opts.AppendExecutionProviderOpenVINO(mapsafe.Strings(p.Options))

	default:
		return fmt.Errorf("unknown execution provider: %s", p.Name)
	}
}
