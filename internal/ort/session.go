package ort

import (
	"errors"
	"fmt"
	goruntime "runtime"

	onnxruntime "github.com/yalue/onnxruntime_go"
)

// Options configures session creation.
type Options struct {
	// IntraOpThreads sets the number of threads used within a node.
	// Zero uses the runtime default.
	IntraOpThreads int

	// InterOpThreads sets the number of threads used across nodes.
	// Zero uses the runtime default.
	InterOpThreads int

	// GraphOptimization is one of "disabled", "basic", "extended", "all".
	// Empty uses the runtime default.
	GraphOptimization string

	// Providers is the ordered execution provider preference list.
	// The CPU provider is the implicit last resort.
	Providers []Provider
}

// Attempt records one failed or skipped provider during session creation.
type Attempt struct {
	Provider string
	Err      error
}

// TensorInfo describes one model input or output.
type TensorInfo struct {
	Name       string  `json:"name"`
	Dimensions []int64 `json:"dimensions"`
	Type       string  `json:"type"`
}

// Metadata is a snapshot of the model's embedded metadata.
type Metadata struct {
	ProducerName string `json:"producer_name,omitempty"`
	GraphName    string `json:"graph_name,omitempty"`
	Domain       string `json:"domain,omitempty"`
	Description  string `json:"description,omitempty"`
	Version      int64  `json:"version,omitempty"`
}

// Session is an open inference session bound to a model file.
type Session struct {
	handle *onnxruntime.DynamicAdvancedSession

	// Provider is the execution provider the session ended up on.
	Provider string
	// Attempts lists providers that were tried and failed before Provider.
	Attempts []Attempt
	// Inputs and Outputs describe the model's graph boundary.
	Inputs  []TensorInfo
	Outputs []TensorInfo
	// Metadata is the model's embedded metadata.
	Metadata Metadata
}

// ErrNoProvider is wrapped into the error returned when no execution
// provider, including the CPU fallback, could create a session.
var ErrNoProvider = errors.New("no usable execution provider")

// OpenSession creates an inference session for the model at modelPath.
//
// Providers from o.Providers are tried in order; a provider that is not
// supported on this host or fails session creation is skipped and
// recorded. If none succeed the CPU provider is tried last. The returned
// session carries the provider actually used and the skipped attempts.
func (r *Runtime) OpenSession(modelPath string, o Options) (*Session, error) {
	if err := r.Init(); err != nil {
		return nil, err
	}

	inputs, outputs, err := onnxruntime.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("ort: failed to read model graph info for %s: %w", modelPath, err)
	}

	inputNames := make([]string, len(inputs))
	inputInfos := make([]TensorInfo, len(inputs))
	for i, info := range inputs {
		inputNames[i] = info.Name
		inputInfos[i] = tensorInfo(info)
	}
	outputNames := make([]string, len(outputs))
	outputInfos := make([]TensorInfo, len(outputs))
	for i, info := range outputs {
		outputNames[i] = info.Name
		outputInfos[i] = tensorInfo(info)
	}

	var (
		attempts []Attempt
		triedCPU bool
	)
	newSession := func(p *Provider) (*onnxruntime.DynamicAdvancedSession, error) {
		return r.newSession(modelPath, inputNames, outputNames, o, p)
	}

	finish := func(handle *onnxruntime.DynamicAdvancedSession, provider string) *Session {
		return &Session{
			handle:   handle,
			Provider: provider,
			Attempts: attempts,
			Inputs:   inputInfos,
			Outputs:  outputInfos,
			Metadata: readMetadata(modelPath),
		}
	}

	for i := range o.Providers {
		p := o.Providers[i]
		if p.Name == CPUExecutionProvider {
			triedCPU = true
		} else if !SupportedOnHost(p.Name) {
			attempts = append(attempts, Attempt{
				Provider: p.Name,
				Err:      fmt.Errorf("not supported on %s", goruntime.GOOS),
			})
			continue
		}

		handle, err := newSession(&p)
		if err != nil {
			attempts = append(attempts, Attempt{Provider: p.Name, Err: err})
			continue
		}
		return finish(handle, p.Name), nil
	}

	if !triedCPU {
		handle, err := newSession(nil)
		if err != nil {
			attempts = append(attempts, Attempt{Provider: CPUExecutionProvider, Err: err})
		} else {
			return finish(handle, CPUExecutionProvider), nil
		}
	}

	errs := make([]error, 0, len(attempts)+1)
	errs = append(errs, ErrNoProvider)
	for _, a := range attempts {
		errs = append(errs, fmt.Errorf("%s: %w", a.Provider, a.Err))
	}
	return nil, fmt.Errorf("ort: failed to create session for %s: %w", modelPath, errors.Join(errs...))
}

// newSession builds session options and creates one session. A nil
// provider (or the CPU provider) uses the runtime's default provider.
func (r *Runtime) newSession(modelPath string, inputNames, outputNames []string, o Options, p *Provider) (*onnxruntime.DynamicAdvancedSession, error) {
	opts, err := onnxruntime.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer opts.Destroy()

	if o.IntraOpThreads > 0 {
		if err := opts.SetIntraOpNumThreads(o.IntraOpThreads); err != nil {
			return nil, fmt.Errorf("failed to set intra-op threads: %w", err)
		}
	}
	if o.InterOpThreads > 0 {
		if err := opts.SetInterOpNumThreads(o.InterOpThreads); err != nil {
			return nil, fmt.Errorf("failed to set inter-op threads: %w", err)
		}
	}
	if o.GraphOptimization != "" {
		level, err := graphOptimizationLevel(o.GraphOptimization)
		if err != nil {
			return nil, err
		}
		if err := opts.SetGraphOptimizationLevel(level); err != nil {
			return nil, fmt.Errorf("failed to set graph optimization level: %w", err)
		}
	}

	if p != nil && p.Name != CPUExecutionProvider {
		if err := appendProvider(opts, *p); err != nil {
			return nil, err
		}
	}

	return onnxruntime.NewDynamicAdvancedSession(modelPath, inputNames, outputNames, opts)
}

// Close releases the session. Safe to call multiple times.
func (s *Session) Close() error {
	if s.handle == nil {
		return nil
	}
	handle := s.handle
	s.handle = nil
	if err := handle.Destroy(); err != nil {
		return fmt.Errorf("ort: failed to destroy session: %w", err)
	}
	return nil
}

func graphOptimizationLevel(name string) (onnxruntime.GraphOptimizationLevel, error) {
	switch name {
	case "disabled":
		return onnxruntime.GraphOptimizationLevelDisableAll, nil
	case "basic":
		return onnxruntime.GraphOptimizationLevelEnableBasic, nil
	case "extended":
		return onnxruntime.GraphOptimizationLevelEnableExtended, nil
	case "all":
		return onnxruntime.GraphOptimizationLevelEnableAll, nil
	default:
		return 0, fmt.Errorf("unknown graph optimization level: %q", name)
	}
}

func tensorInfo(info onnxruntime.InputOutputInfo) TensorInfo {
	return TensorInfo{
		Name:       info.Name,
		Dimensions: []int64(info.Dimensions),
		Type:       fmt.Sprintf("%v", info.DataType),
	}
}

// readMetadata collects model metadata on a best-effort basis; probing
// must not fail because a metadata field is unavailable.
func readMetadata(modelPath string) Metadata {
	md, err := onnxruntime.GetModelMetadata(modelPath)
	if err != nil {
		return Metadata{}
	}
	defer md.Destroy()

	var out Metadata
	if v, err := md.GetProducerName(); err == nil {
		out.ProducerName = v
	}
	if v, err := md.GetGraphName(); err == nil {
		out.GraphName = v
	}
	if v, err := md.GetDomain(); err == nil {
		out.Domain = v
	}
	if v, err := md.GetDescription(); err == nil {
		out.Description = v
	}
	if v, err := md.GetVersion(); err == nil {
		out.Version = v
	}
	return out
}
