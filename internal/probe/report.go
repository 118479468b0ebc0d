package probe

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/ekisa-team/modelprobe/internal/ort"
)

// Outcome is the result classification of a probe.
type Outcome string

const (
	// OutcomeOK means a session was created successfully.
	OutcomeOK Outcome = "ok"
	// OutcomeFailed means no session could be created.
	OutcomeFailed Outcome = "failed"
)

// Attempt is a provider that was tried and failed before the session
// settled on its provider.
type Attempt struct {
	Provider string `json:"provider"`
	Error    string `json:"error"`
}

// Report is the recorded result of one session probe.
type Report struct {
	ID                 string           `json:"id"`
	Model              string           `json:"model"`
	Path               string           `json:"path"`
	SizeBytes          int64            `json:"size_bytes,omitempty"`
	Digest             string           `json:"digest,omitempty"`
	RequestedProviders []string         `json:"requested_providers"`
	UsedProvider       string           `json:"used_provider,omitempty"`
	Attempts           []Attempt        `json:"attempts,omitempty"`
	Inputs             []ort.TensorInfo `json:"inputs,omitempty"`
	Outputs            []ort.TensorInfo `json:"outputs,omitempty"`
	Metadata           *ort.Metadata    `json:"metadata,omitempty"`
	Host               ort.CPUInfo      `json:"host"`
	DurationMS         float64          `json:"duration_ms"`
	Outcome            Outcome          `json:"outcome"`
	Error              string           `json:"error,omitempty"`
	Cached             bool             `json:"cached,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
}

// OK reports whether the probe succeeded.
func (r *Report) OK() bool {
	return r.Outcome == OutcomeOK
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Summary renders the report as a single log-friendly line.
func (r *Report) Summary() string {
	if !r.OK() {
		return fmt.Sprintf("%s: FAILED (%s)", r.Model, r.Error)
	}

	cached := ""
	if r.Cached {
		cached = ", cached"
	}
	return fmt.Sprintf("%s: OK via %s in %.1fms (%d inputs, %d outputs%s)",
		r.Model, r.UsedProvider, r.DurationMS, len(r.Inputs), len(r.Outputs), cached)
}

// Render writes a human-readable multi-line report.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "model    %s\n", r.Model)
	fmt.Fprintf(w, "path     %s\n", r.Path)
	if r.Digest != "" {
		fmt.Fprintf(w, "artifact %s (%d bytes)\n", r.Digest, r.SizeBytes)
	}
	fmt.Fprintf(w, "outcome  %s\n", r.Outcome)
	if r.Error != "" {
		fmt.Fprintf(w, "error    %s\n", r.Error)
	}
	if r.UsedProvider != "" {
		fmt.Fprintf(w, "provider %s (requested: %s)\n",
			r.UsedProvider, strings.Join(r.RequestedProviders, ", "))
	}
	for _, a := range r.Attempts {
		fmt.Fprintf(w, "skipped  %s: %s\n", a.Provider, a.Error)
	}
	if r.Metadata != nil && r.Metadata.ProducerName != "" {
		fmt.Fprintf(w, "producer %s\n", r.Metadata.ProducerName)
	}
	for _, in := range r.Inputs {
		fmt.Fprintf(w, "input    %s %v %s\n", in.Name, in.Dimensions, in.Type)
	}
	for _, out := range r.Outputs {
		fmt.Fprintf(w, "output   %s %v %s\n", out.Name, out.Dimensions, out.Type)
	}
	fmt.Fprintf(w, "duration %.1fms\n", r.DurationMS)
}
