// Package probe creates inference sessions for configured models and
// records the outcome.
package probe

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ekisa-team/modelprobe/internal/metrics"
	"github.com/ekisa-team/modelprobe/internal/model"
	"github.com/ekisa-team/modelprobe/internal/ort"
)

// Prober creates and immediately closes inference sessions, producing a
// Report per model. It never runs inference.
type Prober struct {
	rt     *ort.Runtime
	cache  *Cache
	logger *slog.Logger
}

// Option customizes a Prober.
type Option func(*Prober)

// WithCache attaches a digest-keyed report cache.
func WithCache(c *Cache) Option {
	return func(p *Prober) {
		p.cache = c
	}
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = l
	}
}

// New creates a Prober on the given runtime.
func New(rt *ort.Runtime, opts ...Option) *Prober {
	p := &Prober{
		rt:     rt,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Probe creates a session for the model instance and reports the result.
// Failures are captured in the report, never returned; the caller decides
// how to treat them.
func (p *Prober) Probe(ctx context.Context, inst *model.Instance) *Report {
	start := time.Now()
	report := &Report{
		ID:                 uuid.NewString(),
		Model:              inst.ID,
		Path:               inst.Path,
		RequestedProviders: inst.Config.ProviderNames(),
		Host:               ort.HostCPU(),
		CreatedAt:          start.UTC(),
	}

	if err := ctx.Err(); err != nil {
		return p.fail(inst, report, start, err)
	}

	digest, size, err := FileDigest(inst.Path)
	if err != nil {
		return p.fail(inst, report, start, err)
	}
	report.Digest = digest
	report.SizeBytes = size

	if p.cache != nil {
		if hit, ok := p.Get(digest); ok {
			// Only successful probes are cached, so a hit counts as one.
			metrics.RecordCacheHit()
			metrics.RecordProbe(string(OutcomeOK))
			cached := *hit
			cached.ID = report.ID
			cached.Cached = true
			cached.CreatedAt = report.CreatedAt
			inst.SetStatus(model.StatusProbed)
			p.logger.Debug("Probe served from cache", "model", inst.ID, "digest", digest)
			return &cached
		}
		metrics.RecordCacheMiss()
	}

	providers := make([]ort.Provider, 0, len(inst.Config.Providers))
	for _, pc := range inst.Config.Providers {
		providers = append(providers, ort.Provider{Name: pc.Name, Options: pc.Options})
	}

	session, err := p.rt.OpenSession(inst.Path, ort.Options{
		IntraOpThreads:    inst.Config.Session.IntraOpThreads,
		InterOpThreads:    inst.Config.Session.InterOpThreads,
		GraphOptimization: inst.Config.Session.GraphOptimization,
		Providers:         providers,
	})
	if err != nil {
		return p.fail(inst, report, start, err)
	}

	report.UsedProvider = session.Provider
	report.Inputs = session.Inputs
	report.Outputs = session.Outputs
	md := session.Metadata
	report.Metadata = &md
	for _, a := range session.Attempts {
		report.Attempts = append(report.Attempts, Attempt{
			Provider: a.Provider,
			Error:    a.Err.Error(),
		})
	}

	if err := session.Close(); err != nil {
		p.logger.Warn("Failed to close probed session", "model", inst.ID, "error", err)
	}

	report.Outcome = OutcomeOK
	report.DurationMS = float64(time.Since(start)) / float64(time.Millisecond)
	inst.SetStatus(model.StatusProbed)
	metrics.RecordProbe(string(OutcomeOK))
	metrics.RecordProbeDuration(inst.ID, time.Since(start).Seconds())

	if p.cache != nil {
		p.cache.Set(digest, report)
	}

	p.logger.Info("Session probe succeeded",
		"model", inst.ID, "provider", report.UsedProvider, "duration", time.Since(start))
	return report
}

// Get exposes the cache lookup, if a cache is attached.
func (p *Prober) Get(digest string) (*Report, bool) {
	if p.cache == nil {
		return nil, false
	}
	return p.cache.Get(digest)
}

func (p *Prober) fail(inst *model.Instance, report *Report, start time.Time, err error) *Report {
	report.Outcome = OutcomeFailed
	report.Error = err.Error()
	report.DurationMS = float64(time.Since(start)) / float64(time.Millisecond)
	inst.SetStatus(model.StatusFailed)
	metrics.RecordProbe(string(OutcomeFailed))

	p.logger.Error("Session probe failed", "model", inst.ID, "error", err)
	return report
}
