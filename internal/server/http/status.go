// Package http serves probe reports and metrics in watch mode.
package http

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ekisa-team/modelprobe/internal/probe"
	"github.com/ekisa-team/modelprobe/internal/version"
)

// StatusServer holds the latest probe report per model and serves them
// over HTTP. It serves probe results, not models.
type StatusServer struct {
	mu      sync.RWMutex
	reports map[string]*probe.Report
	started time.Time
}

// NewStatusServer creates an empty StatusServer.
func NewStatusServer() *StatusServer {
	return &StatusServer{
		reports: make(map[string]*probe.Report),
		started: time.Now(),
	}
}

// Update stores the latest report for its model.
func (s *StatusServer) Update(r *probe.Report) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports[r.Model] = r
}

// Reports returns the stored reports ordered by model ID.
func (s *StatusServer) Reports() []*probe.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*probe.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Model < out[j].Model
	})

	return out
}

// Register mounts the status routes on e.
func (s *StatusServer) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/reports", s.handleListReports)
	e.GET("/v1/reports/:model", s.handleGetReport)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// Start runs the status server until ctx is canceled.
func (s *StatusServer) Start(ctx context.Context, addr string) error {
	e := echo.New()
	s.Register(e)

	sc := echo.StartConfig{Address: addr}
	return sc.Start(ctx, e)
}

func (s *StatusServer) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Resolve().Version,
		"uptime":  time.Since(s.started).String(),
	})
}

func (s *StatusServer) handleListReports(c *echo.Context) error {
	reports := s.Reports()
	failed := 0
	for _, r := range reports {
		if !r.OK() {
			failed++
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"count":   len(reports),
		"failed":  failed,
		"reports": reports,
	})
}

func (s *StatusServer) handleGetReport(c *echo.Context) error {
	id := c.Param("model")

	s.mu.RLock()
	report, ok := s.reports[id]
	s.mu.RUnlock()

	if !ok {
		return c.JSON(http.StatusNotFound, map[string]any{
			"error": "no report for model " + id,
		})
	}

	return c.JSON(http.StatusOK, report)
}
