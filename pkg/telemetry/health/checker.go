package health

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"
)

// Status values reported by checks and probes.
const (
	StatusOK        = "ok"
	StatusReady     = "ready"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// CheckFunc reports a problem with one local precondition of the proxy.
// Checks inspect the filesystem and configuration only; they never call
// EDGAR.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of one check.
type CheckResult struct {
	Status     string  `json:"status"`
	Message    string  `json:"message,omitempty"`
	DurationMS float64 `json:"duration_ms"`
}

// HealthStatus is the body of /health and /ready. Checks is only set for
// readiness.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// ErrCheckTimeout is reported for a check that outlives the checker's
// per-check timeout.
var ErrCheckTimeout = errors.New("health check timeout")

type namedCheck struct {
	name string
	fn   CheckFunc
}

// Checker runs the registered readiness checks one after another, in
// registration order.
type Checker struct {
	mu      sync.RWMutex
	checks  []namedCheck
	timeout time.Duration
}

// New returns a Checker with no checks. A zero timeout means 5s per check.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Checker{timeout: timeout}
}

// RegisterCheck adds a check, or replaces the check already registered
// under name.
func (c *Checker) RegisterCheck(name string, fn CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := slices.IndexFunc(c.checks, func(nc namedCheck) bool { return nc.name == name })
	if i >= 0 {
		c.checks[i].fn = fn
		return
	}
	c.checks = append(c.checks, namedCheck{name: name, fn: fn})
}

// ListChecks returns check names in registration order.
func (c *Checker) ListChecks() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.checks))
	for i, nc := range c.checks {
		names[i] = nc.name
	}
	return names
}

// CheckLiveness always reports ok. A missing frontend build must not get
// the process restarted, so no check is consulted.
func (c *Checker) CheckLiveness(context.Context) HealthStatus {
	return HealthStatus{Status: StatusOK, Timestamp: time.Now()}
}

// CheckReadiness runs every check. One unhealthy check degrades the proxy.
func (c *Checker) CheckReadiness(ctx context.Context) HealthStatus {
	c.mu.RLock()
	checks := slices.Clone(c.checks)
	c.mu.RUnlock()

	status := HealthStatus{
		Status:    StatusReady,
		Checks:    make(map[string]CheckResult, len(checks)),
		Timestamp: time.Now(),
	}
	for _, nc := range checks {
		result := c.run(ctx, nc.fn)
		if result.Status == StatusUnhealthy {
			status.Status = StatusDegraded
		}
		status.Checks[nc.name] = result
	}
	return status
}

func (c *Checker) run(ctx context.Context, fn CheckFunc) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	if err == nil && ctx.Err() != nil {
		err = ErrCheckTimeout
	}

	result := CheckResult{
		Status:     StatusOK,
		DurationMS: float64(time.Since(start).Microseconds()) / 1000,
	}
	if err != nil {
		result.Status = StatusUnhealthy
		result.Message = err.Error()
	}
	return result
}
