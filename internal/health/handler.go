// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

const checkTimeout = 5 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves liveness and readiness probes. Liveness only reflects
// process state; readiness additionally pings every registered dependency.
type Handler struct {
	deps     map[string]Pinger
	started  time.Time
	ready    atomic.Bool
	shutdown atomic.Bool
}

func NewHandler(db, redis Pinger) *Handler {
	h := &Handler{
		deps: map[string]Pinger{
			"database": db,
			"redis":    redis,
		},
		started: time.Now(),
	}
	h.ready.Store(true)
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Liveness)
	r.Get("/livez", h.Liveness)
	r.Get("/readyz", h.Readiness)
}

func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeProbe(w, http.StatusServiceUnavailable, "shutting_down", nil)
		return
	}
	h.writeProbe(w, http.StatusOK, "ok", nil)
}

func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		h.writeProbe(w, http.StatusServiceUnavailable, "shutting_down", nil)
		return
	}
	if !h.ready.Load() {
		h.writeProbe(w, http.StatusServiceUnavailable, "not_ready", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	checks := h.pingAll(ctx)

	status := "ok"
	code := http.StatusOK
	for _, c := range checks {
		if !c.Healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
			break
		}
	}

	h.writeProbe(w, code, status, checks)
}

// pingAll checks all dependencies concurrently so a slow one does not
// serialize the probe.
func (h *Handler) pingAll(ctx context.Context) map[string]Check {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]Check, len(h.deps))
	)

	for name, dep := range h.deps {
		wg.Add(1)
		go func(name string, dep Pinger) {
			defer wg.Done()
			c := ping(ctx, dep)
			mu.Lock()
			checks[name] = c
			mu.Unlock()
		}(name, dep)
	}

	wg.Wait()
	return checks
}

func ping(ctx context.Context, dep Pinger) Check {
	if dep == nil {
		return Check{Message: "not configured"}
	}

	start := time.Now()
	err := dep.Ping(ctx)
	c := Check{
		Healthy: err == nil,
		Latency: time.Since(start).String(),
	}
	if err != nil {
		c.Message = "ping failed"
	}
	return c
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func (h *Handler) writeProbe(
	w http.ResponseWriter,
	code int,
	status string,
	checks map[string]Check,
) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	//nolint:errcheck // best-effort response
	_ = json.NewEncoder(w).Encode(ProbeResponse{
		Status: status,
		Uptime: time.Since(h.started).Round(time.Second).String(),
		Checks: checks,
	})
}

type ProbeResponse struct {
	Status string           `json:"status"`
	Uptime string           `json:"uptime"`
	Checks map[string]Check `json:"checks,omitempty"`
}

type Check struct {
	Healthy bool   `json:"healthy"`
	Latency string `json:"latency,omitempty"`
	Message string `json:"message,omitempty"`
}
