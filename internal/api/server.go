// Package api serves the packing engine over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/piwi3910/cubepack/internal/model"
	"github.com/piwi3910/cubepack/internal/store"
	"github.com/piwi3910/cubepack/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultMaxBodyBytes = 8 << 20

// RunStore is the audit trail used by the server. *store.DB implements it.
type RunStore interface {
	RecordRun(ctx context.Context, run *store.Run) error
	ListRuns(ctx context.Context, limit int) ([]*store.Run, error)
	GetRun(ctx context.Context, runID string) (*store.Run, error)
}

// Config holds the server policy.
type Config struct {
	Defaults     model.PackSettings // applied to requests that carry no settings
	Rates        model.QuoteRates
	CORSOrigins  []string // "*" allows any origin
	Catalog      model.Catalog
	MaxBodyBytes int64

	// TracerProvider defaults to the global provider.
	TracerProvider trace.TracerProvider
}

// Server handles the packing API. Runs may be nil, which disables the
// audit trail and the history endpoints.
type Server struct {
	cfg    Config
	runs   RunStore
	logger *slog.Logger
	tracer trace.Tracer
	// engineTracer is handed to each Packer for its per-bin spans.
	engineTracer trace.Tracer

	packRequests metric.Int64Counter
	binFill      metric.Float64Histogram
}

func NewServer(cfg Config, runs RunStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.Defaults == (model.PackSettings{}) {
		cfg.Defaults = model.DefaultSettings()
	}

	s := &Server{
		cfg:    cfg,
		runs:   runs,
		logger: logger.With("component", "api"),
		tracer:       telemetry.Tracer("cubepack/api"),
		engineTracer: telemetry.Tracer("cubepack/engine"),
	}
	if cfg.TracerProvider != nil {
		s.tracer = cfg.TracerProvider.Tracer("cubepack/api")
		s.engineTracer = cfg.TracerProvider.Tracer("cubepack/engine")
	}

	meter := otel.Meter("cubepack/api")
	var err error
	if s.packRequests, err = meter.Int64Counter("cubepack.pack.requests",
		metric.WithDescription("Packing requests by outcome")); err != nil {
		s.logger.Warn("failed to create counter", "error", err)
	}
	if s.binFill, err = meter.Float64Histogram("cubepack.bin.efficiency",
		metric.WithDescription("Volume efficiency of attempted bins"),
		metric.WithUnit("%")); err != nil {
		s.logger.Warn("failed to create histogram", "error", err)
	}
	return s
}

// Handler returns the routed handler with CORS, tracing, request logging
// and panic recovery applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("POST /optimize", s.handleOptimize)
	mux.HandleFunc("POST /compare", s.handleCompare)
	mux.HandleFunc("GET /containers", s.handleContainers)
	mux.HandleFunc("GET /history", s.handleListHistory)
	mux.HandleFunc("GET /history/{id}", s.handleGetHistory)

	var h http.Handler = mux
	h = s.recoverPanics(h)
	h = s.logRequests(h)
	h = s.trace(h)
	h = cors(s.cfg.CORSOrigins, h)
	return h
}
