package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/piwi3910/cubepack/internal/engine"
	"github.com/piwi3910/cubepack/internal/httputil"
	"github.com/piwi3910/cubepack/internal/model"
	"github.com/piwi3910/cubepack/internal/store"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

const defaultHistoryLimit = 50

// OptimizeResponse is the body returned by POST /optimize.
type OptimizeResponse struct {
	RunID         string             `json:"run_id,omitempty"`
	PackedBins    []model.PackedBin  `json:"packed_bins"`
	UnpackedItems []model.Item       `json:"unpacked_items"`
	TotalItems    int                `json:"total_items"`
	PackedCount   int                `json:"packed_count"`
	Settings      model.PackSettings `json:"settings"`
	Summary       model.Summary      `json:"summary"`
	Quote         model.StorageQuote `json:"quote"`
}

// CompareResponse is the body returned by POST /compare.
type CompareResponse struct {
	Results []engine.ComparisonResult `json:"results"`
	Best    int                       `json:"best"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]string{
		"status":  "ok",
		"message": "cubepack ready",
	})
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req model.PackingRequest
	if err := httputil.DecodeJSON(r, &req, s.cfg.MaxBodyBytes); err != nil {
		s.countRequest(r, "bad_request")
		httputil.BadRequest(w, err.Error())
		return
	}
	settings := req.EffectiveSettings(s.cfg.Defaults)

	ctx, span := s.tracer.Start(r.Context(), "pack")
	span.SetAttributes(
		attribute.Int("pack.bins", len(req.Bins)),
		attribute.Int("pack.items", len(req.Items)),
		attribute.String("pack.candidate_order", string(settings.CandidateOrder)),
		attribute.String("pack.item_order", string(settings.ItemOrder)),
	)
	packer := engine.New(settings)
	packer.Tracer = s.engineTracer
	result, err := packer.PackContext(ctx, req.Bins, req.Items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		s.writePackError(w, r, err)
		return
	}
	span.SetAttributes(attribute.Int("pack.packed", result.PackedCount()))
	span.End()

	quote := model.CalculateStorageQuote(result, s.cfg.Rates)
	resp := OptimizeResponse{
		PackedBins:    roundEfficiency(result.PackedBins),
		UnpackedItems: result.UnpackedItems,
		TotalItems:    result.TotalItems(),
		PackedCount:   result.PackedCount(),
		Settings:      settings,
		Summary:       model.Summarize(result),
		Quote:         quote,
	}

	if s.binFill != nil {
		for _, b := range result.PackedBins {
			s.binFill.Record(ctx, b.Efficiency)
		}
	}

	if s.runs != nil {
		run, err := store.NewRun(req, settings, result, quote)
		if err == nil {
			err = s.runs.RecordRun(ctx, run)
		}
		if err != nil {
			s.logger.Warn("failed to record run", "error", err)
		} else {
			resp.RunID = run.RunID
		}
	}

	s.countRequest(r, "ok")
	httputil.WriteJSONOK(w, resp)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req model.PackingRequest
	if err := httputil.DecodeJSON(r, &req, s.cfg.MaxBodyBytes); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	scenarios := engine.BuildDefaultScenarios(req.EffectiveSettings(s.cfg.Defaults))
	results, err := engine.CompareScenarios(scenarios, req.Bins, req.Items)
	if err != nil {
		s.writePackError(w, r, err)
		return
	}
	for i := range results {
		results[i].Result.PackedBins = roundEfficiency(results[i].Result.PackedBins)
	}
	httputil.WriteJSONOK(w, CompareResponse{Results: results, Best: engine.Best(results)})
}

func (s *Server) handleContainers(w http.ResponseWriter, r *http.Request) {
	containers := s.cfg.Catalog.Containers
	if containers == nil {
		containers = []model.ContainerPreset{}
	}
	httputil.WriteJSONOK(w, map[string]interface{}{"containers": containers})
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		httputil.NotFound(w, "history is not enabled")
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httputil.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := s.runs.ListRuns(r.Context(), limit)
	if err != nil {
		s.logger.Error("failed to list runs", "error", err)
		httputil.InternalServerError(w, "failed to list runs")
		return
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	httputil.WriteJSONOK(w, map[string]interface{}{"runs": runs})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		httputil.NotFound(w, "history is not enabled")
		return
	}

	run, err := s.runs.GetRun(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		httputil.NotFound(w, "run not found")
		return
	}
	if err != nil {
		s.logger.Error("failed to load run", "error", err)
		httputil.InternalServerError(w, "failed to load run")
		return
	}
	httputil.WriteJSONOK(w, run)
}

// writePackError maps input errors to 400 and everything else to a
// generic 500.
func (s *Server) writePackError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *model.ValidationError
	if errors.As(err, &verr) || errors.Is(err, model.ErrInvalidSettings) {
		s.countRequest(r, "invalid")
		httputil.BadRequest(w, err.Error())
		return
	}
	s.countRequest(r, "error")
	s.logger.Error("packing failed", "error", err)
	httputil.InternalServerError(w, "packing failed")
}

func (s *Server) countRequest(r *http.Request, outcome string) {
	if s.packRequests == nil {
		return
	}
	s.packRequests.Add(r.Context(), 1, metric.WithAttributes(
		attribute.String("route", r.URL.Path),
		attribute.String("outcome", outcome),
	))
}

// roundEfficiency returns a copy of bins with efficiency rounded to two
// decimal places.
func roundEfficiency(bins []model.PackedBin) []model.PackedBin {
	out := make([]model.PackedBin, len(bins))
	for i, b := range bins {
		b.Efficiency = math.Round(b.Efficiency*100) / 100
		out[i] = b
	}
	return out
}
