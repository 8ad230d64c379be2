package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/cubepack/internal/model"
)

// ErrNotFound is returned by GetRun for an unknown run id.
var ErrNotFound = errors.New("run not found")

// Run is one recorded packing call.
type Run struct {
	RunID          string          `json:"run_id"`
	CreatedAt      int64           `json:"created_at"` // unix nanoseconds
	CandidateOrder string          `json:"candidate_order"`
	ItemOrder      string          `json:"item_order"`
	BinCount       int             `json:"bin_count"`
	ItemCount      int             `json:"item_count"`
	PackedCount    int             `json:"packed_count"`
	MeanEfficiency float64         `json:"mean_efficiency"`
	QuotePrice     float64         `json:"quote_price"`
	QuoteStatus    string          `json:"quote_status"`
	RequestJSON    json.RawMessage `json:"request,omitempty"`
	ResultJSON     json.RawMessage `json:"result,omitempty"`
}

// NewRun builds the audit row for a completed packing call.
func NewRun(req model.PackingRequest, settings model.PackSettings, result model.PackingResult, quote model.StorageQuote) (*Run, error) {
	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	resJSON, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	summary := model.Summarize(result)
	return &Run{
		CandidateOrder: string(settings.CandidateOrder),
		ItemOrder:      string(settings.ItemOrder),
		BinCount:       len(req.Bins),
		ItemCount:      len(req.Items),
		PackedCount:    summary.PackedCount,
		MeanEfficiency: summary.MeanEfficiency,
		QuotePrice:     quote.Price,
		QuoteStatus:    quote.Status,
		RequestJSON:    reqJSON,
		ResultJSON:     resJSON,
	}, nil
}

// RecordRun persists a run. If RunID is empty, a UUID is generated; if
// CreatedAt is zero, the current time is used.
func (db *DB) RecordRun(ctx context.Context, run *Run) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO pack_runs (
			run_id, created_at, candidate_order, item_order,
			bin_count, item_count, packed_count, mean_efficiency,
			quote_price, quote_status, request_json, result_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.CreatedAt, run.CandidateOrder, run.ItemOrder,
		run.BinCount, run.ItemCount, run.PackedCount, run.MeanEfficiency,
		run.QuotePrice, run.QuoteStatus, string(run.RequestJSON), string(run.ResultJSON),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first, without their
// request and result documents. A limit of zero or less returns all runs.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.QueryContext(ctx, `
		SELECT run_id, created_at, candidate_order, item_order,
		       bin_count, item_count, packed_count, mean_efficiency,
		       quote_price, quote_status
		FROM pack_runs
		ORDER BY created_at DESC, run_id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []*Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.CreatedAt, &r.CandidateOrder, &r.ItemOrder,
			&r.BinCount, &r.ItemCount, &r.PackedCount, &r.MeanEfficiency,
			&r.QuotePrice, &r.QuoteStatus,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, &r)
	}
	return runs, rows.Err()
}

// GetRun returns a single run by ID, including its documents.
func (db *DB) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := db.QueryRowContext(ctx, `
		SELECT run_id, created_at, candidate_order, item_order,
		       bin_count, item_count, packed_count, mean_efficiency,
		       quote_price, quote_status, request_json, result_json
		FROM pack_runs
		WHERE run_id = ?`, runID)

	var r Run
	var reqStr, resStr string
	err := row.Scan(
		&r.RunID, &r.CreatedAt, &r.CandidateOrder, &r.ItemOrder,
		&r.BinCount, &r.ItemCount, &r.PackedCount, &r.MeanEfficiency,
		&r.QuotePrice, &r.QuoteStatus, &reqStr, &resStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", runID, ErrNotFound)
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}
	r.RequestJSON = json.RawMessage(reqStr)
	r.ResultJSON = json.RawMessage(resStr)
	return &r, nil
}
