package project

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/piwi3910/cubepack/internal/model"
)

// ResultFile is the on-disk form of a packing result together with the
// policy that produced it.
type ResultFile struct {
	Version   string              `json:"version"`
	CreatedAt string              `json:"created_at"`
	Settings  model.PackSettings  `json:"settings"`
	Result    model.PackingResult `json:"result"`
	Summary   model.Summary       `json:"summary"`
	Quote     model.StorageQuote  `json:"quote"`
}

const resultFileVersion = "1.0.0"

// SaveRequest writes a packing request as JSON.
func SaveRequest(path string, req model.PackingRequest) error {
	if err := writeJSON(path, req); err != nil {
		return fmt.Errorf("failed to save request: %w", err)
	}
	return nil
}

// LoadRequest reads a packing request from a JSON file. Bins and Items are
// never nil on success.
func LoadRequest(path string) (model.PackingRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PackingRequest{}, fmt.Errorf("failed to read request file: %w", err)
	}
	var req model.PackingRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return model.PackingRequest{}, fmt.Errorf("failed to parse request file: %w", err)
	}
	if req.Bins == nil {
		req.Bins = []model.Bin{}
	}
	if req.Items == nil {
		req.Items = []model.Item{}
	}
	return req, nil
}

// SaveResult writes a packing result with its summary and quote.
func SaveResult(path string, settings model.PackSettings, result model.PackingResult, quote model.StorageQuote) error {
	file := ResultFile{
		Version:   resultFileVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Settings:  settings,
		Result:    result,
		Summary:   model.Summarize(result),
		Quote:     quote,
	}
	if err := writeJSON(path, file); err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// LoadResult reads a file written by SaveResult.
func LoadResult(path string) (ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ResultFile{}, fmt.Errorf("failed to read result file: %w", err)
	}
	var file ResultFile
	if err := json.Unmarshal(data, &file); err != nil {
		return ResultFile{}, fmt.Errorf("failed to parse result file: %w", err)
	}
	if file.Version == "" {
		return ResultFile{}, fmt.Errorf("invalid result file: missing version field")
	}
	if file.Result.PackedBins == nil {
		file.Result.PackedBins = []model.PackedBin{}
	}
	if file.Result.UnpackedItems == nil {
		file.Result.UnpackedItems = []model.Item{}
	}
	return file, nil
}
