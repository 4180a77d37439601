package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dsarkar/almirah/internal/extract"
)

// Summary aggregates one batch run: metadata, per-file results for each
// lane, and success/failure counts.
type Summary struct {
	BatchInfo     BatchInfo         `json:"batch_info"`
	Index1Results []*extract.Result `json:"index1_results"`
	Index2Results []*extract.Result `json:"index2_results"`
	Counts        Counts            `json:"summary"`
}

// BatchInfo identifies a run.
type BatchInfo struct {
	BatchID         string `json:"batch_id"`
	ProcessedAt     string `json:"processed_at"`
	TotalIndex1Docs int    `json:"total_index1_docs"`
	TotalIndex2Docs int    `json:"total_index2_docs"`
	TotalDocs       int    `json:"total_docs"`
}

// Counts holds per-lane success and failure totals.
type Counts struct {
	Index1Successful int `json:"index1_successful"`
	Index1Failed     int `json:"index1_failed"`
	Index2Successful int `json:"index2_successful"`
	Index2Failed     int `json:"index2_failed"`
}

// NewSummary returns an empty summary stamped with the batch id and the
// current time. Result slices are non-nil so an aborted batch still
// serializes with empty arrays rather than nulls.
func NewSummary(batchID string) *Summary {
	return &Summary{
		BatchInfo: BatchInfo{
			BatchID:     batchID,
			ProcessedAt: time.Now().Format(time.RFC3339),
		},
		Index1Results: []*extract.Result{},
		Index2Results: []*extract.Result{},
	}
}

// WriteFile writes the summary as indented JSON to
// <dir>/batch_results_<YYYYMMDD_HHMMSS>.json and returns the path.
func (s *Summary) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("batch_results_%s.json", time.Now().Format("20060102_150405")))
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal batch results: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write batch results: %w", err)
	}
	return path, nil
}
