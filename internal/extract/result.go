package extract

import (
	"encoding/json"
	"time"
)

// Result is the outcome of processing one document image. Exactly one of
// two shapes is populated: a successful extraction carries Payload (plus
// DatabaseError if persistence failed afterwards), a failed one carries
// Error and, for parse failures, the raw model content for diagnostics.
//
// Persistence failure is deliberately separate from Error: a caller can
// tell "the model gave us nothing usable" apart from "we understood the
// document but could not store it", and only the former fails the file.
type Result struct {
	SourcePath  string
	ProcessedAt time.Time
	IndexType   string

	// Payload is the extracted JSON object, nil on failure.
	Payload map[string]any

	// RawContent holds the unparseable model output when ParsingError is set.
	RawContent   string
	ParsingError bool

	Error         string
	DatabaseError string
}

// Failed reports whether this result counts as a failure for batch
// accounting: an error is present or JSON extraction failed. A database
// error alone does not fail the file.
func (r *Result) Failed() bool {
	return r.Error != "" || r.ParsingError
}

// EntryCount returns the number of entries in the payload, zero when the
// payload is missing or its entries field is not an array.
func (r *Result) EntryCount() int {
	if r.Payload == nil {
		return 0
	}
	entries, ok := r.Payload["entries"].([]any)
	if !ok {
		return 0
	}
	return len(entries)
}

// MarshalJSON flattens the result into a single object: payload fields at
// the top level with the bookkeeping fields merged alongside them, matching
// the shape consumers of the batch summary file expect.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Payload)+6)
	for k, v := range r.Payload {
		out[k] = v
	}
	out["source_path"] = r.SourcePath
	out["processed_at"] = r.ProcessedAt.Format(time.RFC3339)
	out["index_type"] = r.IndexType
	if r.ParsingError {
		out["parsing_error"] = true
		out["raw_content"] = r.RawContent
	}
	if r.Error != "" {
		out["error"] = r.Error
	}
	if r.DatabaseError != "" {
		out["database_error"] = r.DatabaseError
	}
	return json.Marshal(out)
}
