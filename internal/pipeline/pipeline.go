// Package pipeline runs the per-document unit of work: encode the image,
// call the vision model, extract the JSON payload, persist it. Every
// failure class is folded into the returned Result - nothing escapes the
// single-document boundary, so a batch always continues to the next file.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dsarkar/almirah/internal/extract"
	"github.com/dsarkar/almirah/internal/inference"
	"github.com/dsarkar/almirah/internal/record"
	"github.com/dsarkar/almirah/internal/store"
)

// Config configures a Processor.
type Config struct {
	Client *inference.Client
	DBPath string
	Logger *slog.Logger
	Debug  bool
}

// Processor extracts and persists one document at a time. It opens a fresh
// database handle per document and closes it immediately, so two parallel
// lanes sharing a Processor never share a connection.
type Processor struct {
	client *inference.Client
	dbPath string
	logger *slog.Logger
	debug  bool
}

// New creates a Processor.
func New(cfg Config) *Processor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		client: cfg.Client,
		dbPath: cfg.DBPath,
		logger: logger,
		debug:  cfg.Debug,
	}
}

// ProcessDocument runs the full unit of work for one image. The returned
// Result always carries source path, timestamp, and kind; on success it
// carries the payload too, with DatabaseError set if persistence failed
// after a good extraction.
func (p *Processor) ProcessDocument(ctx context.Context, imagePath string, kind record.Kind) *extract.Result {
	res := &extract.Result{
		SourcePath:  imagePath,
		ProcessedAt: time.Now(),
		IndexType:   kind.Name,
	}

	dataURI, err := inference.EncodeImageDataURI(imagePath)
	if err != nil {
		res.Error = "Image encoding error: " + err.Error()
		return res
	}

	content, err := p.client.Complete(ctx, kind.Prompt, dataURI)
	if err != nil {
		if errors.Is(err, inference.ErrEmptyResponse) {
			res.Error = "No response content found"
		} else {
			res.Error = "Request error: " + err.Error()
		}
		return res
	}

	if p.debug {
		p.logger.Debug("raw model content", "file", imagePath, "prefix", prefix(content, 200))
	}

	payload, err := extract.ExtractJSON(content)
	if err != nil {
		res.ParsingError = true
		res.RawContent = content
		res.Error = "Could not extract valid JSON from response"
		return res
	}
	res.Payload = payload

	// Advisory only: the registers are free text, so a schema mismatch is
	// logged and noted but never blocks persistence.
	if err := kind.ValidatePayload(payload); err != nil {
		p.logger.Warn("payload failed schema check", "file", imagePath, "kind", kind.Name, "err", err)
	}

	st, err := store.Open(p.dbPath)
	if err != nil {
		res.DatabaseError = err.Error()
		return res
	}
	defer st.Close()

	docID, entries, err := st.SaveExtraction(ctx, kind, payload, imagePath)
	if err != nil {
		res.DatabaseError = err.Error()
		return res
	}

	p.logger.Info("saved extraction",
		"file", imagePath, "kind", kind.Name, "document_id", docID, "entries", entries)
	return res
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
