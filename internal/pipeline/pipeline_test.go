package pipeline

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsarkar/almirah/internal/inference"
	"github.com/dsarkar/almirah/internal/record"
	"github.com/dsarkar/almirah/internal/store"
)

func newTestProcessor(t *testing.T, handler http.HandlerFunc) (*Processor, string) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	dbPath := filepath.Join(t.TempDir(), "extraction.db")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	return New(Config{
		Client: inference.NewClient(inference.Config{EndpointURL: server.URL}),
		DBPath: dbPath,
		Logger: logger,
	}), dbPath
}

func scanFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.jpg")
	if err := os.WriteFile(path, []byte("scan"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func reply(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestProcessDocument(t *testing.T) {
	ctx := context.Background()

	t.Run("success persists document and entries", func(t *testing.T) {
		proc, dbPath := newTestProcessor(t, reply(
			`{"document_type":"INDEX_1","year":"1962","entries":[{"serial_number":"1","name_of_person":"Ram Nandi"},{"serial_number":"2","name_of_person":"Ses Ismail"}]}`))
		path := scanFile(t)

		res := proc.ProcessDocument(ctx, path, record.Index1)

		if res.Failed() {
			t.Fatalf("unexpected failure: %+v", res)
		}
		if res.EntryCount() != 2 {
			t.Errorf("EntryCount() = %d", res.EntryCount())
		}
		if res.SourcePath != path || res.IndexType != "INDEX_1" {
			t.Errorf("metadata = %s/%s", res.SourcePath, res.IndexType)
		}

		st, err := store.Open(dbPath)
		if err != nil {
			t.Fatal(err)
		}
		defer st.Close()
		docs, err := st.CountDocuments(ctx)
		if err != nil || docs != 1 {
			t.Errorf("documents = %d, err = %v", docs, err)
		}
	})

	t.Run("unreadable image fails before any network call", func(t *testing.T) {
		proc, _ := newTestProcessor(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("inference endpoint should not be called")
		})

		res := proc.ProcessDocument(ctx, filepath.Join(t.TempDir(), "missing.jpg"), record.Index1)

		if !res.Failed() {
			t.Fatal("expected failure")
		}
		if !strings.HasPrefix(res.Error, "Image encoding error:") {
			t.Errorf("error = %q", res.Error)
		}
	})

	t.Run("transport failure becomes a request error result", func(t *testing.T) {
		proc := New(Config{
			Client: inference.NewClient(inference.Config{
				EndpointURL: "http://127.0.0.1:1/v1/chat/completions",
			}),
			DBPath: filepath.Join(t.TempDir(), "x.db"),
			Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
		})

		res := proc.ProcessDocument(ctx, scanFile(t), record.Index2)

		if !res.Failed() {
			t.Fatal("expected failure")
		}
		if !strings.HasPrefix(res.Error, "Request error:") {
			t.Errorf("error = %q", res.Error)
		}
	})

	t.Run("empty choices", func(t *testing.T) {
		proc, _ := newTestProcessor(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		})

		res := proc.ProcessDocument(ctx, scanFile(t), record.Index1)

		if res.Error != "No response content found" {
			t.Errorf("error = %q", res.Error)
		}
	})

	t.Run("unparseable content sets parsing_error with raw content", func(t *testing.T) {
		proc, dbPath := newTestProcessor(t, reply("The page is illegible, no data extracted."))

		res := proc.ProcessDocument(ctx, scanFile(t), record.Index1)

		if !res.ParsingError {
			t.Fatal("expected parsing_error")
		}
		if res.RawContent != "The page is illegible, no data extracted." {
			t.Errorf("raw_content = %q", res.RawContent)
		}
		if res.Error != "Could not extract valid JSON from response" {
			t.Errorf("error = %q", res.Error)
		}

		// Nothing should be persisted for a parse failure.
		st, err := store.Open(dbPath)
		if err != nil {
			t.Fatal(err)
		}
		defer st.Close()
		docs, err := st.CountDocuments(ctx)
		if err != nil || docs != 0 {
			t.Errorf("documents = %d, err = %v", docs, err)
		}
	})

	t.Run("persistence failure keeps the payload", func(t *testing.T) {
		proc, _ := newTestProcessor(t, reply(`{"document_type":"INDEX_1","entries":[]}`))
		// Point the processor at a database path whose parent is a file.
		blocker := filepath.Join(t.TempDir(), "blocker")
		if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		proc.dbPath = filepath.Join(blocker, "x.db")

		res := proc.ProcessDocument(ctx, scanFile(t), record.Index1)

		if res.Failed() {
			t.Error("database failure must not fail the document")
		}
		if res.DatabaseError == "" {
			t.Error("expected database_error")
		}
		if res.Payload == nil {
			t.Error("payload should survive a persistence failure")
		}
	})
}
