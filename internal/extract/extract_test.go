package extract

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	t.Run("direct parse", func(t *testing.T) {
		obj, err := ExtractJSON(`{"a":1}`)
		if err != nil {
			t.Fatalf("ExtractJSON() error = %v", err)
		}
		if obj["a"] != float64(1) {
			t.Errorf("a = %v", obj["a"])
		}
	})

	t.Run("direct parse with surrounding whitespace", func(t *testing.T) {
		obj, err := ExtractJSON("\n\n  {\"document_type\": \"INDEX_1\"}  \n")
		if err != nil {
			t.Fatalf("ExtractJSON() error = %v", err)
		}
		if obj["document_type"] != "INDEX_1" {
			t.Errorf("document_type = %v", obj["document_type"])
		}
	})

	t.Run("fenced code block tagged json", func(t *testing.T) {
		obj, err := ExtractJSON("Here you go:\n```json\n{\"a\":1}\n```\nThanks")
		if err != nil {
			t.Fatalf("ExtractJSON() error = %v", err)
		}
		if obj["a"] != float64(1) {
			t.Errorf("a = %v", obj["a"])
		}
	})

	t.Run("fenced code block without tag", func(t *testing.T) {
		obj, err := ExtractJSON("```\n{\"year\": \"1962\"}\n```")
		if err != nil {
			t.Fatalf("ExtractJSON() error = %v", err)
		}
		if obj["year"] != "1962" {
			t.Errorf("year = %v", obj["year"])
		}
	})

	t.Run("line scan through surrounding prose", func(t *testing.T) {
		content := "The extracted data is below.\n{\n  \"confidence\": \"high\",\n  \"entries\": []\n}\nLet me know if you need anything else."
		obj, err := ExtractJSON(content)
		if err != nil {
			t.Fatalf("ExtractJSON() error = %v", err)
		}
		if obj["confidence"] != "high" {
			t.Errorf("confidence = %v", obj["confidence"])
		}
	})

	t.Run("round trip equivalence", func(t *testing.T) {
		want := map[string]any{
			"document_type": "INDEX_2",
			"entries": []any{
				map[string]any{"Pargana/Town/Thana": "Ausgram"},
			},
		}
		wrappers := []string{
			`{"document_type":"INDEX_2","entries":[{"Pargana/Town/Thana":"Ausgram"}]}`,
			"```json\n{\"document_type\":\"INDEX_2\",\"entries\":[{\"Pargana/Town/Thana\":\"Ausgram\"}]}\n```",
			"Result:\n{\n\"document_type\":\"INDEX_2\",\"entries\":[{\"Pargana/Town/Thana\":\"Ausgram\"}]\n}",
		}
		for _, content := range wrappers {
			obj, err := ExtractJSON(content)
			if err != nil {
				t.Fatalf("ExtractJSON(%q) error = %v", content, err)
			}
			if !reflect.DeepEqual(obj, want) {
				t.Errorf("ExtractJSON(%q) = %#v, want %#v", content, obj, want)
			}
		}
	})

	t.Run("no braces reports failure", func(t *testing.T) {
		_, err := ExtractJSON("I could not read this document at all.")
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("error = %v, want ErrNoJSON", err)
		}
	})

	t.Run("empty input reports failure", func(t *testing.T) {
		_, err := ExtractJSON("")
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("error = %v, want ErrNoJSON", err)
		}
	})

	t.Run("top-level array is not an object", func(t *testing.T) {
		_, err := ExtractJSON(`[{"a":1}]`)
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("error = %v, want ErrNoJSON", err)
		}
	})

	t.Run("null literal is not an object", func(t *testing.T) {
		for _, content := range []string{"null", "```json\nnull\n```"} {
			obj, err := ExtractJSON(content)
			if !errors.Is(err, ErrNoJSON) {
				t.Errorf("ExtractJSON(%q) error = %v, want ErrNoJSON", content, err)
			}
			if obj != nil {
				t.Errorf("ExtractJSON(%q) = %v, want nil", content, obj)
			}
		}
	})

	t.Run("malformed object fails every tier", func(t *testing.T) {
		_, err := ExtractJSON("```json\n{\"a\": }\n```")
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("error = %v, want ErrNoJSON", err)
		}
	})
}

func TestBraceSpan(t *testing.T) {
	t.Run("selects inclusive line range", func(t *testing.T) {
		span, ok := braceSpan("prose\n{\n\"a\": 1\n}\ntrailer")
		if !ok {
			t.Fatal("expected a span")
		}
		if span != "{\n\"a\": 1\n}" {
			t.Errorf("span = %q", span)
		}
	})

	t.Run("no opener", func(t *testing.T) {
		if _, ok := braceSpan("nothing here}"); ok {
			// Closing brace exists but no line starts with "{".
			t.Error("expected no span")
		}
	})

	t.Run("closer before opener", func(t *testing.T) {
		if _, ok := braceSpan("}\nmiddle\n{"); ok {
			t.Error("expected no span")
		}
	})
}
