// Package extract recovers structured payloads from free-form model output.
//
// Vision models rarely return bare JSON even when told to: the object comes
// wrapped in markdown fences, preceded by commentary, or trailed by a
// sign-off. ExtractJSON peels those wrappers off with three fallbacks tried
// in a fixed order. The order is load-bearing - tests pin it against real
// model transcripts.
package extract

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSON is returned when none of the fallback strategies find a
// parseable JSON object in the response text.
var ErrNoJSON = errors.New("could not extract valid JSON from response")

var fencedJSON = regexp.MustCompile("(?is)```(?:json)?\\s*(\\{.*?\\})\\s*```")

// ExtractJSON parses a single JSON object out of raw model output.
//
// Strategies, stopping at the first success:
//  1. Parse the whole trimmed text directly.
//  2. Parse the body of the first fenced code block (optionally tagged json).
//  3. Join the lines from the first line starting with "{" through the last
//     line ending with "}" and parse that span.
//
// Tier 3 is line-oriented on purpose: an object whose braces share lines
// with prose can still be missed, but prompts constrain output to one
// object so the simple scan holds up in practice.
func ExtractJSON(content string) (map[string]any, error) {
	trimmed := strings.TrimSpace(content)

	if obj, err := parseObject(trimmed); err == nil {
		return obj, nil
	}

	if m := fencedJSON.FindStringSubmatch(content); m != nil {
		if obj, err := parseObject(m[1]); err == nil {
			return obj, nil
		}
	}

	if span, ok := braceSpan(trimmed); ok {
		if obj, err := parseObject(span); err == nil {
			return obj, nil
		}
	}

	return nil, ErrNoJSON
}

func parseObject(s string) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, err
	}
	// A literal "null" decodes into a nil map without error; that is not
	// an object.
	if obj == nil {
		return nil, ErrNoJSON
	}
	return obj, nil
}

// braceSpan returns the inclusive line range from the first line whose
// trimmed form starts with "{" to the last line whose trimmed form ends
// with "}".
func braceSpan(content string) (string, bool) {
	lines := strings.Split(content, "\n")

	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "{") {
			start = i
			break
		}
	}

	end := -1
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.HasSuffix(strings.TrimSpace(lines[i]), "}") {
			end = i
			break
		}
	}

	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return strings.Join(lines[start:end+1], "\n"), true
}
