// Package record describes the two historical index formats the pipeline
// extracts: INDEX I (person-transaction registers) and INDEX II
// (property-transaction registers). A Kind bundles everything that differs
// between the two formats - prompt text, entry table shape, and the JSON
// field names the model is asked to emit - so the rest of the pipeline is a
// single code path parameterized by Kind.
package record

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind is a document-kind descriptor. EntryFields holds the JSON keys of an
// entry object in model output order; EntryColumns holds the matching entry
// table columns at the same positions. Field lookup is exact and
// case-sensitive: INDEX II uses the literal key "Pargana/Town/Thana".
type Kind struct {
	Name         string
	Prompt       string
	EntryTable   string
	EntryColumns []string
	EntryFields  []string

	schema *jsonschema.Schema
}

// String returns the wire name ("INDEX_1" or "INDEX_2").
func (k Kind) String() string { return k.Name }

// Index1 describes the person-transaction index (INDEX I).
var Index1 = Kind{
	Name:       "INDEX_1",
	Prompt:     index1Prompt,
	EntryTable: "index1_entries",
	EntryColumns: []string{
		"serial_number",
		"name_of_person",
		"family_details",
		"police_station",
		"religion",
		"occupation",
		"interest_of_person",
		"where_registered",
		"book_1_volume",
		"book_2_page",
	},
	EntryFields: []string{
		"serial_number",
		"name_of_person",
		"family_details",
		"police_station",
		"religion",
		"occupation",
		"interest_of_person",
		"where_registered",
		"book_1_volume",
		"book_2_page",
	},
	schema: jsonschema.MustCompileString("index1.json", index1Schema),
}

// Index2 describes the property-transaction index (INDEX II).
var Index2 = Kind{
	Name:       "INDEX_2",
	Prompt:     index2Prompt,
	EntryTable: "index2_entries",
	EntryColumns: []string{
		"serial_number",
		"property_name",
		"pargana_town_thana",
		"location",
		"nature_of_transaction",
		"where_registered",
		"book_1_volume",
		"book_1_page",
	},
	EntryFields: []string{
		"serial_number",
		"property_name",
		"Pargana/Town/Thana",
		"location",
		"nature_of_transaction",
		"where_registered",
		"book_1_volume",
		"book_1_page",
	},
	schema: jsonschema.MustCompileString("index2.json", index2Schema),
}

// FromName resolves a kind by its wire name.
func FromName(name string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case Index1.Name:
		return Index1, nil
	case Index2.Name:
		return Index2, nil
	default:
		return Kind{}, fmt.Errorf("unknown document kind %q (want %s or %s)", name, Index1.Name, Index2.Name)
	}
}

// ValidatePayload checks an extracted payload against the kind's schema.
// Validation is advisory: callers log mismatches but persist the payload
// anyway, since the registers themselves are free text.
func (k Kind) ValidatePayload(payload any) error {
	if k.schema == nil {
		return nil
	}
	if err := k.schema.Validate(payload); err != nil {
		return fmt.Errorf("payload does not match %s schema: %w", k.Name, err)
	}
	return nil
}

const index1Schema = `{
  "type": "object",
  "required": ["document_type", "entries"],
  "properties": {
    "document_type": {"type": "string"},
    "year": {"type": ["string", "null"]},
    "office_location": {"type": ["string", "null"]},
    "confidence": {"enum": ["high", "medium", "low"]},
    "extraction_notes": {"type": ["string", "null"]},
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "serial_number": {"type": ["string", "null"]},
          "name_of_person": {"type": ["string", "null"]},
          "family_details": {"type": ["string", "null"]},
          "police_station": {"type": ["string", "null"]},
          "religion": {"type": ["string", "null"]},
          "occupation": {"type": ["string", "null"]},
          "interest_of_person": {"type": ["string", "null"]},
          "where_registered": {"type": ["string", "null"]},
          "book_1_volume": {"type": ["string", "null"]},
          "book_2_page": {"type": ["string", "null"]}
        }
      }
    }
  }
}`

const index2Schema = `{
  "type": "object",
  "required": ["document_type", "entries"],
  "properties": {
    "document_type": {"type": "string"},
    "year": {"type": ["string", "null"]},
    "office_location": {"type": ["string", "null"]},
    "confidence": {"enum": ["high", "medium", "low"]},
    "extraction_notes": {"type": ["string", "null"]},
    "entries": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "serial_number": {"type": ["string", "null"]},
          "property_name": {"type": ["string", "null"]},
          "Pargana/Town/Thana": {"type": ["string", "null"]},
          "location": {"type": ["string", "null"]},
          "nature_of_transaction": {"type": ["string", "null"]},
          "where_registered": {"type": ["string", "null"]},
          "book_1_volume": {"type": ["string", "null"]},
          "book_1_page": {"type": ["string", "null"]}
        }
      }
    }
  }
}`
