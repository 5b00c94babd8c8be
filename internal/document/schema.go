package document

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// sharedSchemaJSON constrains only the fields this tool owns; everything
// else in the document is deliberately unconstrained.
const sharedSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "taskConfig": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": { "type": "string" },
          "label": { "type": "string" }
        }
      }
    },
    "completion": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "additionalProperties": {
          "type": "array",
          "items": { "type": "boolean" }
        }
      }
    }
  }
}`

var sharedSchemaLoader = gojsonschema.NewStringLoader(sharedSchemaJSON)

// Validate shape-checks a raw document body before decoding. A body that
// parses as JSON but carries the wrong shapes under the owned fields is
// rejected with a message listing the violations.
func Validate(body []byte) error {
	result, err := gojsonschema.Validate(sharedSchemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("document is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("document shape invalid: %s", strings.Join(msgs, "; "))
}

// Decode validates and unmarshals a raw document body, defaulting the owned
// fields to empty when absent.
func Decode(body []byte) (*Shared, error) {
	if err := Validate(body); err != nil {
		return nil, err
	}
	var s Shared
	if err := s.UnmarshalJSON(body); err != nil {
		return nil, err
	}
	if s.TaskConfig == nil {
		s.TaskConfig = []Task{}
	}
	if s.Completion == nil {
		s.Completion = Completion{}
	}
	return &s, nil
}
