package api

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// stepSchemaDef constrains the /quiz/next response to one of the two
// step variants. A body the backend never promised is rejected here
// instead of half-decoding into the domain types.
var stepSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"status"},
	"properties": map[string]any{
		"status": map[string]any{
			"enum": []any{"question", "complete"},
		},
	},
	"allOf": []any{
		map[string]any{
			"if": map[string]any{
				"properties": map[string]any{
					"status": map[string]any{"const": "question"},
				},
			},
			"then": map[string]any{
				"required": []any{"question"},
				"properties": map[string]any{
					"question": map[string]any{
						"type":     "object",
						"required": []any{"question_id", "prompt", "difficulty"},
						"properties": map[string]any{
							"question_id": map[string]any{"type": "string"},
							"prompt":      map[string]any{"type": "string"},
							"difficulty": map[string]any{
								"enum": []any{"easy", "medium", "hard"},
							},
							"options": map[string]any{
								"type": "array",
								"items": map[string]any{
									"type":     "object",
									"required": []any{"id", "text"},
								},
							},
						},
					},
				},
			},
		},
		map[string]any{
			"if": map[string]any{
				"properties": map[string]any{
					"status": map[string]any{"const": "complete"},
				},
			},
			"then": map[string]any{
				"required": []any{"totalQuestions", "correctCount", "incorrectCount", "accuracy"},
				"properties": map[string]any{
					"totalQuestions": map[string]any{"type": "integer"},
					"correctCount":   map[string]any{"type": "integer"},
					"incorrectCount": map[string]any{"type": "integer"},
					"accuracy":       map[string]any{"type": "number"},
				},
			},
		},
	},
}

var (
	stepSchemaOnce sync.Once
	stepSchema     *jsonschema.Schema
	stepSchemaErr  error
)

// validateStep validates a raw /quiz/next body against the step schema.
// Returns *ErrBadResponse on any failure.
func validateStep(raw json.RawMessage) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrBadResponse{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	compiled, err := compiledStepSchema()
	if err != nil {
		return &ErrBadResponse{Err: fmt.Errorf("compile step schema: %w", err)}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrBadResponse{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}

func compiledStepSchema() (*jsonschema.Schema, error) {
	stepSchemaOnce.Do(func() {
		// The compiler wants a parsed JSON value, so round-trip the
		// definition through encoding/json.
		defBytes, err := json.Marshal(stepSchemaDef)
		if err != nil {
			stepSchemaErr = err
			return
		}
		var defParsed any
		if err := json.Unmarshal(defBytes, &defParsed); err != nil {
			stepSchemaErr = err
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://quiz-step.json"
		if err := c.AddResource(url, defParsed); err != nil {
			stepSchemaErr = err
			return
		}
		stepSchema, stepSchemaErr = c.Compile(url)
	})
	return stepSchema, stepSchemaErr
}
