package service

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"skillpath_backend/internal/skillgap"
)

// ValidationError lists every schema violation of a request body.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Details, "; ")
}

const maxYears = 100

func stringArray() map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string", "minLength": 1},
		"uniqueItems": true,
	}
}

func evaluateSchemaDoc() map[string]any {
	levels := make([]any, len(skillgap.ExperienceLevels))
	for i, l := range skillgap.ExperienceLevels {
		levels[i] = string(l)
	}
	nonBlank := map[string]any{"type": "string", "pattern": `\S`}

	return map[string]any{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []any{"skills", "experience", "targetJob"},
		"properties": map[string]any{
			"skills": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"technical":      stringArray(),
					"soft":           stringArray(),
					"certifications": stringArray(),
				},
				"additionalProperties": false,
			},
			"experience": map[string]any{
				"type":     "object",
				"required": []any{"years", "level"},
				"properties": map[string]any{
					"years": map[string]any{"type": "integer", "minimum": 0, "maximum": maxYears},
					"level": map[string]any{"enum": levels},
				},
			},
			"targetJob": map[string]any{
				"type":     "object",
				"required": []any{"title", "description"},
				"properties": map[string]any{
					"title":       nonBlank,
					"company":     map[string]any{"type": "string"},
					"description": nonBlank,
				},
			},
		},
	}
}

func profileSchemaDoc() map[string]any {
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"properties": map[string]any{
			"resume_data":       map[string]any{"type": []any{"object", "null"}},
			"target_jobs":       map[string]any{"type": []any{"array", "null"}},
			"learning_progress": map[string]any{"type": []any{"object", "null"}},
		},
	}
}

var (
	evaluateSchema = mustSchema(evaluateSchemaDoc())
	profileSchema  = mustSchema(profileSchemaDoc())
)

func mustSchema(doc map[string]any) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return s
}

func validateEvaluate(body []byte) error {
	return validateBody(evaluateSchema, body)
}

// validateBody reports every violation of schema as a *ValidationError.
func validateBody(schema *gojsonschema.Schema, body []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ValidationError{Details: []string{"body is not valid JSON"}}
	}
	if res.Valid() {
		return nil
	}
	details := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		details = append(details, e.String())
	}
	return &ValidationError{Details: details}
}
