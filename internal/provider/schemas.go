package provider

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas guarding provider responses. A response that fails its schema
// is treated exactly like a provider failure: the caller falls back and no
// partial data is applied.
const (
	bulletScoreListSchema = `{
		"type": "array",
		"items": {
			"type": "object",
			"properties": {
				"id": {"type": "string"},
				"score": {"type": "integer", "minimum": 0, "maximum": 100},
				"reason": {"type": "string"}
			},
			"required": ["id", "score"]
		}
	}`

	bulletScoreSchema = `{
		"type": "object",
		"properties": {
			"id": {"type": "string"},
			"score": {"type": "integer", "minimum": 0, "maximum": 100},
			"reason": {"type": "string"}
		},
		"required": ["id", "score"]
	}`

	keywordListSchema = `{
		"type": "array",
		"items": {"type": "string"}
	}`

	gapAnalysisSchema = `{
		"type": "object",
		"properties": {
			"missingSkills": {"type": "array", "items": {"type": "string"}},
			"presentSkills": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["missingSkills", "presentSkills"]
	}`

	parsedProfileSchema = `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"email": {"type": "string"},
			"phone": {"type": "string"},
			"location": {"type": "string"},
			"linkedin": {"type": "string"},
			"summary": {"type": "string"},
			"experiences": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"id": {"type": "string"},
						"company": {"type": "string"},
						"role": {"type": "string"},
						"startDate": {"type": "string"},
						"endDate": {"type": "string"},
						"location": {"type": "string"},
						"bullets": {
							"type": "array",
							"items": {
								"type": "object",
								"properties": {
									"id": {"type": "string"},
									"content": {"type": "string"}
								}
							}
						}
					}
				}
			}
		}
	}`
)

// validateAgainstSchema checks a raw JSON document against an inline schema.
func validateAgainstSchema(schema, document string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(document),
	)
	if err != nil {
		return fmt.Errorf("schema validation could not run: %w", err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("response does not match schema: %s", errs[0].String())
		}
		return fmt.Errorf("response does not match schema")
	}
	return nil
}
