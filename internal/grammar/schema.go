package grammar

import (
	"encoding/json"

	"github.com/edwloef/chomsky/internal/errors"
	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

const schemaID = "https://github.com/edwloef/chomsky/schemas/grammar/v1/schema.json"

// Schema returns the JSON schema of the grammar description format.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		// unknown fields are ignored by the decoder, so the schema tolerates them too
		AllowAdditionalProperties: true,
	}

	schema := reflector.Reflect(&Description{})
	schema.ID = schemaID
	schema.Title = "Grammar Description"
	schema.Description = "Terminal and nonterminal symbols, start word and rewrite rules of a semi-Thue system"

	return schema
}

// SchemaJSON returns the indented JSON encoding of Schema.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, errors.New(err)
	}

	return data, nil
}

// ValidateJSON checks data against the grammar description schema.
func ValidateJSON(data []byte) error {
	schemaBytes, err := json.Marshal(Schema())
	if err != nil {
		return errors.New(err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return errors.Errorf("failed to validate grammar description: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, len(result.Errors()))
	for i, validationErr := range result.Errors() {
		msgs[i] = validationErr.String()
	}

	return errors.New(&SchemaValidationError{Errors: msgs})
}
