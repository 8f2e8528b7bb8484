package bpe

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaID identifies the persisted model document.
const SchemaID = "https://github.com/randalmurphal/bpekit/schemas/bpe-model.json"

// Schema returns the JSON Schema of the document written by WriteTo.
// Keys are merge ids of at least NumBytes; values are [left, right] pairs.
func Schema() *jsonschema.Schema {
	two := uint64(2)
	id := &jsonschema.Schema{
		Type:    "integer",
		Minimum: json.Number("0"),
	}
	pair := &jsonschema.Schema{
		Type:        "array",
		Items:       id,
		MinItems:    &two,
		MaxItems:    &two,
		Description: "The [left, right] token ids merged into the key id.",
	}
	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		ID:          jsonschema.ID(SchemaID),
		Title:       "BPE merge table",
		Description: "Merge rules keyed by the decimal id they produce. Ids start at 256 and are contiguous.",
		Type:        "object",
		PatternProperties: map[string]*jsonschema.Schema{
			// 256 and above, no leading zeros.
			`^(25[6-9]|2[6-9][0-9]|[3-9][0-9]{2}|[1-9][0-9]{3,})$`: pair,
		},
		AdditionalProperties: jsonschema.FalseSchema,
	}
}
