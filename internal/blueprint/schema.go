package blueprint

import "github.com/santhosh-tekuri/jsonschema/v5"

// canonicalSchema is the shape structuring output is asked for. Output that
// validates cleanly takes the fast path around the location ladder.
const canonicalSchema = `{
	"type": "object",
	"properties": {
		"sections": {
			"type": "array",
			"minItems": 5,
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"purpose": {"type": "string"}
				},
				"required": ["name"]
			}
		}
	},
	"required": ["sections"]
}`

var blueprintSchema = jsonschema.MustCompileString("blueprint.json", canonicalSchema)

// matchesCanonicalSchema reports whether decoded structuring output already
// conforms to the requested {"sections":[{name,purpose}]} shape.
func matchesCanonicalSchema(data any) bool {
	return blueprintSchema.Validate(data) == nil
}
