package mcpclient

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/gmailfilter/internal/gemini"
)

// Schema keys that are transport metadata, meaningless to the model
// backend and rejected by its declaration format.
var schemaMetadataKeys = []string{"additionalProperties", "$schema"}

// Declarations converts advertised tool descriptors into the function
// declarations the model backend expects: one Tool per descriptor, with
// the input schema sanitized of transport metadata. Pure transform.
func Declarations(tools []mcp.Tool) []gemini.Tool {
	decls := make([]gemini.Tool, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, gemini.Tool{
			FunctionDeclarations: []gemini.FunctionDeclaration{
				{
					Name:        tool.Name,
					Description: tool.Description,
					Parameters:  SanitizeSchema(schemaMap(tool)),
				},
			},
		})
	}
	return decls
}

// SanitizeSchema returns a copy of schema without the top-level
// transport-metadata keys. The input map is not modified.
func SanitizeSchema(schema map[string]any) map[string]any {
	if schema == nil {
		return nil
	}
	sanitized := make(map[string]any, len(schema))
	for k, v := range schema {
		sanitized[k] = v
	}
	for _, key := range schemaMetadataKeys {
		delete(sanitized, key)
	}
	return sanitized
}

// schemaMap flattens a descriptor's input schema into a generic JSON
// object. Descriptors with an unusable schema degrade to a bare object
// schema rather than failing the whole catalog.
func schemaMap(tool mcp.Tool) map[string]any {
	raw, err := json.Marshal(tool.InputSchema)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return map[string]any{"type": "object"}
	}
	return schema
}
