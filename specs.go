package mcp

import (
	"embed"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

//go:embed specs/siteflow-api.yaml
var specFS embed.FS

const specFile = "specs/siteflow-api.yaml"

// loadAPISpec parses and validates the embedded Siteflow OpenAPI
// document, returning a compacted map suitable for a tool result
func loadAPISpec() (map[string]any, error) {
	raw, err := specFS.ReadFile(specFile)
	if err != nil {
		return nil, err
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, err
	}

	var full map[string]any
	if err := yaml.Unmarshal(raw, &full); err != nil {
		return nil, err
	}
	return compactOpenAPI(full), nil
}

func compactOpenAPI(doc map[string]any) map[string]any {
	compact := map[string]any{}
	if info, ok := doc["info"]; ok {
		compact["info"] = info
	}
	if paths, ok := doc["paths"]; ok {
		compact["paths"] = paths
	}
	if components, ok := doc["components"]; ok {
		compact["components"] = components
	}
	if tags, ok := doc["tags"]; ok {
		compact["tags"] = tags
	}
	return compact
}
