// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Registry indexes intent definitions by canonical id and by alias.
type Registry struct {
	catalog *IntentRegistry
	byID    map[string]*IntentDefinition
}

// Load reads and indexes the intent catalog from disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var catalog IntentRegistry
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse intent registry: %w", err)
	}

	byID := make(map[string]*IntentDefinition, len(catalog.Intents))
	for i := range catalog.Intents {
		def := &catalog.Intents[i]
		byID[strings.ToLower(def.ID)] = def
		for _, alias := range def.Aliases {
			byID[strings.ToLower(alias)] = def
		}
	}

	return &Registry{catalog: &catalog, byID: byID}, nil
}

// Lookup resolves an intent id or alias to its definition.
func (r *Registry) Lookup(id string) (*IntentDefinition, bool) {
	def, ok := r.byID[strings.ToLower(strings.TrimSpace(id))]
	return def, ok
}

// Version returns the catalog version string.
func (r *Registry) Version() string {
	return r.catalog.Version
}

// ValidateParams checks parameters against the intent's JSON schema.
// Intents without a schema accept any parameters.
func (r *Registry) ValidateParams(id string, params map[string]interface{}) ([]string, error) {
	def, ok := r.Lookup(id)
	if !ok || len(def.ParameterSchema) == 0 {
		return nil, nil
	}

	schemaLoader := gojsonschema.NewGoLoader(def.ParameterSchema)
	docLoader := gojsonschema.NewGoLoader(params)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("validate parameters for %s: %w", id, err)
	}
	if result.Valid() {
		return nil, nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		issues = append(issues, desc.String())
	}
	return issues, nil
}
