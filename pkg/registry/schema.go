// pkg/registry/schema.go
package registry

// IntentRegistry is the catalog of canonical intents the fleet can serve.
type IntentRegistry struct {
	Version     string             `json:"version"`
	LastUpdated string             `json:"lastUpdated"`
	Intents     []IntentDefinition `json:"intents"`
}

// IntentDefinition describes one canonical intent: its aliases, the JSON
// schema its parameters must satisfy, and whether a data worker backs it.
type IntentDefinition struct {
	ID              string                 `json:"id"`
	DisplayName     string                 `json:"displayName"`
	Description     string                 `json:"description"`
	Aliases         []string               `json:"aliases"`
	ParameterSchema map[string]interface{} `json:"parameterSchema"`
	Implemented     bool                   `json:"implemented"`
	Workflows       []string               `json:"workflows"`
	Tags            []string               `json:"tags"`
}
