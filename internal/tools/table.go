// In file: internal/tools/table.go
package tools

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Table is the static tool configuration shared by both binaries: the
// gateway reads the allow-list and required-argument table, the tool
// server reads the TMDB genre map. Loaded once at startup, immutable
// afterwards.
type Table struct {
	// AllowList is the fixed set of tool names the orchestrator may invoke.
	AllowList []string `yaml:"allow_list"`
	// RequiredArgs maps tool names to the argument keys that must be
	// present and non-empty before invocation.
	RequiredArgs map[string][]string `yaml:"required_args"`
	// Genres maps lowercase French genre names to TMDB genre ids.
	Genres map[string]int `yaml:"genres"`
}

// LoadTable parses the tool table from its YAML file.
func LoadTable(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tool table %s: %w", path, err)
	}
	var table Table
	if err := yaml.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("failed to parse tool table %s: %w", path, err)
	}
	if len(table.AllowList) == 0 {
		return nil, fmt.Errorf("tool table %s declares no allowed tools", path)
	}
	return &table, nil
}
