// In file: internal/tools/manager.go
package tools

import (
	"context"
	"fmt"
	"sort"
)

// ToolManager holds a registry of all available tools.
type ToolManager struct {
	tools map[string]ToolExecutor
}

func NewToolManager() *ToolManager {
	return &ToolManager{
		tools: make(map[string]ToolExecutor),
	}
}

// Register adds a new tool to the manager's registry.
func (tm *ToolManager) Register(tool ToolExecutor) {
	tm.tools[tool.Name()] = tool
}

// Names returns the sorted names of every registered tool.
func (tm *ToolManager) Names() []string {
	names := make([]string, 0, len(tm.tools))
	for name := range tm.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs a tool by name with the given arguments.
func (tm *ToolManager) Execute(ctx context.Context, name string, args map[string]string) (any, error) {
	tool, ok := tm.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool '%s' not found", name)
	}
	return tool.Execute(ctx, args)
}

// ToolCount returns the number of registered tools.
func (tm *ToolManager) ToolCount() int {
	return len(tm.tools)
}
