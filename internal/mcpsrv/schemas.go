package mcpsrv

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func packStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "pack_status",
		Description: "Report whether a packsnap project has a built pack and how many files it contains",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project file passed to `build`/`watch` (the pack itself is `<path>.qgd`)",
				},
			},
			Required: []string{"path"},
		},
	}
}

func listChangedFilesTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_changed_files",
		Description: "List the project-relative paths a running `watch` session has recorded as changed since the last build",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project file (the change list is `<path>.qgc`)",
				},
			},
			Required: []string{"path"},
		},
	}
}

func triggerRebuildTool() mcp.Tool {
	return mcp.Tool{
		Name:        "trigger_rebuild",
		Description: "Synchronously rebuild a project's pack from its current files on disk",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project file to rebuild",
				},
			},
			Required: []string{"path"},
		},
	}
}
