package mcpsrv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/packsnap/packsnap/internal/cli"
	"github.com/packsnap/packsnap/internal/project"
)

// MCP error codes, matching the teacher's numbering convention for
// application-specific errors (reserved range below -32000).
const (
	ErrorCodeInvalidParams = -32602
	ErrorCodeInternalError = -32603
)

var errPathRequired = errors.New("path is required")

// ToolError is an MCP protocol error, matching the teacher's own
// application-error shape.
type ToolError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("mcp error %d: %s", e.Code, e.Message)
}

func newToolError(code int, message string, data interface{}) error {
	return &ToolError{Code: code, Message: message, Data: data}
}

func requirePath(request mcp.CallToolRequest) (string, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", newToolError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newToolError(ErrorCodeInvalidParams, errPathRequired.Error(), map[string]interface{}{
			"param": "path",
		})
	}
	return path, nil
}

// handlePackStatus implements the pack_status tool.
func (s *Server) handlePackStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requirePath(request)
	if err != nil {
		return nil, err
	}

	packPath := project.ReplaceExtension(path, ".qgd")
	info, statErr := os.Stat(packPath)
	if os.IsNotExist(statErr) {
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"built":     false,
			"pack_path": packPath,
			"message":   "project has not been built yet",
		})), nil
	}
	if statErr != nil {
		return nil, newToolError(ErrorCodeInternalError, "stating pack", map[string]interface{}{"error": statErr.Error()})
	}

	files, err := cli.PackFileList(path)
	if err != nil {
		return nil, newToolError(ErrorCodeInternalError, "reading pack file list", map[string]interface{}{"error": err.Error()})
	}

	response := map[string]interface{}{
		"built":           true,
		"pack_path":       packPath,
		"pack_size_bytes": info.Size(),
		"modified_at":     info.ModTime().UTC().Format("2006-01-02T15:04:05Z07:00"),
		"file_count":      len(files),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleListChangedFiles implements the list_changed_files tool.
func (s *Server) handleListChangedFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requirePath(request)
	if err != nil {
		return nil, err
	}

	sidecarPath := project.ReplaceExtension(path, ".qgc")
	data, readErr := os.ReadFile(sidecarPath)
	if os.IsNotExist(readErr) {
		return mcp.NewToolResultText(formatJSON(map[string]interface{}{
			"changed_files": []string{},
			"count":         0,
		})), nil
	}
	if readErr != nil {
		return nil, newToolError(ErrorCodeInternalError, "reading change list", map[string]interface{}{"error": readErr.Error()})
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		lines = nil
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"changed_files": lines,
		"count":         len(lines),
	})), nil
}

// handleTriggerRebuild implements the trigger_rebuild tool. It runs
// synchronously: the response is only sent once the rebuild completes.
func (s *Server) handleTriggerRebuild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := requirePath(request)
	if err != nil {
		return nil, err
	}

	if buildErr := cli.Build(path, s.sink); buildErr != nil {
		return nil, newToolError(ErrorCodeInternalError, "rebuild failed", map[string]interface{}{"error": buildErr.Error()})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"rebuilt": true,
		"path":    path,
	})), nil
}

func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}
