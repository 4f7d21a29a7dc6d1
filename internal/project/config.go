package project

import (
	"encoding/json"
	"fmt"
	"os"
)

// Error codes for configuration failures, extracted with Code.
const (
	ErrCodeNotFound = "config_not_found"
	ErrCodeInvalid  = "config_invalid"
)

// DefaultExtensions is used when a project has no `.packsnap.json` or its
// extensions list is empty: everything is accepted.
var DefaultExtensions []string

// DefaultExcludeDirs is used when a project has no `.packsnap.json` or its
// exclude_dirs list is empty.
var DefaultExcludeDirs = []string{".git", "node_modules"}

// FileConfig is the raw shape of a `.packsnap.json` project descriptor.
// A missing file is not an error: ParseProject falls back to a
// single-root group over the project's own directory with default
// filters.
type FileConfig struct {
	Roots       []string `json:"roots"`
	Extensions  []string `json:"extensions"`
	ExcludeDirs []string `json:"exclude_dirs"`
	Groups      []FileConfig `json:"groups"`
}

// Error is a structured configuration failure, carrying an error code a
// caller can branch on without string matching.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Path)
}

func (e *Error) Unwrap() error { return e.Err }

// loadFileConfig reads and parses configPath. A missing file returns
// (nil, nil): the caller applies defaults.
func loadFileConfig(configPath string) (*FileConfig, error) {
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &Error{Code: ErrCodeInvalid, Path: configPath, Err: err}
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &Error{Code: ErrCodeInvalid, Path: configPath, Err: err}
	}
	return &cfg, nil
}
