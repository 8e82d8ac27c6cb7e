package dirctx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// FileName is the name of the context file
	FileName = ".vrisa"
	// FileVersion is the current schema version
	FileVersion = "1"
)

// DirectoryContext remembers the station a working directory is about, so
// station-scoped commands can omit --station.
type DirectoryContext struct {
	Version     string    `json:"version"`
	StationID   int64     `json:"station_id"`
	StationName string    `json:"station_name,omitempty"`
	ServerURL   string    `json:"server_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Validate checks if the DirectoryContext is valid
func (dc *DirectoryContext) Validate() error {
	if dc.Version != FileVersion {
		return fmt.Errorf("unsupported .vrisa file version: %s (expected %s)", dc.Version, FileVersion)
	}

	if dc.StationID <= 0 {
		return fmt.Errorf("station_id must be a positive integer")
	}

	return nil
}

// Read reads the .vrisa file from the current directory.
// Returns nil, nil if the file doesn't exist.
// Returns nil, error if the file is corrupted or invalid.
func Read() (*DirectoryContext, error) {
	data, err := os.ReadFile(FileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read .vrisa file: %w", err)
	}

	var ctx DirectoryContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("corrupted .vrisa file (invalid JSON): %w", err)
	}

	if err := ctx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid .vrisa file: %w", err)
	}

	return &ctx, nil
}

// Write writes the directory context to the .vrisa file atomically.
// Uses temp file + rename pattern for atomic writes on POSIX systems.
func Write(ctx *DirectoryContext) error {
	if err := ctx.Validate(); err != nil {
		return fmt.Errorf("invalid context: %w", err)
	}

	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}
	data = append(data, '\n')

	tmpPath := FileName + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write .vrisa.tmp: %w", err)
	}

	if err := os.Rename(tmpPath, FileName); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename .vrisa.tmp to .vrisa: %w", err)
	}

	return nil
}

// Remove deletes the .vrisa file. A missing file is not an error.
func Remove() error {
	if err := os.Remove(FileName); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove .vrisa file: %w", err)
	}
	return nil
}

// ResolveStationID applies priority:
// 1. Explicit flag value (explicit > 0)
// 2. Station from the .vrisa file
// 3. Zero when neither is set and the station is optional, otherwise an error
func ResolveStationID(explicit int64, dc *DirectoryContext, required bool) (int64, error) {
	if explicit > 0 {
		return explicit, nil
	}
	if dc != nil && dc.StationID > 0 {
		return dc.StationID, nil
	}
	if required {
		return 0, fmt.Errorf("station required: pass --station or run `vrisactl station use <id>` in this directory")
	}
	return 0, nil
}

// Path returns the absolute path to the .vrisa file in the current directory.
func Path() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return filepath.Join(cwd, FileName), nil
}
