package dirctx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	// FileName is the name of the context file
	FileName = ".daleel"
	// FileVersion is the current schema version
	FileVersion = "1"
)

// DirectoryContext is the default catalog scope for a directory.
type DirectoryContext struct {
	Version    string    `json:"version"`
	DomainID   string    `json:"domain_id"`
	CategoryID string    `json:"category_id,omitempty"`
	ServerURL  string    `json:"server_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks if the DirectoryContext is valid
func (dc *DirectoryContext) Validate() error {
	if dc.Version != FileVersion {
		return fmt.Errorf("unsupported .daleel file version: %s (expected %s)", dc.Version, FileVersion)
	}

	if dc.DomainID == "" {
		return fmt.Errorf("domain_id is required")
	}
	if _, err := uuid.Parse(dc.DomainID); err != nil {
		return fmt.Errorf("invalid domain_id format: %w", err)
	}

	if dc.CategoryID != "" {
		if _, err := uuid.Parse(dc.CategoryID); err != nil {
			return fmt.Errorf("invalid category_id format: %w", err)
		}
	}

	return nil
}

// Scope returns the context as a ScopeRef.
func (dc *DirectoryContext) Scope() ScopeRef {
	if dc == nil {
		return ScopeRef{}
	}
	return ScopeRef{DomainID: dc.DomainID, CategoryID: dc.CategoryID}
}

// Read reads the .daleel file from the current directory
// Returns nil, nil if the file doesn't exist
// Returns nil, error if the file is corrupted or invalid
func Read() (*DirectoryContext, error) {
	data, err := os.ReadFile(FileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read .daleel file: %w", err)
	}

	var ctx DirectoryContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("corrupted .daleel file (invalid JSON): %w", err)
	}

	if err := ctx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid .daleel file: %w", err)
	}

	return &ctx, nil
}

// Write writes the directory context to the .daleel file atomically
// using a temp file and rename.
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
		return fmt.Errorf("failed to write .daleel.tmp: %w", err)
	}

	if err := os.Rename(tmpPath, FileName); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename .daleel.tmp to .daleel: %w", err)
	}

	return nil
}

// Remove deletes the .daleel file. A missing file is not an error.
func Remove() error {
	if err := os.Remove(FileName); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove .daleel file: %w", err)
	}
	return nil
}

// Path returns the absolute path to the .daleel file in the current directory
func Path() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return filepath.Join(cwd, FileName), nil
}

// ScopeRef is a domain and optional category selection.
type ScopeRef struct {
	DomainID   string
	CategoryID string
}

// IsEmpty returns true if neither ID is set
func (s ScopeRef) IsEmpty() bool {
	return s.DomainID == "" && s.CategoryID == ""
}

// String returns a string representation for display
func (s ScopeRef) String() string {
	switch {
	case s.DomainID != "" && s.CategoryID != "":
		return s.DomainID + "/" + s.CategoryID
	case s.DomainID != "":
		return s.DomainID
	case s.CategoryID != "":
		return "*/" + s.CategoryID
	}
	return "<all>"
}

// ResolveScope picks the scope for a command. Explicit flags win field by
// field; the directory context fills whatever was not given. An explicit
// domain without a category drops the context's category, since that
// category belongs to a different domain.
func ResolveScope(explicit, context ScopeRef) ScopeRef {
	if explicit.DomainID != "" {
		return explicit
	}
	out := context
	if explicit.CategoryID != "" {
		out.CategoryID = explicit.CategoryID
	}
	return out
}
