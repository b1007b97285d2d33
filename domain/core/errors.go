package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrAnalysisNotFound = fmt.Errorf("%w: analysis", ErrNotFound)
	ErrColumnNotFound   = fmt.Errorf("%w: column", ErrNotFound)

	// Catalog errors
	ErrCatalogUnreadable = errors.New("rule catalog unreadable")
	ErrCatalogMalformed  = errors.New("rule catalog malformed")
	ErrRuleUnimplemented = errors.New("rule has no evaluation procedure")

	// Validation errors
	ErrInvalidWeights  = errors.New("category weights must sum to 1.0")
	ErrEmptyDataset    = errors.New("dataset has no columns")
	ErrRaggedColumns   = errors.New("columns have differing lengths")
	ErrDuplicateColumn = errors.New("duplicate column name")
)

// NewCatalogError wraps a catalog load failure
func NewCatalogError(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrCatalogUnreadable, path, err)
}

// IsNotFoundError checks whether err is any not-found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsCatalogError checks whether err is a catalog load or parse failure
func IsCatalogError(err error) bool {
	return errors.Is(err, ErrCatalogUnreadable) || errors.Is(err, ErrCatalogMalformed)
}
