package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/procflow/procflow/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrInvalidKind     = errors.New("invalid dataset kind")
	ErrInvalidSettings = errors.New("invalid settings")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateKind ensures a dataset kind is one of the two known values.
func validateKind(kind model.DatasetKind) error {
	if kind != model.KindPR && kind != model.KindPO {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	return nil
}
