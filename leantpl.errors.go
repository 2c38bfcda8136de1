package leantpl

import (
	"errors"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - ALL error messages must be constants (NO MAGIC STRINGS)
const (
	// Engine errors
	ErrMsgTemplateNotFound = "template not found"
	ErrMsgNoLoader         = "no loader configured"
	ErrMsgRenderAborted    = "render aborted by hook"

	// Loader errors
	ErrMsgNilLoaderDriver         = "loader driver is nil"
	ErrMsgDriverAlreadyRegistered = "loader driver already registered"
	ErrMsgLoaderDriverNotFound    = "loader driver not found"
	ErrMsgLoaderClosed            = "loader is closed"
	ErrMsgInvalidLoaderRoot       = "loader root directory cannot be empty"
	ErrMsgInvalidTemplateName     = "invalid template name"
)

// Error code constants for categorization
const (
	ErrCodeRender = "LEANTPL_RENDER"
)

// NewTemplateNotFoundError creates the error for a missing top-level
// template, the engine's only hard render failure.
func NewTemplateNotFoundError(name string, cause error) error {
	err := cuserr.NewNotFoundError(MetaKeyTemplate, ErrMsgTemplateNotFound)
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgTemplateNotFound)
	}
	return err.WithMetadata(MetaKeyTemplate, name)
}

// NewNoLoaderError creates the error for name-based rendering on an
// engine built without a loader.
func NewNoLoaderError(name string) error {
	return cuserr.NewValidationError(ErrCodeRender, ErrMsgNoLoader).
		WithMetadata(MetaKeyTemplate, name)
}

// NewRenderAbortedError creates the error for a before-render hook veto.
func NewRenderAbortedError(name string, cause error) error {
	return cuserr.WrapStdError(cause, ErrCodeRender, ErrMsgRenderAborted).
		WithMetadata(MetaKeyTemplate, name)
}

// NewLoaderDriverNotFoundError creates an error for a missing loader driver.
func NewLoaderDriverNotFoundError(name string) error {
	return &LoaderError{
		Message: ErrMsgLoaderDriverNotFound,
		Name:    name,
	}
}

// NewLoaderClosedError creates an error for operations on a closed loader.
func NewLoaderClosedError() error {
	return &LoaderError{Message: ErrMsgLoaderClosed}
}

// NewLoaderTemplateNotFoundError creates the typed not-found error
// loaders return; the cache's negative entries track it and the
// interpreter's include resolution treats it as fail-open.
func NewLoaderTemplateNotFoundError(name string) error {
	return &LoaderError{
		Message:  ErrMsgTemplateNotFound,
		Name:     name,
		NotFound: true,
	}
}

// NewInvalidTemplateNameError creates an error for a name rejected by
// loader path validation.
func NewInvalidTemplateNameError(name string) error {
	return &LoaderError{
		Message: ErrMsgInvalidTemplateName,
		Name:    name,
	}
}

// LoaderError represents a loader-related error.
type LoaderError struct {
	Message  string
	Name     string
	NotFound bool
	Cause    error
}

// Error implements the error interface.
func (e *LoaderError) Error() string {
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *LoaderError) Unwrap() error {
	return e.Cause
}

// IsTemplateNotFound reports whether err is a loader not-found error.
func IsTemplateNotFound(err error) bool {
	var le *LoaderError
	return errors.As(err, &le) && le.NotFound
}
