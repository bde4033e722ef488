// Package errors provides error handling for winrtgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := locate(); err != nil {
//	    return errors.Wrap(err, "failed to locate package")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrMissingDependency) {
//	    // handle missing package
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Sentinel errors for the generation pipeline.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrMissingDependency indicates no installed package matches a declared dependency
	ErrMissingDependency = New("missing dependency")

	// ErrAmbiguousDependency indicates multiple installed versions match a declared dependency
	ErrAmbiguousDependency = New("ambiguous dependency")

	// ErrUnknownNamespace indicates a selected namespace does not exist in the metadata universe
	ErrUnknownNamespace = New("unknown namespace")

	// ErrUnknownType indicates a selected type does not exist in its namespace
	ErrUnknownType = New("unknown type")

	// ErrRenameUnsupported indicates the declaration used rename ("as") syntax
	ErrRenameUnsupported = New("renaming is not supported")

	// ErrOutputDirUnset indicates the output directory was neither configured nor in the environment
	ErrOutputDirUnset = New("output directory not set")
)

// IsInputError reports whether err stems from a malformed or unresolvable
// user declaration. Input errors carry syntax-anchored diagnostics and are
// never retried.
func IsInputError(err error) bool {
	return err != nil && IsAny(err,
		ErrUnknownNamespace, ErrUnknownType, ErrRenameUnsupported)
}

// IsEnvironmentError reports whether err stems from the local installation
// or build environment. Fatal for the current run; retry cannot fix a
// missing or ambiguous installation.
func IsEnvironmentError(err error) bool {
	return err != nil && IsAny(err,
		ErrMissingDependency, ErrAmbiguousDependency, ErrOutputDirUnset)
}

// WrapMissingDependency wraps an error as a missing-dependency error with context
func WrapMissingDependency(err error, context string) error {
	return Wrap(Wrap(ErrMissingDependency, err.Error()), context)
}

// NewMissingDependency creates a missing-dependency error with a formatted message
func NewMissingDependency(format string, args ...interface{}) error {
	return Wrap(ErrMissingDependency, Newf(format, args...).Error())
}

// NewAmbiguousDependency creates an ambiguous-dependency error with a formatted message
func NewAmbiguousDependency(format string, args ...interface{}) error {
	return Wrap(ErrAmbiguousDependency, Newf(format, args...).Error())
}

// NewUnknownNamespace creates an unknown-namespace error with a formatted message
func NewUnknownNamespace(format string, args ...interface{}) error {
	return Wrap(ErrUnknownNamespace, Newf(format, args...).Error())
}
