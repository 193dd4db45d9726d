package ir

import (
	"errors"
	"fmt"
)

// BuilderError represents a construction error detected by an
// OperationBuilder or a collaborating factory.
//
// Builder errors are programming-error conditions, not transient faults:
// no retry policy applies. Every cursor-misuse condition is returned to
// the caller explicitly, never defaulted or silently ignored, and a
// failed mutating call leaves the builder state exactly as it was.
type BuilderError struct {
	// Code identifies the error category.
	Code BuilderErrorCode

	// Message is a human-readable description.
	Message string

	// Intrinsic names the opcode of the builder that reported the error.
	Intrinsic string
}

// BuilderErrorCode categorizes builder errors.
type BuilderErrorCode string

const (
	// ErrCodeNoActiveRegion indicates a region-scoped call was made
	// before any region was pushed.
	ErrCodeNoActiveRegion BuilderErrorCode = "NO_ACTIVE_REGION"

	// ErrCodeNoActiveBlock indicates a block-scoped call was made while
	// the block half of the cursor does not address a block in the
	// active region.
	ErrCodeNoActiveBlock BuilderErrorCode = "NO_ACTIVE_BLOCK"

	// ErrCodeBuilderCreation is reserved for collaborating factories
	// whose builder construction can fail. The builder itself never
	// raises it: New never fails.
	ErrCodeBuilderCreation BuilderErrorCode = "BUILDER_CREATION_FAILURE"

	// ErrCodeCaseless is reserved for collaborators hitting an
	// unhandled case during exhaustive dispatch over intrinsics or
	// attributes. The builder itself never raises it.
	ErrCodeCaseless BuilderErrorCode = "CASELESS"
)

// Error implements the error interface.
func (e *BuilderError) Error() string {
	if e.Intrinsic != "" {
		return fmt.Sprintf("%s: %s (intrinsic=%s)", e.Code, e.Message, e.Intrinsic)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsNoActiveRegion reports whether err is a NO_ACTIVE_REGION builder
// error. Uses errors.As to handle wrapped errors.
func IsNoActiveRegion(err error) bool {
	var be *BuilderError
	if errors.As(err, &be) {
		return be.Code == ErrCodeNoActiveRegion
	}
	return false
}

// IsNoActiveBlock reports whether err is a NO_ACTIVE_BLOCK builder
// error. Uses errors.As to handle wrapped errors.
func IsNoActiveBlock(err error) bool {
	var be *BuilderError
	if errors.As(err, &be) {
		return be.Code == ErrCodeNoActiveBlock
	}
	return false
}

func newNoActiveRegion(intrinsic string) *BuilderError {
	return &BuilderError{
		Code:      ErrCodeNoActiveRegion,
		Message:   "no region has been pushed",
		Intrinsic: intrinsic,
	}
}

func newNoActiveBlock(intrinsic string) *BuilderError {
	return &BuilderError{
		Code:      ErrCodeNoActiveBlock,
		Message:   "cursor does not address a block in the active region",
		Intrinsic: intrinsic,
	}
}

// NewCaselessError creates a CASELESS builder error for collaborators
// that dispatch exhaustively over intrinsic or attribute kinds.
func NewCaselessError(message string) *BuilderError {
	return &BuilderError{Code: ErrCodeCaseless, Message: message}
}

// NewBuilderCreationError creates a BUILDER_CREATION_FAILURE error for
// collaborating factories whose construction can fail.
func NewBuilderCreationError(message string) *BuilderError {
	return &BuilderError{Code: ErrCodeBuilderCreation, Message: message}
}
