package compiler

import "errors"

var (
	// ErrUnrecognizedClass is reported when no family decoder produced
	// anything for the class name.
	ErrUnrecognizedClass = errors.New("unrecognized class name")
	// ErrUnresolvedBreakpoint is reported when breakpoint is neither known
	// name nor pixel width.
	ErrUnresolvedBreakpoint = errors.New("unresolved breakpoint")
	// ErrInvalidClassName is reported for names rejected by validation.
	ErrInvalidClassName = errors.New("invalid class name")
)
