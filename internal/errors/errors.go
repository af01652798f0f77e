// Package errors provides structured error types for the Repetitor application.
// These errors provide context about what operation failed and where.
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.function".
type Op string

// Kind categorizes the type of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindNetwork
	KindConfig
	KindRemote
	KindState
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalid:
		return "invalid"
	case KindIO:
		return "I/O error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindRemote:
		return "generation error"
	case KindState:
		return "state error"
	default:
		return "unknown error"
	}
}

// Error is the structured error type for Repetitor.
type Error struct {
	Op      Op     // Operation that failed
	Kind    Kind   // Category of error
	Err     error  // Underlying error
	Context string // Additional context
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// E creates a new Error. Arguments can be:
// - Op: the operation name
// - Kind: the error kind
// - string: context message
// - error: the underlying error
func E(args ...interface{}) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of an error.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Session errors
func SessionNotFound(id string) error {
	return E(Op("chat.Get"), KindNotFound, fmt.Sprintf("session %s not found", id))
}

// State persistence errors
func StateLoadFailed(key string, err error) error {
	return E(Op("blob.Get"), KindState, fmt.Sprintf("failed to load state %s", key), err)
}

func StateSaveFailed(key string, err error) error {
	return E(Op("blob.Set"), KindState, fmt.Sprintf("failed to save state %s", key), err)
}

// Generation errors
func GenerateFailed(model string, err error) error {
	return E(Op("gemini.Generate"), KindRemote, fmt.Sprintf("generation with %s failed", model), err)
}

// Attachment errors
func AttachmentUnsupported(mimeType string) error {
	return E(Op("attach.FromFile"), KindInvalid, fmt.Sprintf("unsupported attachment type %s", mimeType))
}
