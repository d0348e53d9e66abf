package inference

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed generation so the caller can pick a
// user-facing message without inspecting backend-specific payloads
type ErrorKind int

const (
	KindOther ErrorKind = iota
	KindAuth            // missing or rejected credential
	KindNotFound        // unknown model or endpoint
	KindUnavailable     // backend still loading after the retry
)

// String returns a short stable label, also used as the history status
func (k ErrorKind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "other"
	}
}

// Error is a classified generation failure
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("inference: %s: %s", e.Kind, e.Message)
}

// KindOf extracts the classification from an error returned by a
// Client, defaulting to KindOther for anything unclassified
func KindOf(err error) ErrorKind {
	var infErr *Error
	if errors.As(err, &infErr) {
		return infErr.Kind
	}
	return KindOther
}

// Request carries everything needed for one generation call.
// It is constructed fresh per call and never stored.
type Request struct {
	Prompt string
	Model  string
	Width  int
	Height int
}

// Result is a successfully generated image
type Result struct {
	Image    []byte
	MimeType string
}

// Client generates one image per call. Implementations classify every
// backend failure into *Error and never mutate caller state.
type Client interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
