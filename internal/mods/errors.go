package mods

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a mod failure.
type ErrorKind int

const (
	// KindModifier is a content layer that returned an error or panicked.
	KindModifier ErrorKind = iota
	// KindFileRead is a base mod that could not read or parse its file.
	KindFileRead
	// KindFileWrite is a base mod that could not serialize or write its file.
	KindFileWrite
	// KindUnsupportedPlatform is informational and never fails a chain.
	KindUnsupportedPlatform
	// KindChain is a chain that cannot run as registered.
	KindChain
)

// Sentinels matched by errors.Is against *Error values.
var (
	ErrModifier            = errors.New("modifier failed")
	ErrFileRead            = errors.New("file read failed")
	ErrFileWrite           = errors.New("file write failed")
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	ErrInvalidChain        = errors.New("invalid mod chain")

	ErrMultipleBaseMods     = errors.New("more than one base mod registered")
	ErrNextNotCalled        = errors.New("layer returned without calling next")
	ErrNextCalledTwice      = errors.New("layer called next more than once")
	ErrResultsShape         = errors.New("mod results have the wrong type for this file key")
	ErrNilRequest           = errors.New("layer returned a nil request")
	ErrConcurrentEvaluation = errors.New("config is already being evaluated")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindFileRead:
		return ErrFileRead
	case KindFileWrite:
		return ErrFileWrite
	case KindUnsupportedPlatform:
		return ErrUnsupportedPlatform
	case KindChain:
		return ErrInvalidChain
	default:
		return ErrModifier
	}
}

func (k ErrorKind) String() string {
	return k.sentinel().Error()
}

// Error is a failure tagged with the chain and layer it happened in. Layer
// is -1 when no single layer is responsible.
type Error struct {
	Kind      ErrorKind
	Platform  Platform
	FileKey   string
	Layer     int
	LayerName string
	Path      string
	Err       error

	tagged bool
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Platform))
	if e.FileKey != "" {
		b.WriteString(" mod ")
		b.WriteString(e.FileKey)
	}
	if e.Layer >= 0 && e.tagged {
		fmt.Fprintf(&b, " layer %d", e.Layer)
		if e.LayerName != "" {
			fmt.Fprintf(&b, " (%s)", e.LayerName)
		}
	}
	b.WriteString(": ")
	b.WriteString(e.Kind.String())
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// EvalError aggregates every failed chain of one evaluation.
type EvalError struct {
	Failures []*Error
}

func (e *EvalError) Error() string {
	if len(e.Failures) == 1 {
		return e.Failures[0].Error()
	}
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("%d mod chains failed: %s", len(e.Failures), strings.Join(msgs, "; "))
}

// Unwrap exposes each failure to errors.Is and errors.As.
func (e *EvalError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}
