package mods

import (
	"context"
	"fmt"
)

// Key names the native file a chain targets and fixes the type of its mod
// results. Define each key once and share it between every mod for that
// file.
type Key[T any] struct {
	Platform Platform
	Name     string
	// Default seeds the mod results when a chain starts, and when a base mod
	// finds no file on disk. Nil means the zero value of T.
	Default func() T
}

func (k Key[T]) seed() T {
	if k.Default == nil {
		var zero T
		return zero
	}
	return k.Default()
}

// Request is the context threaded through one chain execution. It is owned
// by the evaluator for the duration of the chain and must not be retained.
type Request[T any] struct {
	ProjectRoot string
	Platform    Platform
	FileKey     string
	// Config is the config being evaluated. Most mods only read it.
	Config *Config
	// Results is the file-specific value mods transform.
	Results T

	run *chainRun
}

// Next invokes the layer a mod wraps.
type Next[T any] func(ctx context.Context, req *Request[T]) (*Request[T], error)

// Mod is a layer that decides when to invoke the layer it wraps. It must
// call next exactly once.
type Mod[T any] func(ctx context.Context, req *Request[T], next Next[T]) (*Request[T], error)

// Transform is a content layer. It receives the request produced by every
// layer registered before it.
type Transform[T any] func(ctx context.Context, req *Request[T]) (*Request[T], error)

// request is the type-erased form of Request stored in the registry.
type request struct {
	ProjectRoot string
	Platform    Platform
	FileKey     string
	Config      *Config
	Results     any

	run *chainRun
}

type rawNext func(ctx context.Context, req *request) (*request, error)

type rawLayer func(ctx context.Context, req *request, next rawNext) (*request, error)

func typed[T any](r *request) (*Request[T], error) {
	var results T
	if r.Results != nil {
		v, ok := r.Results.(T)
		if !ok {
			return nil, fmt.Errorf("%w: have %T, want %T", ErrResultsShape, r.Results, results)
		}
		results = v
	}
	return &Request[T]{
		ProjectRoot: r.ProjectRoot,
		Platform:    r.Platform,
		FileKey:     r.FileKey,
		Config:      r.Config,
		Results:     results,
		run:         r.run,
	}, nil
}

func (r *Request[T]) erase() *request {
	return &request{
		ProjectRoot: r.ProjectRoot,
		Platform:    r.Platform,
		FileKey:     r.FileKey,
		Config:      r.Config,
		Results:     r.Results,
		run:         r.run,
	}
}

func (m Mod[T]) erase() rawLayer {
	return func(ctx context.Context, req *request, next rawNext) (*request, error) {
		in, err := typed[T](req)
		if err != nil {
			return nil, err
		}

		typedNext := func(ctx context.Context, r *Request[T]) (*Request[T], error) {
			if r == nil {
				return nil, ErrNilRequest
			}
			out, err := next(ctx, r.erase())
			if err != nil {
				return nil, err
			}
			return typed[T](out)
		}

		out, err := m(ctx, in, typedNext)
		if err != nil {
			return nil, err
		}
		if out == nil {
			return nil, ErrNilRequest
		}
		return out.erase(), nil
	}
}
