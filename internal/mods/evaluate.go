package mods

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Evaluator runs registered mod chains.
type Evaluator struct {
	logger *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithLogger sets the logger for chain diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEvaluator creates an Evaluator. Without WithLogger it logs nothing.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate runs an Evaluator with default options.
func Evaluate(ctx context.Context, cfg *Config, platforms []Platform) (*Evaluation, error) {
	return NewEvaluator().Evaluate(ctx, cfg, platforms)
}

// Evaluate runs, for each requested platform in order, every chain
// registered for it in registration order. Chains run one at a time and each
// gets its own request, so file keys never observe each other's results.
//
// A failed chain does not stop the others. When any chain fails the returned
// error is an *EvalError listing every failure; the Evaluation is returned
// either way. ctx is checked before each chain starts; a running chain is
// never interrupted.
func (e *Evaluator) Evaluate(ctx context.Context, cfg *Config, platforms []Platform) (*Evaluation, error) {
	if cfg == nil {
		return nil, errors.New("evaluating mods: nil config")
	}
	if !cfg.evaluating.CompareAndSwap(false, true) {
		return nil, fmt.Errorf("evaluating mods for %s: %w", cfg.ProjectRoot, ErrConcurrentEvaluation)
	}
	defer cfg.evaluating.Store(false)

	ev := &Evaluation{Config: cfg, Executed: make(map[Platform][]string)}

	for _, reg := range cfg.registry.ignored {
		e.logger.Warn("ignored mod for unsupported platform",
			"platform", reg.Platform, "file_key", reg.FileKey, "mod", reg.Name)
		ev.Warnings = append(ev.Warnings, &Error{
			Kind: KindUnsupportedPlatform, Platform: reg.Platform, FileKey: reg.FileKey,
			Layer: -1, LayerName: reg.Name, tagged: true,
		})
	}

	var failures []*Error
	seen := make(map[Platform]bool)

	for _, p := range platforms {
		if seen[p] {
			continue
		}
		seen[p] = true

		if !p.Supported() {
			e.logger.Info("skipping unsupported platform", "platform", p)
			ev.Unsupported = append(ev.Unsupported, p)
			ev.Warnings = append(ev.Warnings, &Error{Kind: KindUnsupportedPlatform, Platform: p, Layer: -1, tagged: true})
			continue
		}

		keys := cfg.registry.keys[p]
		if len(keys) == 0 {
			e.logger.Debug("no mods registered", "platform", p)
			ev.Skipped = append(ev.Skipped, p)
			continue
		}

		for _, key := range keys {
			if err := ctx.Err(); err != nil {
				err = fmt.Errorf("evaluating mods: %w", err)
				if len(failures) > 0 {
					err = errors.Join(err, &EvalError{Failures: failures})
				}
				return ev, err
			}

			res := e.runChain(ctx, cfg, cfg.registry.chain(p, key))
			ev.Results = append(ev.Results, res)
			ev.Executed[p] = append(ev.Executed[p], key)
			if res.Err != nil {
				failures = append(failures, res.Err)
			}
		}
	}

	if len(failures) > 0 {
		return ev, &EvalError{Failures: failures}
	}
	return ev, nil
}

func (e *Evaluator) runChain(ctx context.Context, cfg *Config, ch *chain) *ChainResult {
	res := &ChainResult{
		Platform: ch.platform,
		FileKey:  ch.fileKey,
		Layers:   ch.layers(),
		Phase:    PhasePending,
		Trace:    []Phase{PhasePending},
	}
	run := &chainRun{chain: ch, result: res}

	e.logger.Debug("running mod chain", "platform", ch.platform, "file_key", ch.fileKey, "layers", len(ch.records))

	if n := ch.count(LayerBase); n > 1 {
		run.fail(&Error{
			Kind: KindChain, Platform: ch.platform, FileKey: ch.fileKey, Layer: -1, tagged: true,
			Err: fmt.Errorf("%w (%d)", ErrMultipleBaseMods, n),
		})
		e.logger.Warn("mod chain failed", "platform", ch.platform, "file_key", ch.fileKey, "error", res.Err)
		return res
	}

	req := &request{
		ProjectRoot: cfg.ProjectRoot,
		Platform:    ch.platform,
		FileKey:     ch.fileKey,
		Config:      cfg,
		Results:     ch.seed(),
		run:         run,
	}

	out, err := run.invoke(ctx, ch.head(), req)
	if err != nil {
		run.fail(run.tag(err, nil))
		e.logger.Warn("mod chain failed", "platform", ch.platform, "file_key", ch.fileKey, "error", res.Err)
		return res
	}

	res.Results = out.Results
	run.enter(PhaseDone)
	if res.Wrote {
		e.logger.Debug("wrote native file", "path", res.Path, "changed", res.Changed())
	}
	return res
}

// chainRun is the bookkeeping of one chain execution.
type chainRun struct {
	chain  *chain
	result *ChainResult
}

func (c *chainRun) enter(p Phase) {
	if c == nil || c.result.Phase == p {
		return
	}
	c.result.Phase = p
	c.result.Trace = append(c.result.Trace, p)
}

func (c *chainRun) fail(err *Error) {
	c.result.Err = err
	c.enter(PhaseFailed)
}

func (c *chainRun) keep(results any) {
	if c != nil {
		c.result.Results = results
	}
}

func (c *chainRun) setPath(path string) {
	if c != nil {
		c.result.Path = path
	}
}

func (c *chainRun) markRead(sum string) {
	if c != nil {
		c.result.Read = true
		c.result.Before = sum
	}
}

func (c *chainRun) markWritten(sum string) {
	if c != nil {
		c.result.Wrote = true
		c.result.After = sum
	}
}

// invoke runs layer idx with a next that runs the layer it wraps. Index -1
// is the identity. Every error leaving invoke is an *Error tagged with the
// layer that returned it, unless a deeper layer already tagged it.
func (c *chainRun) invoke(ctx context.Context, idx int, req *request) (out *request, err error) {
	if idx < 0 {
		return req, nil
	}
	rec := c.chain.records[idx]

	calls := 0
	next := func(ctx context.Context, r *request) (*request, error) {
		calls++
		if calls > 1 {
			return nil, ErrNextCalledTwice
		}
		return c.invoke(ctx, rec.Prev, r)
	}

	defer func() {
		if p := recover(); p != nil {
			out, err = nil, c.tag(fmt.Errorf("panic: %v", p), &rec)
		}
	}()

	if rec.Kind != LayerBase && (c.result.Phase == PhasePending || c.result.Phase == PhaseReading) {
		c.enter(PhaseTransforming)
	}

	out, err = rec.run(ctx, req, next)
	if err != nil {
		return nil, c.tag(err, &rec)
	}
	switch {
	case calls == 0:
		return nil, c.tag(ErrNextNotCalled, &rec)
	case calls > 1:
		return nil, c.tag(ErrNextCalledTwice, &rec)
	}
	c.keep(out.Results)
	return out, nil
}

// tag converts err into an *Error for this chain. A tagged *Error passes
// through unchanged; an untagged one gets the layer's identity; anything
// else is wrapped, inheriting the kind of any *Error it wraps.
func (c *chainRun) tag(err error, rec *record) *Error {
	var me *Error
	if direct, ok := err.(*Error); ok {
		me = direct
		if me.tagged {
			return me
		}
	} else {
		kind := KindModifier
		var inner *Error
		if errors.As(err, &inner) {
			kind = inner.Kind
		}
		me = &Error{Kind: kind, Err: err}
	}

	me.Platform = c.chain.platform
	me.FileKey = c.chain.fileKey
	me.Layer = -1
	if rec != nil {
		me.Layer = rec.Index
		me.LayerName = rec.Name
	}
	me.tagged = true
	return me
}
