// Package mods composes and evaluates modifiers ("mods") over a project's
// native platform files.
//
// A mod chain exists per (platform, file key). Each Apply wraps the chain
// registered so far, so the most recently registered layer is the outermost
// call. A base mod, registered last, reads the native file before the inner
// layers run and writes the result after they return: one read and one write
// however many content mods were registered.
//
// The Evaluator runs every registered chain sequentially, one file key at a
// time, and collects per-chain results and failures. A failing chain never
// stops the others.
//
// A Config and its registry are not safe for concurrent use.
package mods
