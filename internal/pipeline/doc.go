// Package pipeline implements named, ordered, fixture-validated text
// transformations.
//
// A Pipeline threads a text through an ordered list of modifiers (rules or
// custom callables). Order is load-bearing: later modifiers may depend on
// normalization done by earlier ones, so each pipeline keeps one literal
// ordered list and pins it with fixtures that are checked at construction.
// A pipeline that cannot reproduce its fixtures is never returned.
//
// The package also provides:
//   - Guard, which shields URLs, wiki-link targets, and emoji short-codes
//     from collateral rewriting while wrapped modifiers run
//   - Chain, which composes pipelines in order
//
// Every operation is a pure function over an in-memory string. Pipelines
// hold no per-call state and are safe for concurrent use.
package pipeline
