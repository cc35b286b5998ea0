// Package quickcheck is a property-based testing engine: it generates
// pseudo-random values for declared input shapes, drives a predicate with
// many such values at escalating sizes, and when the predicate fails it
// searches for a locally minimal counterexample before reporting it.
//
// Shapes are declared with Descriptors (Int, String, Sequence, Tuple, ...)
// and resolved against a Registry of generator/shrinker pairs; Register
// overrides any built-in. RunProperty is the harness entry point. All runs
// are reproducible from the reported seed.
//
// Shrinking is greedy and budget-capped: the result is 1-minimal (no single
// shrink step can make it smaller and still fail), not globally minimal.
package quickcheck
