// Package keyword implements the weighted keyword scoring engine.
//
// The Analyzer normalizes input text, scores and consumes multi-word phrases,
// scores the remaining single-word tokens, and classifies the aggregate score
// against a pair of thresholds. Tables are immutable after construction, so a
// single Analyzer is safe for concurrent use.
package keyword
