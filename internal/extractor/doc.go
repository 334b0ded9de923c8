// Package extractor builds dependency graphs from source text by lexical
// heuristics, one strategy per language family.
//
// # Architecture
//
// Each covered family implements the Extractor interface and is selected
// through a fixed dispatch table keyed on the language enum. Extraction is
// purely textual: line-anchored regular expressions find declarations and
// import heads, and call relationships are detected by substring probing.
// There is no parsing, no type resolution, and no cross-family linking.
//
// Design decision: Each extractor is a separate type behind a shared
// interface rather than one generic extractor because:
//  1. Declaration and import syntax varies significantly between families
//  2. A stricter tokenizer or parser can later replace one strategy
//     without touching the graph or report layers
//  3. Each family can be tested in isolation
//
// # Precision
//
// Name matching is lexical. A function named "parse" occurring inside an
// unrelated token can produce a false edge, and dynamic imports produce
// false negatives. This tradeoff favors recall and simplicity over
// precision; extraction ambiguity is an accepted property, never an error.
//
// # Cost
//
// Call-edge detection tests every pair of function symbols in a bucket
// against file text, which is quadratic in the symbol count per family.
// This is the scalability ceiling of a scan.
package extractor
