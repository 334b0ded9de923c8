// Package model defines the core data structures used throughout codegenius.
//
// This package contains the following main types:
//   - Language: Closed enum of recognized language families
//   - FileRecord: A discovered file with its classification
//   - DependencyGraph: Node/edge store for one language family
//   - ScanResult: The per-scan aggregate of buckets, graphs, and summary
//   - Outcome: The caller-facing success/failure summary
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (walker, extractor, pipeline, report) need
// to use these types, so centralizing them prevents import cycles.
package model
