// Package pipeline provides a framework for executing scan steps in sequence.
//
// A scan is a fixed sequence of stages: walking and classifying the tree,
// summarizing the README, extracting dependency graphs per language family,
// and rendering the markdown artifact. Each stage is implemented as a Step
// that receives the accumulated ScanResult and can modify it.
//
// Design decision: We run the stages through an explicit pipeline instead
// of direct calls so error handling, logging, and context cancellation are
// handled once, and so a stage can be dropped or reordered (for example a
// render-only run) without touching the others.
//
// Multiple roots are scanned concurrently by a BatchProcessor that drives
// one pipeline per root under an errgroup limit.
package pipeline
