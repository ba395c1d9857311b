// Package pipeline reads and decodes many chromatogram files on a bounded
// worker pool and hands the outcomes to a visit callback in input order.
//
// The only contract to implement is Decoder (Load). This keeps the pipeline
// swappable and testable.
package pipeline
