package pipeline

import "chromaview/core/load"

// Decoder is the minimal capability the pipeline needs.
// *load.Loader (and fakes in tests) satisfy it.
type Decoder interface {
	Load(buf []byte, name string) (load.Result, error)
}

// Compile-time check: the concrete loader satisfies the contract.
var _ Decoder = (*load.Loader)(nil)
