// Package jsonlutil streams values as JSON Lines from a writer goroutine.
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Buffered writers are pooled across streams; a batch run may start many.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T and returns
// the input channel plus a channel carrying the final error.
//   - convert maps a value to its wire form; nil encodes T as is
//   - isBroken recognizes broken/closed pipe errors, which end the stream
//     quietly
//
// On an encode error the remaining input is drained so senders never block.
func Start[T any](out io.Writer, bufSize int, convert func(T) any, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)

		var err error
		for v := range in {
			if err != nil {
				continue
			}
			var wire any = v
			if convert != nil {
				wire = convert(v)
			}
			err = enc.Encode(wire)
		}
		if err == nil {
			err = bw.Flush()
		}
		if err != nil && isBroken != nil && isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
