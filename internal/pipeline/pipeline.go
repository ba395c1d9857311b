package pipeline

import (
	"context"
	"os"
	"sync"

	"chromaview/core/load"
)

// Config controls the pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// Outcome is one file's result. Err is a read error or, under a strict
// loader, the decode error; Result is then empty.
type Outcome struct {
	Index  int
	File   string
	Result load.Result
	Err    error
}

// ForEachFile decodes files on cfg.Threads workers and calls visit once per
// file, in the order of files. newDecoder is called once per file with its
// index so each job owns its decoder state (the loader's random source is
// not safe for concurrent use). It returns the first visit error or the
// context error.
func ForEachFile(
	ctx context.Context,
	cfg Config,
	files []string,
	newDecoder func(i int) Decoder,
	visit func(Outcome) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	type job struct {
		i    int
		file string
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan Outcome, cfg.Threads*2)

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					o := Outcome{Index: j.i, File: j.file}
					buf, err := os.ReadFile(j.file)
					if err != nil {
						o.Err = err
					} else {
						o.Result, o.Err = newDecoder(j.i).Load(buf, j.file)
					}
					select {
					case results <- o:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: restore input order.
	var (
		cerr    error
		cwg     sync.WaitGroup
		pending = make(map[int]Outcome)
		next    int
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for o := range results {
			pending[o.Index] = o
			for {
				p, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if cerr != nil {
					continue
				}
				cerr = visit(p)
			}
		}
	}()

	// Feed work
feed:
	for i, fn := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{i: i, file: fn}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}
