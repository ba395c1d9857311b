package cmdutil

import (
	"context"

	"chromaview/internal/pipeline"
)

// RunStream runs the shared pipeline, applies a visitor, and streams results via send.
// It returns the number of kept outputs and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	files []string,
	newDecoder func(i int) pipeline.Decoder,
	visit func(pipeline.Outcome) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachFile(ctx, cfg, files, newDecoder, func(o pipeline.Outcome) error {
		keep, out, vErr := visit(o)
		if vErr != nil {
			return vErr
		}
		if !keep {
			return nil
		}
		if err := send(out); err != nil {
			return err
		}
		total++
		return nil
	})
	return total, err
}
