package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"chromaview/core/chromatogram"
	"chromaview/core/detect"
	"chromaview/core/edit"
	"chromaview/core/load"
	"chromaview/core/render"
	"chromaview/internal/appcore"
	"chromaview/internal/cli"
	"chromaview/internal/clibase"
	"chromaview/internal/output"
	"chromaview/internal/pipeline"
	"chromaview/internal/visitors"
	"chromaview/internal/writers"
	"chromaview/pkg/api"
)

// baseSeed fixes the random stream for one invocation.
func baseSeed(env *cli.Env) uint64 {
	if env.Config.Seed != 0 {
		return env.Config.Seed
	}
	return uint64(time.Now().UnixNano())
}

// newLoader builds the loader for job i; each job owns its random stream.
func newLoader(env *cli.Env, seed uint64, i int) *load.Loader {
	l := load.New(env.Config.Policy, rand.New(rand.NewPCG(seed, uint64(i))), env.Log)
	l.ABIF.InlineSmallData = env.Config.ABIFInlineSmall
	l.SCF.Peaks = env.Config.SCFPeaks
	return l
}

// displayName is the name records carry into output and FASTA headers.
func displayName(file string) string {
	if file == "-" {
		return "stdin"
	}
	return filepath.Base(file)
}

func readInput(env *cli.Env, file string) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(env.Stdin)
	}
	return os.ReadFile(file)
}

func loadOne(env *cli.Env, file string) (load.Result, error) {
	buf, err := readInput(env, file)
	if err != nil {
		return load.Result{}, err
	}
	return newLoader(env, baseSeed(env), 0).Load(buf, displayName(file))
}

// usageOnEdit reports edit-model rejections as bad invocations.
func usageOnEdit(err error) error {
	for _, e := range []error{edit.ErrNotSelected, edit.ErrInvalidSymbol, edit.ErrIndexOutOfRange, edit.ErrInvalidRange} {
		if errors.Is(err, e) {
			return clibase.UsageError{Err: err}
		}
	}
	return err
}

func runDetect(_ context.Context, env *cli.Env, files []string) error {
	failed := 0
	for _, fn := range files {
		label := "unknown"
		head, err := readHead(env, fn, 4)
		if err == nil {
			var format chromatogram.Format
			if format, err = detect.Detect(head); err == nil {
				label = string(format)
			}
		}
		if err != nil {
			failed++
			env.Log.Error("detect failed", "file", fn, "err", err)
		}
		if _, werr := fmt.Fprintf(env.Stdout, "%s\t%s\n", fn, label); werr != nil {
			return werr
		}
	}
	if failed > 0 {
		return clibase.ExitCode(3)
	}
	return nil
}

func readHead(env *cli.Env, file string, n int) ([]byte, error) {
	var r io.Reader = env.Stdin
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	buf := make([]byte, n)
	k, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:k], nil
}

func runInspect(_ context.Context, env *cli.Env, o cli.InspectOptions, file string) error {
	res, err := loadOne(env, file)
	if err != nil {
		return err
	}
	return writers.WriteRecord(o.Output, env.Stdout, writers.Payload{
		Record:           res.Record,
		Fallback:         res.Err,
		QualityThreshold: env.Config.QualityThreshold,
		LineWidth:        o.LineWidth,
		Header:           o.Header,
	})
}

func runExport(_ context.Context, env *cli.Env, o cli.ExportOptions, file string) error {
	res, err := loadOne(env, file)
	if err != nil {
		return err
	}
	if o.Range == "" {
		return output.WriteFASTA(env.Stdout, res.Record, o.LineWidth)
	}
	r, err := cli.ParseRange(o.Range)
	if err != nil {
		return clibase.UsageError{Err: err}
	}
	if _, _, err := edit.New(res.Record).Highlight(r.Start, r.End); err != nil {
		return usageOnEdit(err)
	}
	return output.WriteRangeFASTA(env.Stdout, res.Record, r.Start, r.End, o.LineWidth)
}

func runView(_ context.Context, env *cli.Env, o cli.ViewOptions, file string) error {
	res, err := loadOne(env, file)
	if err != nil {
		return err
	}
	cfg := env.Config
	m := edit.New(res.Record)

	s := m.State.WithQualityThreshold(cfg.QualityThreshold).WithZoom(o.Zoom).WithScroll(o.Scroll)
	if o.Center >= 0 {
		s = s.CenterOn(o.Center, m.Record.MaxTraceLength(), cfg.CanvasWidth)
	}
	if o.Channels != "" {
		chs, err := cli.ParseChannels(o.Channels)
		if err != nil {
			return clibase.UsageError{Err: err}
		}
		s = s.WithChannels(chs...)
	}
	m.State = s

	if o.Select >= 0 {
		if m, err = m.Select(o.Select); err != nil {
			return usageOnEdit(err)
		}
	}
	if o.HasClick {
		m = m.Click(m.Mapper(cfg.CanvasWidth), o.Click, cfg.HitRadius)
		if m.State.Selected == nil {
			env.Log.Info("click hit no base", "x", o.Click, "radius", cfg.HitRadius)
		}
	}
	if o.HasHover {
		m = m.Hover(m.Mapper(cfg.CanvasWidth), o.Hover, cfg.HitRadius)
	}
	if o.Edit != "" {
		sel := m.State.Selected
		if sel == nil {
			return clibase.UsageError{Err: fmt.Errorf("--edit: %w", edit.ErrNotSelected)}
		}
		if m, err = m.Edit(*sel, o.Edit[0]); err != nil {
			return usageOnEdit(err)
		}
		env.Log.Debug("base edited", "index", *sel, "symbol", string(m.Record.BaseCalls[*sel]))
	}
	if o.Range != "" {
		r, err := cli.ParseRange(o.Range)
		if err != nil {
			return clibase.UsageError{Err: err}
		}
		if m, _, err = m.Highlight(r.Start, r.End); err != nil {
			return usageOnEdit(err)
		}
	}

	if o.Output == output.FormatFASTA {
		fa, err := m.HighlightFASTA()
		if err != nil {
			return usageOnEdit(err)
		}
		_, err = fmt.Fprintln(env.Stdout, fa)
		return err
	}
	g := render.Build(m.Record, m.State, render.Options{Width: cfg.CanvasWidth, Height: cfg.CanvasHeight})
	return output.WriteGeometryJSON(env.Stdout, g, m.State, m.Record)
}

func runBatch(ctx context.Context, env *cli.Env, o cli.BatchOptions, files []string) error {
	seed := baseSeed(env)
	code := appcore.Run[api.SummaryV1](ctx, env.Stdout, env.Stderr,
		appcore.Options{Files: files, Threads: o.Threads, Progress: o.Progress, Quiet: env.Common.Quiet},
		func(i int) pipeline.Decoder { return newLoader(env, seed, i) },
		visitors.Summary{QualityThreshold: env.Config.QualityThreshold, SkipFallback: o.SkipMock}.Visit,
		appcore.NewSummaryWriterFactory(o.Output, o.Header),
	)
	if code != 0 {
		return clibase.ExitCode(code)
	}
	return nil
}
