package output

import (
	"io"

	"chromaview/core/chromatogram"
	"chromaview/core/render"
	"chromaview/core/viewport"
	"chromaview/internal/jsonutil"
	"chromaview/pkg/api"
)

// ToAPIChromatogram converts a Record to the stable wire schema (v1).
// fallback is the decoder error behind a mock record, or nil.
func ToAPIChromatogram(r *chromatogram.Record, fallback error) api.ChromatogramV1 {
	v := api.ChromatogramV1{
		FileName:           r.FileName,
		FileFormat:         string(r.FileFormat),
		SequenceLength:     r.SequenceLength,
		Sequence:           r.Sequence,
		BaseCalls:          make([]string, len(r.BaseCalls)),
		Quality:            append([]int(nil), r.Quality...),
		PeakLocations:      append([]int(nil), r.PeakLocations...),
		Traces:             make(map[string][]float64, len(r.Traces)),
		QualitySynthesized: r.QualitySynthesized,
		Version:            r.Version,
		SampleName:         r.SampleName,
	}
	for i, b := range r.BaseCalls {
		v.BaseCalls[i] = string(b)
	}
	for ch, s := range r.Traces {
		v.Traces[ch.String()] = s
	}
	if fallback != nil {
		v.Fallback = fallback.Error()
	}
	return v
}

// WriteJSON writes one record as pretty-indented JSON.
func WriteJSON(w io.Writer, r *chromatogram.Record, fallback error) error {
	return jsonutil.EncodePretty(w, ToAPIChromatogram(r, fallback))
}

// ToAPIGeometry converts a frame and the state it was built from.
func ToAPIGeometry(g render.Geometry, s viewport.State, r *chromatogram.Record) api.GeometryV1 {
	v := api.GeometryV1{
		Width:       g.Width,
		Height:      g.Height,
		StartSample: g.Start,
		EndSample:   g.End,
		Polylines:   make([]api.PolylineV1, 0, len(g.Polylines)),
		Labels:      make([]api.LabelV1, 0, len(g.Labels)),
		Zoom:        s.Zoom,
		Scroll:      s.Scroll,
		Selected:    s.Selected,
		Hovered:     s.Hovered,
		Edited:      s.EditedIndices(),
		Sequence:    r.Sequence,
	}
	for _, p := range g.Polylines {
		pts := make([][2]float64, len(p.Points))
		for i, pt := range p.Points {
			pts[i] = [2]float64{pt.X, pt.Y}
		}
		v.Polylines = append(v.Polylines, api.PolylineV1{Channel: p.Channel.String(), Points: pts})
	}
	for _, l := range g.Labels {
		v.Labels = append(v.Labels, api.LabelV1{
			Index: l.Index, X: l.X, Base: string(l.Symbol), Quality: l.Quality,
			LowQuality: l.LowQuality, Edited: l.Edited, Selected: l.Selected, Hovered: l.Hovered,
		})
	}
	for _, h := range g.Highlights {
		v.Highlights = append(v.Highlights, api.RectV1{X: h.X, Width: h.Width, Start: h.Start, End: h.End})
	}
	return v
}

// WriteGeometryJSON writes one frame as pretty-indented JSON.
func WriteGeometryJSON(w io.Writer, g render.Geometry, s viewport.State, r *chromatogram.Record) error {
	return jsonutil.EncodePretty(w, ToAPIGeometry(g, s, r))
}
