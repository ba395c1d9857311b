package api

// GeometryV1 is the stable schema handed to rendering sinks.
type GeometryV1 struct {
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	StartSample int          `json:"start_sample"`
	EndSample   int          `json:"end_sample"`
	Polylines   []PolylineV1 `json:"polylines"`
	Labels      []LabelV1    `json:"labels"`
	Highlights  []RectV1     `json:"highlights,omitempty"`

	// Viewer state the geometry was built from.
	Zoom     float64 `json:"zoom"`
	Scroll   float64 `json:"scroll"`
	Selected *int    `json:"selected,omitempty"`
	Hovered  *int    `json:"hovered,omitempty"`
	Edited   []int   `json:"edited,omitempty"`
	Sequence string  `json:"sequence"`
}

type PolylineV1 struct {
	Channel string       `json:"channel"`
	Points  [][2]float64 `json:"points"` // [x, y]
}

type LabelV1 struct {
	Index      int     `json:"index"`
	X          float64 `json:"x"`
	Base       string  `json:"base"`
	Quality    int     `json:"quality"`
	LowQuality bool    `json:"low_quality,omitempty"`
	Edited     bool    `json:"edited,omitempty"`
	Selected   bool    `json:"selected,omitempty"`
	Hovered    bool    `json:"hovered,omitempty"`
}

type RectV1 struct {
	X     float64 `json:"x"`
	Width float64 `json:"width"`
	Start int     `json:"start"`
	End   int     `json:"end"`
}
