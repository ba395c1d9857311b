// Package chromatogram holds the canonical in-memory trace record shared by
// every decoder, the mock generator and the viewer. It never imports parsers,
// viewport, or anything under internal/; keep it domain-only.
package chromatogram
