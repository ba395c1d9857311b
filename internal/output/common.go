package output

// Output formats accepted by the driver.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatFASTA = "fasta"
	FormatTSV   = "tsv"
)

// TSVHeader is the canonical header row for the per-base table.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "index\tbase\tquality\tpeak"

// DefaultLineWidth wraps FASTA and text sequence blocks.
const DefaultLineWidth = 60
