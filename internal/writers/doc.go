// Package writers turns decoded records and batch summaries into serialized
// outputs.
//
// Design:
//   - Writers own all presentation knowledge (text/JSON/JSONL/FASTA/TSV).
//   - core stays domain-only; the app layer stays orchestration-only.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
