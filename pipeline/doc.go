// Package pipeline wires the six stages of the co-expression analysis into
// the strict linear chain
//
//	Preprocess → Correlate → PickSoftThreshold → Build (→ TOM)
//	→ Cluster → CutDynamic → Summarize → Associate
//
// with no stage ever looping back. The pipeline owns all operational
// logging: stage progress at info level, and the recoverable data-quality
// conditions (zero-variance genes, a scale-free fit that missed its cutoff,
// trait samples dropped during alignment) at warn level. Fatal errors such
// as insufficient data or zero matched samples propagate immediately and
// produce no partial output.
//
// Configuration is a plain struct with YAML tags so the CLI can load it
// from a file; DefaultConfig documents every tunable's default.
package pipeline
