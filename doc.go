// Package coexnet turns a gene-expression count matrix into a weighted
// co-expression network, partitions it into modules, and relates modules
// to an external sample trait.
//
// 🚀 What is coexnet?
//
//	A deterministic, batch-oriented analysis library built as a strict
//	linear pipeline of pure transformations:
//	  • expr       — filtering, log transform, top-K dispersion selection
//	  • bicor      — robust pairwise similarity (biweight midcorrelation)
//	  • adjacency  — soft-threshold search, adjacency, topological overlap
//	  • dendro     — average-linkage clustering + dynamic branch cut
//	  • eigengene  — one dominant expression profile per module
//	  • trait      — gene/module significance and fuzzy module membership
//	  • pipeline   — the wired chain with structured logging
//	  • dataset    — CSV ingestion and report writers
//
// ✨ Why choose coexnet?
//
//   - Deterministic end to end – stable tie-breaking, no hidden randomness
//   - Robust by default – outlier-resistant correlation, local recovery of
//     degenerate data with warnings instead of failures
//   - Pure transformations – the expression matrix is read once and never
//     mutated; every stage allocates its own output
//
// The cmd/coexnet binary drives the whole chain from two CSV files:
//
//	coexnet --expr counts.csv --traits status.csv --out results/run1
//
// The heavy O(genes²) stages fan rows out across workers, but correctness
// never depends on parallel execution: every worker count produces the
// identical result.
package coexnet
