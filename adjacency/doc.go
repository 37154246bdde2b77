// Package adjacency turns the similarity matrix into a weighted network:
// it searches for the soft-threshold exponent β that gives the network an
// approximately scale-free degree distribution, raises every similarity to
// that power, and optionally refines the result into a topological overlap
// matrix (TOM) before deriving the clustering dissimilarity.
//
// 🚀 What does adjacency do?
//
//	PickSoftThreshold evaluates a small candidate grid of exponents
//	(default 1..20): for each β it computes the node connectivities
//	k_i = Σ_j s_ij^β, bins them, and fits log10 p(k) against log10 k.
//	The smallest β whose fit reaches the R² cutoff (default 0.9) with a
//	negative slope wins. When no candidate qualifies, the best-fitting one
//	is returned with Achieved=false so the caller can warn and proceed.
//
//	Build applies a_ij = s_ij^β. TopologicalOverlap computes
//	TOM_ij = (Σ_u a_iu·a_ju + a_ij) / (min(k_i,k_j) + 1 − a_ij).
//	Dissimilarity returns 1 − value with a zero diagonal.
//
// ✨ Key guarantees:
//   - Fully deterministic: a fixed candidate grid, fixed binning, no
//     randomness anywhere.
//   - For fixed β, adjacency is a monotonically non-increasing function of
//     dissimilarity.
//   - TOM values are clamped to [0,1] with a unit diagonal.
//
// ⚙️ Usage:
//
//	pick, err := adjacency.PickSoftThreshold(sim.Sym)
//	adj, err := adjacency.Build(sim.Sym, pick.Beta)
//	tom := adjacency.TopologicalOverlap(adj)
//	dis := adjacency.Dissimilarity(tom.Sym)
//
// Complexity: O(candidates·genes²) for the search, O(genes³) for TOM.
package adjacency
