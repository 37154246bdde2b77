// Package eigengene summarizes each detected module with its eigengene:
// the dominant left singular vector of the module's column-centered
// expression submatrix, one representative profile per module across all
// samples.
//
// 🚀 What does eigengene do?
//
//	For every module, Summarize extracts the samples × members submatrix,
//	centers each gene column, computes a thin SVD, and takes the first
//	left singular vector. The sign is oriented so the majority of member
//	genes correlate positively with their eigengene. A single-gene module
//	degenerates to that gene's centered, unit-norm profile.
//
// ✨ Key guarantees:
//   - Every eigengene has length equal to the sample count and unit
//     Euclidean norm (or is all-zero when the module carries no variance).
//   - Module 0 ("unassigned") is excluded by default and includable via
//     WithUnassigned.
//   - Deterministic: modules are processed in ascending id order.
//
// ⚙️ Usage:
//
//	set, err := eigengene.Summarize(m, assign)
//	profile := set.Row(moduleID) // length = samples
//
// Complexity: O(Σ_modules samples·members·min(samples,members)).
package eigengene
