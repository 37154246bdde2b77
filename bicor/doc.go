// Package bicor estimates the pairwise similarity matrix of gene expression
// profiles using the biweight midcorrelation, a robust correlation estimator
// that down-weights outlier samples (plain Pearson is selectable).
//
// 🚀 What does bicor do?
//
//	Given the samples × genes expression matrix, Correlate produces the
//	genes × genes Similarity matrix: the absolute value of the chosen
//	correlation estimator for every gene pair. The result is symmetric,
//	has unit diagonal, and all values lie in [0,1].
//
// ✨ Key guarantees:
//   - Zero-variance genes are never fatal: their off-diagonal similarities
//     are substituted with the neutral value 0 and their indices recorded
//     on the result for the caller to log.
//   - Genes with zero MAD but positive variance fall back to Pearson
//     normalization instead of degenerating.
//   - Rows are computed independently and may be fanned out across workers;
//     the result is bit-identical to the serial computation.
//
// ⚙️ Usage:
//
//	sim, err := bicor.Correlate(m,
//	    bicor.WithEstimator(bicor.BiweightMidcorrelation),
//	    bicor.WithWorkers(8),
//	)
//
// Complexity: O(genes²·samples) time, O(genes²) memory.
package bicor
