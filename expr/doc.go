// Package expr provides the expression matrix type and the preprocessing
// stage of the co-expression pipeline: low-expression filtering, a
// variance-stabilizing log transform, and selection of the most variable
// genes by a robust dispersion measure.
//
// 🚀 What does expr do?
//
//	Raw read counts arrive as a genes × samples table. Preprocess turns it
//	into the samples × genes Matrix every later stage consumes:
//	  1. drop genes expressed (nonzero) in too few samples,
//	  2. transform counts with log2(x+1) to stabilize variance,
//	  3. rank genes by precision-weighted median absolute deviation (MAD)
//	     and keep the top K.
//
// ✨ Key guarantees:
//   - Matrix is immutable after construction; downstream stages never
//     mutate it.
//   - Row (sample) and column (gene) identifiers are unique, enforced
//     at construction.
//   - Selection is deterministic: score ties break by original gene order.
//   - Fails fast with ErrInsufficientGenes when fewer than K genes survive
//     filtering; no partial output.
//
// ⚙️ Usage:
//
//	m, err := expr.Preprocess(counts, geneIDs, sampleIDs,
//	    expr.WithMinNonzeroFraction(0.2),
//	    expr.WithTopK(5000),
//	)
//	if err != nil {
//	    // handle ErrInsufficientGenes / ErrInsufficientSamples
//	}
//
// Complexity: O(genes·samples) time, O(K·samples) memory for the output.
package expr
