package expr

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// madConsistency rescales MAD to estimate the standard deviation under
// normality.
const madConsistency = 1.4826

// minSamples is the smallest sample count for which dispersion ranking is
// meaningful.
const minSamples = 3

// Preprocess turns a raw genes × samples count matrix into the immutable
// samples × genes Matrix consumed by the rest of the pipeline.
//
// Algorithm:
//  1. Drop genes whose fraction of nonzero counts across samples is below
//     MinNonzeroFraction (default 0.2).
//  2. Transform surviving counts with y = log2(x+1) to stabilize variance.
//  3. Score each gene by precision-weighted dispersion: the median absolute
//     deviation of its transformed profile, down-weighted by µ/(µ+1) where µ
//     is the gene's mean raw count, so that shot noise at very low counts
//     does not masquerade as biological variability.
//  4. Keep the TopK highest-scoring genes (ties break by original gene
//     order); output columns preserve the original gene order.
//
// Errors:
//   - ErrNilData / ErrDimensionMismatch / ErrDuplicateID — malformed input.
//   - ErrNonFinite — NaN or ±Inf in counts.
//   - ErrInsufficientSamples — fewer than 3 samples.
//   - ErrInsufficientGenes — fewer than TopK genes survive filtering.
//
// Complexity: O(genes·samples·log samples) time, O(TopK·samples) output.
func Preprocess(counts *mat.Dense, geneIDs, sampleIDs []string, opts ...Option) (*Matrix, error) {
	o := gatherOptions(opts)

	if counts == nil {
		return nil, ErrNilData
	}
	nGenes, nSamples := counts.Dims()
	if len(geneIDs) != nGenes || len(sampleIDs) != nSamples {
		return nil, ErrDimensionMismatch
	}
	if err := checkUnique(geneIDs); err != nil {
		return nil, err
	}
	if err := checkUnique(sampleIDs); err != nil {
		return nil, err
	}
	if nSamples < minSamples {
		return nil, fmt.Errorf("%w: have %d samples, need at least %d",
			ErrInsufficientSamples, nSamples, minSamples)
	}

	// Pass 1: nonzero-fraction filter and finiteness check.
	kept := make([]int, 0, nGenes)
	for g := 0; g < nGenes; g++ {
		nonzero := 0
		for s := 0; s < nSamples; s++ {
			v := counts.At(g, s)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: gene %q sample %q",
					ErrNonFinite, geneIDs[g], sampleIDs[s])
			}
			if v != 0 {
				nonzero++
			}
		}
		if float64(nonzero)/float64(nSamples) >= o.minNonzeroFraction {
			kept = append(kept, g)
		}
	}
	if len(kept) < o.topK {
		return nil, fmt.Errorf("%w: %d genes passed the nonzero filter, need %d",
			ErrInsufficientGenes, len(kept), o.topK)
	}

	// Pass 2: log transform and precision-weighted MAD score per kept gene.
	type scored struct {
		gene  int // index into kept
		score float64
	}
	transformed := mat.NewDense(len(kept), nSamples, nil)
	scores := make([]scored, len(kept))
	row := make([]float64, nSamples)
	for i, g := range kept {
		sum := 0.0
		for s := 0; s < nSamples; s++ {
			x := counts.At(g, s)
			sum += x
			row[s] = math.Log2(x + 1)
		}
		transformed.SetRow(i, row)
		meanCount := sum / float64(nSamples)
		weight := meanCount / (meanCount + 1)
		scores[i] = scored{gene: i, score: mad(row) * weight}
	}

	// Rank by score descending; ties by original gene order for determinism.
	sort.SliceStable(scores, func(a, b int) bool {
		if scores[a].score != scores[b].score {
			return scores[a].score > scores[b].score
		}
		return scores[a].gene < scores[b].gene
	})
	selected := make([]int, o.topK)
	for i := 0; i < o.topK; i++ {
		selected[i] = scores[i].gene
	}
	sort.Ints(selected) // restore original gene order in the output

	// Assemble the samples × genes output.
	out := mat.NewDense(nSamples, o.topK, nil)
	ids := make([]string, o.topK)
	for j, i := range selected {
		ids[j] = geneIDs[kept[i]]
		for s := 0; s < nSamples; s++ {
			out.Set(s, j, transformed.At(i, s))
		}
	}
	return New(out, append([]string(nil), sampleIDs...), ids)
}

// mad computes the scaled median absolute deviation of xs.
func mad(xs []float64) float64 {
	med := median(xs)
	dev := make([]float64, len(xs))
	for i, x := range xs {
		dev[i] = math.Abs(x - med)
	}
	return madConsistency * median(dev)
}

// median returns the sample median of xs without mutating it.
func median(xs []float64) float64 {
	tmp := append([]float64(nil), xs...)
	sort.Float64s(tmp)
	n := len(tmp)
	if n%2 == 1 {
		return tmp[n/2]
	}
	return 0.5 * (tmp[n/2-1] + tmp[n/2])
}
