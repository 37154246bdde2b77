package adjacency

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// PickSoftThreshold searches the candidate grid for the smallest exponent β
// whose network approximates a scale-free degree distribution.
//
// Algorithm (per candidate β, all deterministic):
//  1. Connectivity: k_i = Σ_{j≠i} s_ij^β.
//  2. Histogram k into equal-width bins; per non-empty bin take the mean
//     connectivity k̄ and frequency p.
//  3. Regress log10 p on log10 k̄; record slope and R².
//  4. A candidate qualifies when slope < 0 and R² ≥ the cutoff.
//
// The smallest qualifying β is returned with Achieved=true. When none
// qualifies, the candidate with the highest signed fit index
// (R² when slope < 0, −R² otherwise) is returned with Achieved=false;
// the caller warns and proceeds (never fatal).
//
// Errors: ErrNilSimilarity, ErrTooFewGenes.
//
// Complexity: O(len(grid)·genes²) time, O(genes) scratch.
func PickSoftThreshold(sim *mat.SymDense, opts ...Option) (*Pick, error) {
	o := gatherOptions(opts)

	if sim == nil {
		return nil, ErrNilSimilarity
	}
	n, _ := sim.Dims()
	if n < 2 {
		return nil, ErrTooFewGenes
	}

	pick := &Pick{Fits: make([]Fit, 0, len(o.candidates))}
	bestIdx, bestScore := -1, math.Inf(-1)
	for _, beta := range o.candidates {
		fit := fitScaleFree(sim, beta, o.bins)
		pick.Fits = append(pick.Fits, fit)

		if fit.Slope < 0 && fit.Rsq >= o.rsqCutoff {
			pick.Beta = fit.Beta
			pick.Rsq = fit.Rsq
			pick.Achieved = true
			return pick, nil
		}
		score := fit.Rsq
		if fit.Slope >= 0 {
			score = -fit.Rsq
		}
		if score > bestScore {
			bestScore, bestIdx = score, len(pick.Fits)-1
		}
	}

	// No candidate reached the cutoff: fall back to the best fit found.
	best := pick.Fits[bestIdx]
	pick.Beta = best.Beta
	pick.Rsq = best.Rsq
	pick.Achieved = false
	return pick, nil
}

// fitScaleFree evaluates the scale-free topology fit for one exponent.
func fitScaleFree(sim *mat.SymDense, beta float64, bins int) Fit {
	n, _ := sim.Dims()

	// Connectivities under soft thresholding.
	k := make([]float64, n)
	minK, maxK := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			sum += math.Pow(sim.At(i, j), beta)
		}
		k[i] = sum
		minK = math.Min(minK, sum)
		maxK = math.Max(maxK, sum)
	}
	meanK := stat.Mean(k, nil)
	fit := Fit{Beta: beta, MeanK: meanK}

	// Degenerate spread: every node has the same connectivity.
	if maxK-minK <= 0 {
		return fit
	}

	// Histogram of k with equal-width bins; log-log regression over the
	// non-empty bins with positive mean connectivity.
	width := (maxK - minK) / float64(bins)
	counts := make([]int, bins)
	sums := make([]float64, bins)
	for _, v := range k {
		b := int((v - minK) / width)
		if b >= bins {
			b = bins - 1 // max lands in the last bin
		}
		counts[b]++
		sums[b] += v
	}
	var xs, ys []float64
	for b := 0; b < bins; b++ {
		if counts[b] == 0 {
			continue
		}
		kb := sums[b] / float64(counts[b])
		pb := float64(counts[b]) / float64(n)
		if kb <= 0 {
			continue
		}
		xs = append(xs, math.Log10(kb))
		ys = append(ys, math.Log10(pb))
	}
	if len(xs) < 3 {
		return fit // too few occupied bins for a meaningful fit
	}

	alpha, slope := stat.LinearRegression(xs, ys, nil, false)
	fit.Slope = slope
	fit.Rsq = stat.RSquared(xs, ys, nil, alpha, slope)
	if math.IsNaN(fit.Rsq) {
		fit.Rsq = 0
	}
	return fit
}
