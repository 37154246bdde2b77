package dendro_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/lumigen/coexnet/dendro"
)

// symFromUpper builds a SymDense from the strict upper triangle given in
// row-major order.
func symFromUpper(n int, upper []float64) *mat.SymDense {
	s := mat.NewSymDense(n, nil)
	idx := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s.SetSym(i, j, upper[idx])
			idx++
		}
	}
	return s
}

// twoBlockDissimilarity returns a 6-leaf dissimilarity with two tight
// blocks {0,1,2} and {3,4,5}: within 0.1, across 0.9.
func twoBlockDissimilarity() *mat.SymDense {
	s := mat.NewSymDense(6, nil)
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			if (i < 3) == (j < 3) {
				s.SetSym(i, j, 0.1)
			} else {
				s.SetSym(i, j, 0.9)
			}
		}
	}
	return s
}

// TestCluster_KnownUPGMAHeights verifies the classic three-point example:
// the close pair joins first, then the average-linkage root.
func TestCluster_KnownUPGMAHeights(t *testing.T) {
	// d(0,1)=0.1, d(0,2)=0.5, d(1,2)=0.7.
	dis := symFromUpper(3, []float64{0.1, 0.5, 0.7})
	d, err := dendro.Cluster(dis)
	require.NoError(t, err)

	require.Len(t, d.Merges, 2)
	assert.Equal(t, dendro.Merge{A: 0, B: 1, Height: 0.1, Size: 2}, d.Merges[0])
	assert.Equal(t, 2, d.Merges[1].A, "children are ordered by node id")
	assert.Equal(t, 3, d.Merges[1].B, "second merge joins node 3 = {0,1}")
	assert.InDelta(t, 0.6, d.Merges[1].Height, 1e-12, "average of 0.5 and 0.7")
	assert.Equal(t, 3, d.Merges[1].Size)
}

// TestCluster_HeightsNondecreasing checks the reducibility property of
// average linkage on a block-structured input.
func TestCluster_HeightsNondecreasing(t *testing.T) {
	d, err := dendro.Cluster(twoBlockDissimilarity())
	require.NoError(t, err)

	prev := 0.0
	for _, m := range d.Merges {
		assert.GreaterOrEqual(t, m.Height, prev, "merge heights must never decrease")
		prev = m.Height
	}
	assert.Equal(t, 6, d.Merges[len(d.Merges)-1].Size, "root holds every leaf")
}

// TestCluster_DeterministicTieBreaking verifies that with all distances
// equal the first merge joins the smallest index pair, and repeated runs
// produce identical trees.
func TestCluster_DeterministicTieBreaking(t *testing.T) {
	s := mat.NewSymDense(5, nil)
	for i := 0; i < 5; i++ {
		for j := i + 1; j < 5; j++ {
			s.SetSym(i, j, 0.5)
		}
	}
	a, err := dendro.Cluster(s)
	require.NoError(t, err)
	b, err := dendro.Cluster(s)
	require.NoError(t, err)

	assert.Equal(t, dendro.Merge{A: 0, B: 1, Height: 0.5, Size: 2}, a.Merges[0],
		"ties must break by original index order")
	assert.Equal(t, a, b, "identical input must yield the identical tree")
}

// TestCluster_InputGuards verifies the sentinel errors.
func TestCluster_InputGuards(t *testing.T) {
	_, err := dendro.Cluster(nil)
	assert.ErrorIs(t, err, dendro.ErrNilDissimilarity)

	_, err = dendro.Cluster(mat.NewSymDense(1, nil))
	assert.ErrorIs(t, err, dendro.ErrTooFewLeaves)

	bad := symFromUpper(3, []float64{0.1, -0.2, 0.3})
	_, err = dendro.Cluster(bad)
	assert.ErrorIs(t, err, dendro.ErrNegativeDistance)
}
