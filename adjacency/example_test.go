package adjacency_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/lumigen/coexnet/adjacency"
)

// ExampleBuild soft-thresholds a tiny similarity matrix and derives the
// clustering dissimilarity from it.
func ExampleBuild() {
	sim := mat.NewSymDense(3, []float64{
		1.0, 0.9, 0.2,
		0.9, 1.0, 0.3,
		0.2, 0.3, 1.0,
	})

	adj, err := adjacency.Build(sim, 2)
	if err != nil {
		fmt.Println("build:", err)
		return
	}
	dis := adjacency.Dissimilarity(adj.Sym)

	fmt.Printf("a(0,1) = %.2f\n", adj.Sym.At(0, 1))
	fmt.Printf("a(0,2) = %.2f\n", adj.Sym.At(0, 2))
	fmt.Printf("d(0,1) = %.2f\n", dis.At(0, 1))
	// Output:
	// a(0,1) = 0.81
	// a(0,2) = 0.04
	// d(0,1) = 0.19
}
