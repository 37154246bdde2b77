package dendro_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/lumigen/coexnet/dendro"
)

// ExampleCutDynamic clusters a dissimilarity matrix with two obvious
// blocks and cuts the dendrogram into modules.
func ExampleCutDynamic() {
	// Six genes: {0,1,2} and {3,4,5} are tight blocks (dissimilarity
	// 0.1 within, 0.9 across).
	dis := mat.NewSymDense(6, nil)
	for i := 0; i < 6; i++ {
		for j := i + 1; j < 6; j++ {
			if (i < 3) == (j < 3) {
				dis.SetSym(i, j, 0.1)
			} else {
				dis.SetSym(i, j, 0.9)
			}
		}
	}

	dend, err := dendro.Cluster(dis)
	if err != nil {
		fmt.Println("cluster:", err)
		return
	}
	assign, err := dendro.CutDynamic(dend, dendro.WithMinClusterSize(2))
	if err != nil {
		fmt.Println("cut:", err)
		return
	}

	fmt.Println("labels:", assign.Labels)
	fmt.Println("modules:", assign.NumModules)
	// Output:
	// labels: [1 1 1 2 2 2]
	// modules: 2
}
