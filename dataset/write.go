// Package dataset: CSV writers for the four reporting artifacts.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/lumigen/coexnet/dendro"
	"github.com/lumigen/coexnet/eigengene"
	"github.com/lumigen/coexnet/trait"
)

// WriteModules writes gene,module rows for every gene.
func WriteModules(w io.Writer, geneIDs []string, assign *dendro.Assignment) error {
	if len(geneIDs) != len(assign.Labels) {
		return fmt.Errorf("%w: %d gene ids, %d labels", ErrMalformed, len(geneIDs), len(assign.Labels))
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"gene", "module"}); err != nil {
		return err
	}
	for g, id := range geneIDs {
		if err := cw.Write([]string{id, strconv.Itoa(assign.Labels[g])}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEigengenes writes one row per module: module id followed by the
// eigengene value for every sample.
func WriteEigengenes(w io.Writer, set *eigengene.Set) error {
	cw := csv.NewWriter(w)
	header := append([]string{"module"}, set.SampleIDs...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, id := range set.Modules {
		row := make([]string, 1, 1+len(set.SampleIDs))
		row[0] = strconv.Itoa(id)
		for _, v := range mat.Row(nil, i, set.Data) {
			row = append(row, formatFloat(v))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSignificance writes the per-gene Welch-test report followed by the
// per-module aggregate, modules in ascending id order.
func WriteSignificance(w io.Writer, gs []trait.Result, ms map[int]float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"gene", "p_value", "neg_log10_p", "effect_size"}); err != nil {
		return err
	}
	for _, r := range gs {
		row := []string{r.GeneID, formatFloat(r.P), formatFloat(r.LogP), formatFloat(r.EffectSize)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	ids := make([]int, 0, len(ms))
	for id := range ms {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	if err := cw.Write([]string{"module", "mean_neg_log10_p", "", ""}); err != nil {
		return err
	}
	for _, id := range ids {
		if err := cw.Write([]string{strconv.Itoa(id), formatFloat(ms[id]), "", ""}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMembership writes the genes × modules membership matrix with module
// ids as column headers.
func WriteMembership(w io.Writer, geneIDs []string, modules []int, mm *mat.Dense) error {
	r, c := mm.Dims()
	if r != len(geneIDs) || c != len(modules) {
		return fmt.Errorf("%w: membership is %dx%d, want %dx%d",
			ErrMalformed, r, c, len(geneIDs), len(modules))
	}
	cw := csv.NewWriter(w)
	header := make([]string, 1, 1+c)
	header[0] = "gene"
	for _, id := range modules {
		header = append(header, "module_"+strconv.Itoa(id))
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for g, id := range geneIDs {
		row := make([]string, 1, 1+c)
		row[0] = id
		for j := 0; j < c; j++ {
			row = append(row, formatFloat(mm.At(g, j)))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
