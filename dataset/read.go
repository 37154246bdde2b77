// Package dataset: CSV readers for expression counts and trait tables.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for dataset ingestion.
var (
	// ErrEmptyInput indicates a table without data rows.
	ErrEmptyInput = errors.New("dataset: empty input")
	// ErrMalformed indicates a structurally invalid table (short header,
	// ragged rows).
	ErrMalformed = errors.New("dataset: malformed table")
	// ErrBadValue indicates a cell that does not parse as a number.
	ErrBadValue = errors.New("dataset: non-numeric value")
	// ErrDuplicateID indicates a repeated gene or sample identifier.
	ErrDuplicateID = errors.New("dataset: duplicate identifier")
)

// ReadExpression parses a genes × samples count table. The header row
// carries sample identifiers (first cell is the gene-column label and is
// ignored); every following row is a gene identifier plus one count per
// sample.
//
// Errors: ErrEmptyInput, ErrMalformed, ErrBadValue, ErrDuplicateID, plus
// wrapped csv parse errors.
func ReadExpression(r io.Reader) (counts *mat.Dense, geneIDs, sampleIDs []string, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, nil, ErrEmptyInput
	}
	if err != nil {
		return nil, nil, nil, fmt.Errorf("dataset: reading header: %w", err)
	}
	if len(header) < 2 {
		return nil, nil, nil, fmt.Errorf("%w: header needs a gene column and at least one sample", ErrMalformed)
	}
	sampleIDs = append([]string(nil), header[1:]...)
	if dup := firstDuplicate(sampleIDs); dup != "" {
		return nil, nil, nil, fmt.Errorf("%w: sample %q", ErrDuplicateID, dup)
	}

	var rows [][]float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, nil, fmt.Errorf("dataset: reading row %d: %w", len(rows)+2, err)
		}
		if len(rec) != len(header) {
			return nil, nil, nil, fmt.Errorf("%w: row %d has %d cells, want %d",
				ErrMalformed, len(rows)+2, len(rec), len(header))
		}
		geneIDs = append(geneIDs, rec[0])
		vals := make([]float64, len(rec)-1)
		for i, cell := range rec[1:] {
			v, perr := strconv.ParseFloat(cell, 64)
			if perr != nil {
				return nil, nil, nil, fmt.Errorf("%w: gene %q sample %q: %q",
					ErrBadValue, rec[0], sampleIDs[i], cell)
			}
			vals[i] = v
		}
		rows = append(rows, vals)
	}
	if len(rows) == 0 {
		return nil, nil, nil, ErrEmptyInput
	}
	if dup := firstDuplicate(geneIDs); dup != "" {
		return nil, nil, nil, fmt.Errorf("%w: gene %q", ErrDuplicateID, dup)
	}

	counts = mat.NewDense(len(rows), len(sampleIDs), nil)
	for g, vals := range rows {
		counts.SetRow(g, vals)
	}
	return counts, geneIDs, sampleIDs, nil
}

// ReadTraits parses a two-column sample,value table with a header row into
// a trait table keyed by sample identifier.
//
// Errors: ErrEmptyInput, ErrMalformed, ErrBadValue, ErrDuplicateID.
func ReadTraits(r io.Reader) (map[string]float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: reading header: %w", err)
	}
	if len(header) != 2 {
		return nil, fmt.Errorf("%w: trait table needs exactly sample,value columns", ErrMalformed)
	}

	table := make(map[string]float64)
	row := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("dataset: reading row %d: %w", row, err)
		}
		if len(rec) != 2 {
			return nil, fmt.Errorf("%w: row %d", ErrMalformed, row)
		}
		if _, ok := table[rec[0]]; ok {
			return nil, fmt.Errorf("%w: sample %q", ErrDuplicateID, rec[0])
		}
		v, perr := strconv.ParseFloat(rec[1], 64)
		if perr != nil {
			return nil, fmt.Errorf("%w: sample %q: %q", ErrBadValue, rec[0], rec[1])
		}
		table[rec[0]] = v
	}
	if len(table) == 0 {
		return nil, ErrEmptyInput
	}
	return table, nil
}

// firstDuplicate returns the first repeated id, or "" when all are unique.
func firstDuplicate(ids []string) string {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return id
		}
		seen[id] = struct{}{}
	}
	return ""
}
