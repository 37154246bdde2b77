package trait

// Align joins an external trait table onto the expression matrix's sample
// order. It returns a Vector covering exactly the matched samples, plus the
// positions of those samples in sampleIDs so the caller can restrict the
// expression matrix to the same rows.
//
// Unmatched samples (present in sampleIDs but absent from table) are
// dropped; the caller computes the drop count as len(sampleIDs)−len(keep)
// and logs it. Extra table entries without a matching sample are ignored.
// The table itself is never mutated.
//
// Errors: ErrNilInput, ErrNoSamplesMatched (only when nothing matches).
func Align(sampleIDs []string, table map[string]float64) (*Vector, []int, error) {
	if sampleIDs == nil || table == nil {
		return nil, nil, ErrNilInput
	}

	var keep []int
	var values []float64
	var ids []string
	for i, id := range sampleIDs {
		v, ok := table[id]
		if !ok {
			continue
		}
		keep = append(keep, i)
		values = append(values, v)
		ids = append(ids, id)
	}
	if len(keep) == 0 {
		return nil, nil, ErrNoSamplesMatched
	}
	return &Vector{Values: values, SampleIDs: ids}, keep, nil
}
