// Package dataset reads the pipeline's two external inputs, a
// genes × samples count table and a per-sample trait table, from CSV, and
// writes the four reporting artifacts (module assignment, eigengenes,
// significance, membership) back out as CSV.
//
// Input formats:
//
//	expression.csv          traits.csv
//	gene,s1,s2,s3           sample,status
//	g1,0,12,4               s1,0
//	g2,7,3,9                s2,1
//
// The first expression column holds gene identifiers and the header row
// holds sample identifiers; both must be unique. Trait rows with a
// non-numeric value are rejected. Readers validate shape and identifiers
// and return sentinel errors; they never panic on malformed input.
package dataset
