// Package trait relates the detected modules and individual genes to an
// externally supplied sample trait. It produces three read-only reporting
// artifacts with no feedback into earlier pipeline stages:
//
//   - gene significance — a Welch two-sample t-test per gene between the
//     two trait groups (unequal variances assumed), yielding a p-value and
//     an effect size;
//   - module significance — the mean of −log10(p) over each module's
//     member genes;
//   - module membership — the absolute correlation of every gene's profile
//     with every module eigengene, a fuzzy belonging measure independent
//     of the hard assignment.
//
// ✨ Key guarantees:
//   - Align never mutates the trait table; unmatched samples are dropped
//     and counted for the caller to log, fatal only when nothing matches.
//   - Membership values always lie in [0,1]; a zero-variance gene gets the
//     neutral membership 0 instead of NaN.
//   - The two-sample test requires a binary trait; continuous traits are
//     still accepted by Align and usable for membership.
//
// ⚙️ Usage:
//
//	tv, keep, err := trait.Align(sampleIDs, traitTable)
//	gs, err := trait.GeneSignificance(m, tv)
//	ms, err := trait.ModuleSignificance(gs, assign)
//	mm, err := trait.ModuleMembership(m, set)
package trait
