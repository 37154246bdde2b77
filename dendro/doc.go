// Package dendro detects co-expression modules: it clusters genes by
// average-linkage agglomeration over a dissimilarity matrix and partitions
// the resulting dendrogram with a dynamic branch cut that is sensitive to
// local branch shape rather than a single global height.
//
// 🚀 What does dendro do?
//
//	Cluster builds the dendrogram: n−1 merges with nondecreasing heights,
//	ties broken by original index order, so identical input always yields
//	the identical tree. CutDynamic then walks the tree: a static cut near
//	the top isolates candidate branches, and each branch is recursively
//	split only while both halves are large enough (MinClusterSize) and
//	their core heights sit clearly below the merge that joins them
//	(controlled by DeepSplit). Everything not claimed by a qualifying
//	branch lands in module 0, "unassigned".
//
// ✨ Key guarantees:
//   - Fully deterministic: stable tie-breaking in clustering and a fixed
//     traversal order in the cut.
//   - Every gene gets exactly one module id; module 0 holds exactly the
//     genes not claimed by any qualifying branch.
//   - Module ids 1..K are ordered by decreasing size, ties by smallest
//     member index.
//
// ⚙️ Usage:
//
//	dend, err := dendro.Cluster(dissim)
//	assign, err := dendro.CutDynamic(dend,
//	    dendro.WithMinClusterSize(30),
//	    dendro.WithDeepSplit(2),
//	)
//
// Complexity: O(genes³) time and O(genes²) memory for Cluster,
// O(genes) for the cut.
package dendro
