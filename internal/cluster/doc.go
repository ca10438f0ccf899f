// Package cluster partitions tokenized files into named groups.
//
// Clustering is a single greedy pass: the first unassigned record becomes an
// anchor, every later unassigned record scoring strictly above the threshold
// against that anchor joins its group, and the pass continues with the next
// unassigned record. Membership is decided against the anchor only, so two
// members of one group need not be similar to each other. This is
// single-link behaviour and is intentional; do not replace it with
// transitive closure, which changes which files end up together.
//
// Each group is named after its most frequent token, ties going to the token
// seen first in record order, or "misc" when the members have no tokens.
package cluster
