// Package stats computes degree statistics over built CSR graphs.
//
// [DegreeDistribution] buckets vertices by the base-2 logarithm of their
// out-degree. [Analyze] reports dispersion (standard deviation, coefficient
// of variation, Gini coefficient), density, self-loops ("rings") and the
// degree-0, degree-1 and leaf counts used to sanity check a conversion.
//
// Both functions only read the graph. On directed graphs without an
// in-view, in-degrees are counted from the out-adjacency.
package stats
