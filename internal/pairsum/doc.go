// Package pairsum implements the two-sum search: locating two positions in a
// sequence of integers whose values add up to a target. Two interchangeable
// strategies share one contract so their results and runtimes can be compared
// head to head.
//
// Both strategies are pure functions over their inputs: given the same
// sequence and target they return the same pair on every invocation, an
// element never pairs with itself at a single position, and duplicated values
// resolve to the earliest occurrence.
//
// The strategies differ in scan order. ExhaustiveScan returns the
// lexicographically smallest valid (i, j); SinglePassLookup returns the pair
// that completes earliest (smallest j, then smallest i for that j). The two
// coincide whenever those orderings pick the same pair — in particular for
// any input with a single solution — and the analyzer cross-checks them on
// every input, reporting the rare structural divergence in its Agreement
// column rather than masking it.
package pairsum
