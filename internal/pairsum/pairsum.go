package pairsum

import "fmt"

// Pair identifies two distinct positions i < j in a sequence whose values
// sum to the search target. Positions index into the sequence's order.
type Pair struct {
	I int
	J int
}

// String renders the pair as "(i, j)".
func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.I, p.J)
}

// Finder is the contract shared by all two-sum search strategies.
//
// Find returns the first pair of positions (i, j), i < j, whose values sum to
// target, together with true; or the zero Pair and false when no such pair
// exists. Which pair is "first" is fixed by each strategy's documented scan
// order and must be deterministic, so repeated runs are comparable.
type Finder interface {
	// Name returns the strategy identifier used in reports and logs.
	Name() string
	// Find searches values for two positions summing to target.
	Find(values []int64, target int64) (Pair, bool)
}

// ExhaustiveScan examines every unordered pair of positions (i, j), i < j, in
// lexicographic order and returns the first whose values sum to the target.
//
// Complexity: O(n²) time, O(1) auxiliary space. It serves as the reference
// implementation the faster strategy is verified against.
type ExhaustiveScan struct{}

// Name returns the strategy identifier.
func (ExhaustiveScan) Name() string { return "exhaustive" }

// Find checks all pairs in lexicographic (i, j) order.
func (ExhaustiveScan) Find(values []int64, target int64) (Pair, bool) {
	n := len(values)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if values[i]+values[j] == target {
				return Pair{I: i, J: j}, true
			}
		}
	}
	return Pair{}, false
}

// SinglePassLookup scans the sequence once, keeping a map from each value to
// its earliest position. At position i it checks whether the complement
// target-values[i] has been seen before; the first hit is returned.
//
// Complexity: O(n) expected time, O(n) auxiliary space.
//
// Two details pin down its result ordering:
//   - the complement is looked up before the current value is inserted, so a
//     value never pairs with itself at one position, while two equal values at
//     different positions still pair (the second finds the first);
//   - a value already in the map is not overwritten, preserving the earliest
//     position of duplicates.
//
// The returned pair is therefore the one with the smallest j, and the
// smallest i for that j. On inputs with a single solution this is exactly
// ExhaustiveScan's answer.
type SinglePassLookup struct{}

// Name returns the strategy identifier.
func (SinglePassLookup) Name() string { return "lookup" }

// Find performs the single forward pass with complement lookup.
// The map is created fresh per invocation; no state crosses calls.
func (SinglePassLookup) Find(values []int64, target int64) (Pair, bool) {
	seen := make(map[int64]int, len(values))
	for i, v := range values {
		if j, ok := seen[target-v]; ok {
			return Pair{I: j, J: i}, true
		}
		if _, ok := seen[v]; !ok {
			seen[v] = i
		}
	}
	return Pair{}, false
}
