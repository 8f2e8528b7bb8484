package bpe

// Pair is an ordered pair of adjacent token ids.
type Pair struct {
	Left, Right int
}

// PairCounts holds adjacent-pair occurrence counts for one sequence, along
// with the order in which each distinct pair was first seen.
type PairCounts struct {
	counts map[Pair]int
	order  []Pair
}

// CountPairs counts every adjacent pair (ids[i], ids[i+1]) in a single
// left-to-right pass. Sequences shorter than two ids yield no pairs.
func CountPairs(ids []int) PairCounts {
	if len(ids) < 2 {
		return PairCounts{}
	}
	pc := PairCounts{
		counts: make(map[Pair]int, len(ids)/2),
	}
	for i := 0; i+1 < len(ids); i++ {
		p := Pair{Left: ids[i], Right: ids[i+1]}
		n, seen := pc.counts[p]
		if !seen {
			pc.order = append(pc.order, p)
		}
		pc.counts[p] = n + 1
	}
	return pc
}

// Len returns the number of distinct pairs.
func (pc PairCounts) Len() int {
	return len(pc.order)
}

// Count returns how many times p occurs.
func (pc PairCounts) Count(p Pair) int {
	return pc.counts[p]
}

// Pairs returns the distinct pairs in first-seen order.
func (pc PairCounts) Pairs() []Pair {
	out := make([]Pair, len(pc.order))
	copy(out, pc.order)
	return out
}

// Most returns the most frequent pair and its count. Among pairs sharing the
// maximum count, the one seen first wins. ok is false when there are no pairs.
func (pc PairCounts) Most() (p Pair, count int, ok bool) {
	for _, cand := range pc.order {
		if n := pc.counts[cand]; n > count {
			p, count = cand, n
		}
	}
	return p, count, count > 0
}
