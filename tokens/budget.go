package tokens

// Budget tracks token usage against a fixed limit as texts are added.
type Budget struct {
	// Limit is the total number of tokens available.
	Limit int

	used    int
	counter Counter
}

// NewBudget creates a budget of limit tokens measured with counter.
// A nil counter uses an EstimatingCounter.
func NewBudget(limit int, counter Counter) *Budget {
	if counter == nil {
		counter = NewEstimatingCounter()
	}
	return &Budget{
		Limit:   limit,
		counter: counter,
	}
}

// Fits returns true if text would fit in the remaining budget.
func (b *Budget) Fits(text string) bool {
	return b.counter.FitsInLimit(text, b.Remaining())
}

// Add charges text against the budget if it fits and reports whether it did.
// Text that does not fit leaves the budget unchanged.
func (b *Budget) Add(text string) bool {
	n := b.counter.Count(text)
	if n > b.Remaining() {
		return false
	}
	b.used += n
	return true
}

// AddTokens charges n tokens directly, e.g. for ids already encoded.
func (b *Budget) AddTokens(n int) bool {
	if n < 0 || n > b.Remaining() {
		return false
	}
	b.used += n
	return true
}

// Used returns the tokens charged so far.
func (b *Budget) Used() int {
	return b.used
}

// Remaining returns the tokens still available, never negative.
func (b *Budget) Remaining() int {
	if r := b.Limit - b.used; r > 0 {
		return r
	}
	return 0
}

// Reset clears usage.
func (b *Budget) Reset() {
	b.used = 0
}

// Split divides total tokens proportionally to weights. Shares are rounded
// down; weights summing to zero yield all-zero shares.
//
//	Split(1000, 20, 40, 30, 10) // [200 400 300 100]
func Split(total int, weights ...int) []int {
	shares := make([]int, len(weights))
	sum := 0
	for _, w := range weights {
		if w > 0 {
			sum += w
		}
	}
	if sum == 0 {
		return shares
	}
	for i, w := range weights {
		if w > 0 {
			shares[i] = total * w / sum
		}
	}
	return shares
}
