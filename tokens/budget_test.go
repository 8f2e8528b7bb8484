package tokens

import (
	"reflect"
	"testing"
)

func TestNewBudget(t *testing.T) {
	b := NewBudget(100, nil)

	if b.Limit != 100 {
		t.Errorf("expected Limit 100, got %d", b.Limit)
	}
	if b.counter == nil {
		t.Error("expected counter to default to an estimating counter")
	}
	if b.Used() != 0 || b.Remaining() != 100 {
		t.Errorf("expected fresh budget, got used=%d remaining=%d", b.Used(), b.Remaining())
	}
}

func TestBudget_Add(t *testing.T) {
	b := NewBudget(3, NewEncoderCounter(&wordEncoder{}))

	if !b.Add("one two") {
		t.Fatal("expected two words to fit in 3 tokens")
	}
	if b.Used() != 2 {
		t.Errorf("expected 2 used, got %d", b.Used())
	}
	if b.Add("three four") {
		t.Error("expected two more words not to fit")
	}
	if b.Used() != 2 {
		t.Errorf("rejected add should not charge, used=%d", b.Used())
	}
	if !b.Fits("three") {
		t.Error("expected one word to fit")
	}
	if !b.Add("three") {
		t.Error("expected one word to be added")
	}
	if b.Remaining() != 0 {
		t.Errorf("expected 0 remaining, got %d", b.Remaining())
	}

	b.Reset()
	if b.Used() != 0 || b.Remaining() != 3 {
		t.Errorf("expected reset budget, got used=%d remaining=%d", b.Used(), b.Remaining())
	}
}

func TestBudget_AddTokens(t *testing.T) {
	b := NewBudget(10, nil)

	tests := []struct {
		name     string
		n        int
		expected bool
		used     int
	}{
		{name: "fits", n: 4, expected: true, used: 4},
		{name: "negative rejected", n: -1, expected: false, used: 4},
		{name: "exactly remaining", n: 6, expected: true, used: 10},
		{name: "over limit", n: 1, expected: false, used: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.AddTokens(tt.n); got != tt.expected {
				t.Errorf("AddTokens(%d) = %v, expected %v", tt.n, got, tt.expected)
			}
			if b.Used() != tt.used {
				t.Errorf("Used() = %d, expected %d", b.Used(), tt.used)
			}
		})
	}
}

func TestBudget_RemainingNeverNegative(t *testing.T) {
	b := NewBudget(5, nil)
	b.AddTokens(5)
	b.Limit = 2

	if b.Remaining() != 0 {
		t.Errorf("expected 0 remaining after shrinking limit, got %d", b.Remaining())
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		weights  []int
		expected []int
	}{
		{name: "percentages", total: 1000, weights: []int{20, 40, 30, 10}, expected: []int{200, 400, 300, 100}},
		{name: "non-100 sum normalized", total: 1000, weights: []int{10, 20, 15, 5}, expected: []int{200, 400, 300, 100}},
		{name: "rounds down", total: 10, weights: []int{1, 1, 1}, expected: []int{3, 3, 3}},
		{name: "all zeros", total: 1000, weights: []int{0, 0}, expected: []int{0, 0}},
		{name: "negative weights ignored", total: 100, weights: []int{-5, 1}, expected: []int{0, 100}},
		{name: "no weights", total: 100, weights: nil, expected: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.total, tt.weights...)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Split(%d, %v) = %v, expected %v", tt.total, tt.weights, got, tt.expected)
			}
		})
	}
}
