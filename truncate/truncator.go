package truncate

import (
	"fmt"

	"github.com/randalmurphal/bpekit/tokenizer"
)

// Strategy defines which part of the text is removed.
type Strategy int

const (
	// FromEnd removes tokens from the end (default).
	FromEnd Strategy = iota

	// FromMiddle removes tokens from the middle, keeping start and end.
	FromMiddle

	// FromStart removes tokens from the start.
	FromStart
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case FromEnd:
		return "end"
	case FromMiddle:
		return "middle"
	case FromStart:
		return "start"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// DefaultEndMarker is appended when cutting from the end.
const DefaultEndMarker = "..."

// DefaultMiddleMarker replaces the removed middle.
const DefaultMiddleMarker = "\n...[content truncated]...\n"

// DefaultStartMarker is prepended when cutting from the start.
const DefaultStartMarker = "..."

// Truncator cuts text to a token limit at token boundaries of a codec.
// The marker's own tokens count against the limit.
type Truncator struct {
	codec    tokenizer.Codec
	strategy Strategy
	marker   string
}

// New creates a truncator using codec and strategy with the strategy's
// default marker.
func New(codec tokenizer.Codec, strategy Strategy) *Truncator {
	marker := DefaultEndMarker
	switch strategy {
	case FromMiddle:
		marker = DefaultMiddleMarker
	case FromStart:
		marker = DefaultStartMarker
	}
	return &Truncator{
		codec:    codec,
		strategy: strategy,
		marker:   marker,
	}
}

// WithMarker sets the text inserted where content was removed.
func (t *Truncator) WithMarker(marker string) *Truncator {
	t.marker = marker
	return t
}

// Strategy returns the truncator's strategy.
func (t *Truncator) Strategy() Strategy {
	return t.strategy
}

// Marker returns the truncator's marker.
func (t *Truncator) Marker() string {
	return t.marker
}

// Truncate reduces text so that it encodes to at most maxTokens tokens.
// It returns the text unchanged (and false) when it already fits. When even
// the marker does not fit, the result is empty.
func (t *Truncator) Truncate(text string, maxTokens int) (string, bool, error) {
	ids := t.codec.Encode(text)
	if len(ids) <= maxTokens {
		return text, false, nil
	}

	markerTokens := len(t.codec.Encode(t.marker))
	for keep := maxTokens - markerTokens; keep > 0; keep-- {
		candidate, err := t.cut(ids, keep)
		if err != nil {
			return "", true, err
		}
		// Re-encoding can merge across the seam, so check the final text.
		if len(t.codec.Encode(candidate)) <= maxTokens {
			return candidate, true, nil
		}
	}

	if markerTokens <= maxTokens {
		return t.marker, true, nil
	}
	return "", true, nil
}

// ToTokens truncates text from the end with the default marker.
func ToTokens(codec tokenizer.Codec, text string, maxTokens int) (string, error) {
	out, _, err := New(codec, FromEnd).Truncate(text, maxTokens)
	return out, err
}
