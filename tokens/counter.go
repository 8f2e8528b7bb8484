package tokens

import (
	"unicode/utf8"

	"github.com/randalmurphal/bpekit/tokenizer"
)

// DefaultCharsPerToken is the ratio used when no model is available.
// Roughly 4 characters per token for English text.
const DefaultCharsPerToken = 4.0

// Counter counts tokens in text.
type Counter interface {
	// Count returns the number of tokens in text.
	Count(text string) int

	// FitsInLimit returns true if text is at most limit tokens.
	FitsInLimit(text string, limit int) bool
}

// EncoderCounter counts tokens exactly by encoding with a trained tokenizer.
type EncoderCounter struct {
	enc tokenizer.Encoder
}

// NewEncoderCounter creates a counter backed by enc.
func NewEncoderCounter(enc tokenizer.Encoder) *EncoderCounter {
	return &EncoderCounter{enc: enc}
}

// Count returns len(enc.Encode(text)).
func (c *EncoderCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.enc.Encode(text))
}

// FitsInLimit returns true if text encodes to at most limit tokens.
func (c *EncoderCounter) FitsInLimit(text string, limit int) bool {
	// Every token covers at least one byte.
	if len(text) <= limit {
		return true
	}
	return c.Count(text) <= limit
}

// EstimatingCounter approximates counts from a characters-per-token ratio.
// It is much cheaper than encoding and is useful for quick budget checks.
type EstimatingCounter struct {
	// CharsPerToken is the average number of runes per token.
	CharsPerToken float64
}

// NewEstimatingCounter creates a counter using DefaultCharsPerToken.
func NewEstimatingCounter() *EstimatingCounter {
	return &EstimatingCounter{CharsPerToken: DefaultCharsPerToken}
}

// NewEstimatingCounterWithRatio creates a counter with a custom ratio.
// If charsPerToken is <= 0, DefaultCharsPerToken is used.
func NewEstimatingCounterWithRatio(charsPerToken float64) *EstimatingCounter {
	if charsPerToken <= 0 {
		charsPerToken = DefaultCharsPerToken
	}
	return &EstimatingCounter{CharsPerToken: charsPerToken}
}

// Calibrate derives an EstimatingCounter whose ratio matches how enc
// tokenizes sample. An empty sample yields the default ratio.
func Calibrate(enc tokenizer.Encoder, sample string) *EstimatingCounter {
	n := len(enc.Encode(sample))
	if n == 0 {
		return NewEstimatingCounter()
	}
	return NewEstimatingCounterWithRatio(float64(utf8.RuneCountInString(sample)) / float64(n))
}

// Count estimates the tokens in text, rounding to the nearest integer.
func (c *EstimatingCounter) Count(text string) int {
	runes := utf8.RuneCountInString(text)
	return int(float64(runes)/c.CharsPerToken + 0.5)
}

// FitsInLimit returns true if the estimate is at most limit.
func (c *EstimatingCounter) FitsInLimit(text string, limit int) bool {
	return c.Count(text) <= limit
}

// EstimateTokens estimates with the default ratio.
func EstimateTokens(text string) int {
	return NewEstimatingCounter().Count(text)
}
