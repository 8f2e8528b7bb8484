// Package truncate cuts text to a token limit at token boundaries.
//
// Unlike character-based truncation, the result is measured with the same
// tokenizer that will consume it, so a limit of N tokens means N ids from
// Encode, marker included.
//
// # Strategies
//
//   - FromEnd: remove tokens from the end (default)
//   - FromMiddle: remove tokens from the middle, keeping start and end
//   - FromStart: remove tokens from the start
//
// # Usage
//
//	tr := truncate.New(model, truncate.FromMiddle)
//	out, truncated, err := tr.Truncate(text, 512)
//
// Or with a custom marker:
//
//	tr := truncate.New(model, truncate.FromEnd).WithMarker(" [cut]")
//
// # UTF-8
//
// A cut can fall inside a multi-byte character when a token holds only part
// of it. The partial character decodes to U+FFFD and is dropped at the cut.
package truncate
