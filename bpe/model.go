package bpe

import (
	"log/slog"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/randalmurphal/bpekit/tokenizer"
)

// NumBytes is the size of the fixed byte alphabet. Ids below NumBytes map to
// the single byte of the same value; learned merges start at NumBytes.
const NumBytes = 256

// StopReason records why training ended.
type StopReason int

const (
	// StopTarget means the requested vocabulary size was reached.
	StopTarget StopReason = iota

	// StopNoPairs means the sequence shrank below two tokens.
	StopNoPairs

	// StopNoRepeats means no adjacent pair occurred more than once.
	StopNoRepeats
)

// String returns a short name for the reason.
func (r StopReason) String() string {
	switch r {
	case StopTarget:
		return "target"
	case StopNoPairs:
		return "no_pairs"
	case StopNoRepeats:
		return "no_repeats"
	default:
		return "unknown"
	}
}

// TrainStats summarizes the most recent Train call.
type TrainStats struct {
	InputBytes   int
	OutputTokens int
	Merges       int
	Stop         StopReason
}

// Ratio returns input bytes per output token, or 0 for an empty corpus.
func (s TrainStats) Ratio() float64 {
	if s.OutputTokens == 0 {
		return 0
	}
	return float64(s.InputBytes) / float64(s.OutputTokens)
}

// Merge is one learned rule: Pair merges into ID.
type Merge struct {
	Pair
	ID int
}

// Model is a byte-level BPE tokenizer.
//
// The vocabulary is append-only: every id's bytes live in one blob, and
// off[id]..off[id+1] delimits them. Merge i produced id NumBytes+i.
//
// Encode, Decode and the other read methods are safe for concurrent use once
// training or loading has finished. Train and Load must not run concurrently
// with any other method.
type Model struct {
	merges []Pair
	blob   []byte
	off    []int

	logger *slog.Logger
	stats  TrainStats
}

var _ tokenizer.Tokenizer = (*Model)(nil)

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for training progress.
// A nil logger falls back to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates an untrained model holding only the byte alphabet.
func New(opts ...Option) *Model {
	m := &Model{logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	m.reset()
	return m
}

// reset drops all merges, leaving the byte alphabet.
func (m *Model) reset() {
	m.merges = nil
	m.blob = make([]byte, NumBytes, 4*NumBytes)
	m.off = make([]int, NumBytes+1, 2*NumBytes+1)
	for i := 0; i < NumBytes; i++ {
		m.blob[i] = byte(i)
		m.off[i] = i
	}
	m.off[NumBytes] = NumBytes
}

// addMerge records p as the next merge and appends its bytes to the
// vocabulary. Both components must already be defined.
func (m *Model) addMerge(p Pair) int {
	id := NumBytes + len(m.merges)
	m.merges = append(m.merges, p)
	m.blob = append(m.blob, m.blob[m.off[p.Left]:m.off[p.Left+1]]...)
	m.blob = append(m.blob, m.blob[m.off[p.Right]:m.off[p.Right+1]]...)
	m.off = append(m.off, len(m.blob))
	return id
}

// VocabSize returns the number of defined ids: NumBytes plus learned merges.
func (m *Model) VocabSize() int {
	return NumBytes + len(m.merges)
}

// NumMerges returns the number of learned merge rules.
func (m *Model) NumMerges() int {
	return len(m.merges)
}

// Merges returns the learned rules in creation order.
func (m *Model) Merges() []Merge {
	out := make([]Merge, len(m.merges))
	for i, p := range m.merges {
		out[i] = Merge{Pair: p, ID: NumBytes + i}
	}
	return out
}

// TokenBytes returns a copy of the bytes id expands to.
func (m *Model) TokenBytes(id int) ([]byte, bool) {
	if id < 0 || id >= m.VocabSize() {
		return nil, false
	}
	b := m.blob[m.off[id]:m.off[id+1]]
	out := make([]byte, len(b))
	copy(out, b)
	return out, true
}

// LastTrainStats returns statistics from the most recent Train call.
func (m *Model) LastTrainStats() TrainStats {
	return m.stats
}

// Train learns merges from corpus until the vocabulary holds vocabSize ids,
// the sequence has fewer than two tokens, or no adjacent pair repeats.
// Any previously learned merges are discarded first.
//
// The returned slice is corpus encoded with the learned merges.
func (m *Model) Train(corpus string, vocabSize int) ([]int, error) {
	if vocabSize < NumBytes {
		return nil, newError("train", ErrInvalidArgument,
			"vocab size %d is below the byte alphabet size %d", vocabSize, NumBytes)
	}

	m.reset()
	ids := bytesToIDs(corpus)
	stop := StopTarget

	for id := NumBytes; id < vocabSize; id++ {
		counts := CountPairs(ids)
		best, freq, ok := counts.Most()
		if !ok {
			stop = StopNoPairs
			break
		}
		if freq < 2 {
			stop = StopNoRepeats
			break
		}

		m.addMerge(best)
		ids = replacePair(ids, best, id)

		m.logger.Debug("bpe merge",
			slog.Int("id", id),
			slog.Int("left", best.Left),
			slog.Int("right", best.Right),
			slog.Int("freq", freq),
			slog.Int("seq_len", len(ids)))
	}

	m.stats = TrainStats{
		InputBytes:   len(corpus),
		OutputTokens: len(ids),
		Merges:       len(m.merges),
		Stop:         stop,
	}

	m.logger.Info("bpe training done",
		slog.Int("vocab_size", m.VocabSize()),
		slog.Int("merges", len(m.merges)),
		slog.Int("input_bytes", m.stats.InputBytes),
		slog.Int("output_tokens", m.stats.OutputTokens),
		slog.Float64("ratio", m.stats.Ratio()),
		slog.String("stop", stop.String()))

	return ids, nil
}

// Encode converts text to token ids by replaying every merge in creation
// order over the raw UTF-8 bytes.
func (m *Model) Encode(text string) []int {
	ids := bytesToIDs(text)
	for i, p := range m.merges {
		if len(ids) < 2 {
			break
		}
		ids = replacePair(ids, p, NumBytes+i)
	}
	return ids
}

// Decode concatenates the bytes of each id and interprets the result as
// UTF-8. Each byte that is not part of a valid sequence becomes U+FFFD.
// An id outside [0, VocabSize()) fails with ErrInvalidToken.
func (m *Model) Decode(ids []int) (string, error) {
	buf := make([]byte, 0, len(ids)*2)
	for i, id := range ids {
		if id < 0 || id >= m.VocabSize() {
			return "", newError("decode", ErrInvalidToken,
				"id %d at position %d outside [0, %d)", id, i, m.VocabSize())
		}
		buf = append(buf, m.blob[m.off[id]:m.off[id+1]]...)
	}
	if utf8.Valid(buf) {
		return string(buf), nil
	}
	out, err := unicode.UTF8.NewDecoder().Bytes(buf)
	if err != nil {
		return string([]rune(string(buf))), nil
	}
	return string(out), nil
}

// DecodeToken returns the text of a single id with invalid bytes replaced.
func (m *Model) DecodeToken(id int) (string, error) {
	return m.Decode([]int{id})
}

func bytesToIDs(text string) []int {
	ids := make([]int, len(text))
	for i := 0; i < len(text); i++ {
		ids[i] = int(text[i])
	}
	return ids
}

// replacePair rewrites ids in place, replacing each non-overlapping
// occurrence of p (scanning left to right) with id.
func replacePair(ids []int, p Pair, id int) []int {
	out := ids[:0]
	for i := 0; i < len(ids); i++ {
		if i+1 < len(ids) && ids[i] == p.Left && ids[i+1] == p.Right {
			out = append(out, id)
			i++
			continue
		}
		out = append(out, ids[i])
	}
	return out
}
