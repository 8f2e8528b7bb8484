package truncate

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/bpekit/bpe"
)

func byteModel() *bpe.Model {
	return bpe.New(bpe.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestNew(t *testing.T) {
	tests := []struct {
		strategy Strategy
		marker   string
	}{
		{strategy: FromEnd, marker: DefaultEndMarker},
		{strategy: FromMiddle, marker: DefaultMiddleMarker},
		{strategy: FromStart, marker: DefaultStartMarker},
	}

	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			tr := New(byteModel(), tt.strategy)
			assert.Equal(t, tt.strategy, tr.Strategy())
			assert.Equal(t, tt.marker, tr.Marker())
		})
	}

	assert.Equal(t, " [cut]", New(byteModel(), FromEnd).WithMarker(" [cut]").Marker())
	assert.Equal(t, "Strategy(9)", Strategy(9).String())
}

func TestTruncator_Truncate_ByteLevel(t *testing.T) {
	// An untrained model has one token per byte, so expectations are exact.
	tests := []struct {
		name      string
		strategy  Strategy
		marker    *string
		text      string
		max       int
		want      string
		truncated bool
	}{
		{name: "fits", strategy: FromEnd, text: "hello world", max: 20, want: "hello world"},
		{name: "fits exactly", strategy: FromEnd, text: "hello", max: 5, want: "hello"},
		{name: "from end", strategy: FromEnd, text: "hello world", max: 8, want: "hello...", truncated: true},
		{name: "from start", strategy: FromStart, text: "hello world", max: 8, want: "...world", truncated: true},
		{name: "from middle", strategy: FromMiddle, marker: ptr("|"), text: "hello world", max: 9, want: "hell|orld", truncated: true},
		{name: "only marker fits", strategy: FromEnd, text: "hello world", max: 3, want: "...", truncated: true},
		{name: "nothing fits", strategy: FromEnd, text: "hello world", max: 2, want: "", truncated: true},
		{name: "partial rune dropped at end", strategy: FromEnd, marker: ptr(""), text: "héllo", max: 2, want: "h", truncated: true},
		{name: "partial rune dropped at start", strategy: FromStart, marker: ptr(""), text: "lloé!", max: 2, want: "!", truncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(byteModel(), tt.strategy)
			if tt.marker != nil {
				tr.WithMarker(*tt.marker)
			}

			got, truncated, err := tr.Truncate(tt.text, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.truncated, truncated)
		})
	}
}

func TestTruncator_Truncate_TrainedModelRespectsLimit(t *testing.T) {
	m := byteModel()
	corpus := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 30) +
		"Нейронные сети обрабатывают тексты. 人工知能は世界を変える。"
	_, err := m.Train(corpus, 400)
	require.NoError(t, err)

	text := corpus[len(corpus)/2:]
	for _, strategy := range []Strategy{FromEnd, FromMiddle, FromStart} {
		tr := New(m, strategy)
		for _, limit := range []int{1, 5, 10, 17, 40, 100} {
			got, _, err := tr.Truncate(text, limit)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(m.Encode(got)), limit, "%s limit=%d", strategy, limit)
			assert.NotContains(t, got, "\uFFFD")
		}
	}
}

type failingDecoder struct {
	*bpe.Model
}

func (failingDecoder) Decode([]int) (string, error) {
	return "", errors.New("decode failed")
}

func TestTruncator_Truncate_DecodeError(t *testing.T) {
	tr := New(failingDecoder{byteModel()}, FromEnd)
	_, _, err := tr.Truncate("hello world", 8)
	assert.EqualError(t, err, "decode failed")
}

func TestToTokens(t *testing.T) {
	got, err := ToTokens(byteModel(), "hello world", 8)
	require.NoError(t, err)
	assert.Equal(t, "hello...", got)
}

func ptr(s string) *string {
	return &s
}
