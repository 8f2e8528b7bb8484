// Package bpe implements byte-level Byte-Pair Encoding.
//
// A Model starts with the 256 single-byte ids. Training repeatedly counts
// adjacent id pairs in the corpus, merges the most frequent pair into a new
// id, and rewrites the corpus, until the requested vocabulary size is reached
// or no pair occurs more than once.
//
// # Training
//
//	m := bpe.New()
//	ids, err := m.Train(corpus, 1024)
//	if err != nil {
//	    return err // bpe.ErrInvalidArgument when vocabSize < 256
//	}
//	stats := m.LastTrainStats()
//	fmt.Printf("%d merges, %.2fx compression\n", stats.Merges, stats.Ratio())
//
// Ties between equally frequent pairs go to the pair seen first in the
// current sequence, so training is reproducible for a given corpus.
//
// # Encoding and Decoding
//
// Encode replays merges in the order they were learned. Decode concatenates
// the bytes of each id and replaces invalid UTF-8 with U+FFFD, so
// Decode(Encode(s)) == s for any valid UTF-8 string s:
//
//	ids := m.Encode("hello")
//	text, err := m.Decode(ids) // bpe.ErrInvalidToken for unknown ids
//
// # Pair Counting
//
// CountPairs is exported for inspection and tooling:
//
//	counts := bpe.CountPairs([]int{97, 98, 97, 98})
//	p, n, _ := counts.Most() // {97 98}, 2
//
// # Persistence
//
// Save and Load use a JSON object keyed by merge id:
//
//	{"256": [97, 97], "257": [256, 98]}
//
// Load rebuilds the vocabulary by replaying merges in ascending id order and
// rejects documents with missing ids or forward references with
// ErrCorruptModel. Schema returns the JSON Schema of the document.
package bpe
