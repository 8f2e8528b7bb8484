// Package bpekit trains and runs byte-level byte-pair-encoding tokenizers.
//
// Each subpackage can be used independently:
//
//   - tokenizer: Encoder, Decoder and Tokenizer interfaces
//   - bpe: the byte-level BPE model (train, encode, decode, save, load)
//   - corpus: reading and normalizing training text
//   - reload: hot-reloading a saved model when its file changes
//   - tokens: token counting and budget management
//   - truncate: token-aware text truncation
//   - config: YAML/TOML/JSON and environment configuration for the CLI
//
// The bpekit command in cmd/bpekit wires these together.
//
// # Quick Start
//
// Training and round-tripping text:
//
//	import "github.com/randalmurphal/bpekit/bpe"
//	m := bpe.New()
//	ids, _ := m.Train(text, 1024)
//	out, _ := m.Decode(ids)
//
// Persisting a model:
//
//	_ = m.Save("bpe.json")
//	loaded, _ := bpe.LoadFile("bpe.json")
//
// Counting tokens against a budget:
//
//	import "github.com/randalmurphal/bpekit/tokens"
//	budget := tokens.NewBudget(4096, tokens.NewEncoderCounter(loaded))
//	budget.Add(prompt)
package bpekit
