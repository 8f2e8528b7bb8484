// Package tokenizer defines the contract shared by trainable tokenizers.
//
// Implementations live in their own packages (see bpe). Consumers that only
// need one direction should depend on the narrower interfaces:
//
//   - Encoder: text to token ids (used by tokens.EncoderCounter)
//   - Decoder: token ids to text
//   - Codec: Encoder + Decoder (used by truncate)
//   - Tokenizer: Codec + Train, Save, Load and VocabSize
//
// # Usage
//
//	var tok tokenizer.Tokenizer = bpe.New()
//	if _, err := tok.Train(corpus, 1024); err != nil {
//	    return err
//	}
//	ids := tok.Encode("hello world")
//	text, err := tok.Decode(ids)
package tokenizer
