package tokenizer

// Encoder converts text into token ids.
type Encoder interface {
	// Encode returns the token ids for text. It never fails: every byte
	// sequence has an encoding.
	Encode(text string) []int
}

// Decoder converts token ids back into text.
type Decoder interface {
	// Decode returns the text for ids. Bytes that do not form valid UTF-8
	// are replaced with U+FFFD rather than reported as errors.
	Decode(ids []int) (string, error)
}

// Codec both encodes and decodes with a fixed vocabulary.
type Codec interface {
	Encoder
	Decoder
}

// Tokenizer is the full contract a trainable tokenizer implements.
type Tokenizer interface {
	Codec

	// Train learns a vocabulary of at most vocabSize ids from corpus and
	// returns the corpus encoded with the learned vocabulary.
	Train(corpus string, vocabSize int) ([]int, error)

	// Save persists the learned vocabulary to path.
	Save(path string) error

	// Load replaces the tokenizer's state with the vocabulary stored at path.
	Load(path string) error

	// VocabSize returns the number of ids currently defined.
	VocabSize() int
}
