// Package corpus reads training text for BPE models.
//
// Files may be UTF-8 (with or without a byte order mark) or UTF-16 with a
// byte order mark; everything is returned as UTF-8. Normalization is off by
// default because it changes the bytes a model learns from.
//
//	text, err := corpus.ReadFiles([]string{"a.txt", "b.txt"},
//	    corpus.WithNormalization(corpus.FormNFC))
package corpus
