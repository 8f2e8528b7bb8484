package corpus

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmpty is returned by ReadFiles when no paths are given.
var ErrEmpty = errors.New("no corpus files")

// ErrUnknownForm is returned for an unrecognized normalization form name.
var ErrUnknownForm = errors.New("unknown normalization form")

// Form selects Unicode normalization applied while reading.
type Form string

const (
	// FormNone leaves text as decoded.
	FormNone Form = ""

	// FormNFC applies canonical composition.
	FormNFC Form = "nfc"

	// FormNFKC applies compatibility composition.
	FormNFKC Form = "nfkc"
)

// ParseForm converts a form name ("", "none", "nfc", "nfkc") to a Form.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FormNone, nil
	case "nfc":
		return FormNFC, nil
	case "nfkc":
		return FormNFKC, nil
	default:
		return FormNone, fmt.Errorf("%w: %q", ErrUnknownForm, s)
	}
}

type options struct {
	form Form
}

// Option configures reading.
type Option func(*options)

// WithNormalization applies the given normalization form to the text.
func WithNormalization(f Form) Option {
	return func(o *options) {
		o.form = f
	}
}

// Read decodes r into UTF-8 text. A leading byte order mark selects UTF-8,
// UTF-16LE or UTF-16BE and is stripped; without one the input is taken as
// UTF-8 and invalid bytes become U+FFFD.
func Read(r io.Reader, opts ...Option) (string, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	var t transform.Transformer = unicode.BOMOverride(unicode.UTF8.NewDecoder())
	switch o.form {
	case FormNone:
	case FormNFC:
		t = transform.Chain(t, norm.NFC)
	case FormNFKC:
		t = transform.Chain(t, norm.NFKC)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownForm, o.form)
	}

	data, err := io.ReadAll(transform.NewReader(r, t))
	if err != nil {
		return "", fmt.Errorf("decode corpus: %w", err)
	}
	return string(data), nil
}

// ReadFile reads a single corpus file.
func ReadFile(path string, opts ...Option) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	text, err := Read(f, opts...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// ReadFiles reads each file in order and concatenates the results with no
// separator.
func ReadFiles(paths []string, opts ...Option) (string, error) {
	if len(paths) == 0 {
		return "", ErrEmpty
	}

	var b strings.Builder
	for _, p := range paths {
		text, err := ReadFile(p, opts...)
		if err != nil {
			return "", err
		}
		slog.Debug("corpus file read", slog.String("path", p), slog.Int("bytes", len(text)))
		b.WriteString(text)
	}
	return b.String(), nil
}
