package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/bpekit/bpe"
	"github.com/randalmurphal/bpekit/corpus"
)

// ErrInvalidConfig indicates a configuration value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// ErrUnsupportedFormat indicates a config file extension that is not
// .yaml, .yml, .toml or .json.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// DefaultVocabSize is the vocabulary size used when none is configured.
const DefaultVocabSize = 512

// DefaultModelPath is where models are saved and loaded by default.
const DefaultModelPath = "bpe.json"

// Config holds settings for training and using a BPE model from the CLI.
type Config struct {
	// Corpus lists training text files, read in order and concatenated.
	Corpus []string `json:"corpus" yaml:"corpus" toml:"corpus"`

	// VocabSize is the requested vocabulary size, at least 256.
	// Training may stop short of it.
	VocabSize int `json:"vocab_size" yaml:"vocab_size" toml:"vocab_size"`

	// ModelPath is the persisted model file.
	ModelPath string `json:"model_path" yaml:"model_path" toml:"model_path"`

	// Normalize applies Unicode normalization to the corpus.
	// Values: "" (none), "nfc", "nfkc".
	Normalize string `json:"normalize" yaml:"normalize" toml:"normalize"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`

	// LogJSON switches log output to JSON lines.
	LogJSON bool `json:"log_json" yaml:"log_json" toml:"log_json"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		VocabSize: DefaultVocabSize,
		ModelPath: DefaultModelPath,
		LogLevel:  "info",
	}
}

// LoadFile reads path into a copy of c, choosing the decoder from the file
// extension. Fields absent from the file keep their current values.
func (c Config) LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &c)
	case ".toml":
		_, err = toml.Decode(string(data), &c)
	case ".json":
		err = json.Unmarshal(data, &c)
	default:
		return c, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return c, fmt.Errorf("parse config %s: %w", path, err)
	}
	return c, nil
}

// LoadFromEnv populates config fields from environment variables.
// Environment variables use the BPEKIT_ prefix and take precedence over
// existing values. Unparseable numbers and booleans are ignored.
//
// Supported variables:
//   - BPEKIT_CORPUS: comma-separated corpus paths
//   - BPEKIT_VOCAB_SIZE: vocabulary size
//   - BPEKIT_MODEL_PATH: model file
//   - BPEKIT_NORMALIZE: normalization form
//   - BPEKIT_LOG_LEVEL: log level
//   - BPEKIT_LOG_JSON: "true" for JSON logs
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("BPEKIT_CORPUS"); v != "" {
		c.Corpus = splitList(v)
	}
	if v := os.Getenv("BPEKIT_VOCAB_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.VocabSize = n
		}
	}
	if v := os.Getenv("BPEKIT_MODEL_PATH"); v != "" {
		c.ModelPath = v
	}
	if v := os.Getenv("BPEKIT_NORMALIZE"); v != "" {
		c.Normalize = v
	}
	if v := os.Getenv("BPEKIT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("BPEKIT_LOG_JSON"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogJSON = b
		}
	}
}

// FromEnv creates a Config from environment variables with defaults.
func FromEnv() Config {
	cfg := Default()
	cfg.LoadFromEnv()
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.VocabSize < bpe.NumBytes {
		return fmt.Errorf("%w: vocab_size must be >= %d, got %d", ErrInvalidConfig, bpe.NumBytes, c.VocabSize)
	}
	if c.ModelPath == "" {
		return fmt.Errorf("%w: model_path is required", ErrInvalidConfig)
	}
	if _, err := corpus.ParseForm(c.Normalize); err != nil {
		return fmt.Errorf("%w: normalize: %v", ErrInvalidConfig, err)
	}
	return nil
}

// NormalizeForm returns the parsed normalization form.
func (c *Config) NormalizeForm() corpus.Form {
	f, _ := corpus.ParseForm(c.Normalize)
	return f
}

// WithCorpus returns a copy of the config with the given corpus paths.
func (c Config) WithCorpus(paths ...string) Config {
	c.Corpus = append([]string(nil), paths...)
	return c
}

// WithVocabSize returns a copy of the config with the given vocabulary size.
func (c Config) WithVocabSize(n int) Config {
	c.VocabSize = n
	return c
}

// WithModelPath returns a copy of the config with the given model path.
func (c Config) WithModelPath(path string) Config {
	c.ModelPath = path
	return c
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
