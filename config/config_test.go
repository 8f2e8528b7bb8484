package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/bpekit/corpus"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultVocabSize, cfg.VocabSize)
	assert.Equal(t, DefaultModelPath, cfg.ModelPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Corpus)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "bpekit.yaml",
			content: `corpus:
  - a.txt
  - b.txt
vocab_size: 1024
model_path: out/model.json
normalize: nfc
log_json: true
`,
		},
		{
			name: "toml",
			file: "bpekit.toml",
			content: `corpus = ["a.txt", "b.txt"]
vocab_size = 1024
model_path = "out/model.json"
normalize = "nfc"
log_json = true
`,
		},
		{
			name:    "json",
			file:    "bpekit.json",
			content: `{"corpus": ["a.txt", "b.txt"], "vocab_size": 1024, "model_path": "out/model.json", "normalize": "nfc", "log_json": true}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			cfg, err := Default().LoadFile(path)
			require.NoError(t, err)

			assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Corpus)
			assert.Equal(t, 1024, cfg.VocabSize)
			assert.Equal(t, "out/model.json", cfg.ModelPath)
			assert.Equal(t, corpus.FormNFC, cfg.NormalizeForm())
			assert.True(t, cfg.LogJSON)
			// Not in the file, so the default survives.
			assert.Equal(t, "info", cfg.LogLevel)
		})
	}
}

func TestConfig_LoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Default().LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	ini := filepath.Join(dir, "bpekit.ini")
	require.NoError(t, os.WriteFile(ini, []byte("x=1"), 0644))
	_, err = Default().LoadFile(ini)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("vocab_size = ["), 0644))
	_, err = Default().LoadFile(bad)
	assert.Error(t, err)
}

func TestConfig_LoadFromEnv(t *testing.T) {
	t.Setenv("BPEKIT_CORPUS", "a.txt, b.txt,,")
	t.Setenv("BPEKIT_VOCAB_SIZE", "2048")
	t.Setenv("BPEKIT_MODEL_PATH", "env.json")
	t.Setenv("BPEKIT_NORMALIZE", "nfkc")
	t.Setenv("BPEKIT_LOG_LEVEL", "debug")
	t.Setenv("BPEKIT_LOG_JSON", "1")

	cfg := FromEnv()

	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Corpus)
	assert.Equal(t, 2048, cfg.VocabSize)
	assert.Equal(t, "env.json", cfg.ModelPath)
	assert.Equal(t, corpus.FormNFKC, cfg.NormalizeForm())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
}

func TestConfig_LoadFromEnv_IgnoresBadNumbers(t *testing.T) {
	t.Setenv("BPEKIT_VOCAB_SIZE", "lots")
	t.Setenv("BPEKIT_LOG_JSON", "maybe")

	cfg := FromEnv()
	assert.Equal(t, DefaultVocabSize, cfg.VocabSize)
	assert.False(t, cfg.LogJSON)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: Default()},
		{name: "minimum vocab", cfg: Default().WithVocabSize(256)},
		{name: "vocab below alphabet", cfg: Default().WithVocabSize(255), wantErr: true},
		{name: "empty model path", cfg: Default().WithModelPath(""), wantErr: true},
		{name: "unknown normalization", cfg: Config{VocabSize: 300, ModelPath: "m.json", Normalize: "nfd"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestConfig_WithCorpus(t *testing.T) {
	paths := []string{"a.txt"}
	cfg := Default().WithCorpus(paths...)
	paths[0] = "changed"

	assert.Equal(t, []string{"a.txt"}, cfg.Corpus)
}
