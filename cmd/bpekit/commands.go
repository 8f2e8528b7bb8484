package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/randalmurphal/bpekit/bpe"
	"github.com/randalmurphal/bpekit/config"
	"github.com/randalmurphal/bpekit/corpus"
	"github.com/randalmurphal/bpekit/internal/logging"
	"github.com/randalmurphal/bpekit/reload"
	"github.com/randalmurphal/bpekit/tokenizer"
)

// commonFlags are accepted by every command that touches a model.
type commonFlags struct {
	configPath string
	modelPath  string
	logLevel   string
	logJSON    bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "config file (.yaml, .toml or .json)")
	fs.StringVar(&c.modelPath, "model", "", "model file (default "+config.DefaultModelPath+")")
	fs.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&c.logJSON, "log-json", false, "write logs as JSON lines")
}

// resolve layers defaults, environment, the config file and explicitly set
// flags, in that order.
func (c *commonFlags) resolve(fs *flag.FlagSet) (config.Config, error) {
	cfg := config.FromEnv()
	if c.configPath != "" {
		var err error
		if cfg, err = cfg.LoadFile(c.configPath); err != nil {
			return cfg, err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.ModelPath = c.modelPath
		case "log-level":
			cfg.LogLevel = c.logLevel
		case "log-json":
			cfg.LogJSON = c.logJSON
		}
	})
	return cfg, nil
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// setupLogger installs the configured logger as the slog default and returns it.
func setupLogger(cfg config.Config, stderr io.Writer) *slog.Logger {
	logger := logging.New(stderr, cfg.LogJSON, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)
	return logger
}

func runTrain(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("train", stderr)
	var common commonFlags
	common.register(fs)
	corpusList := fs.String("corpus", "", "comma-separated corpus files")
	vocabSize := fs.Int("vocab-size", 0, "target vocabulary size (>= 256)")
	normalize := fs.String("normalize", "", "normalize corpus: nfc or nfkc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "corpus":
			cfg = cfg.WithCorpus(strings.Split(*corpusList, ",")...)
		case "vocab-size":
			cfg = cfg.WithVocabSize(*vocabSize)
		case "normalize":
			cfg.Normalize = *normalize
		}
	})
	// Positional arguments are extra corpus files.
	cfg.Corpus = append(cfg.Corpus, fs.Args()...)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.Corpus) == 0 {
		return fmt.Errorf("%w: no corpus files", config.ErrInvalidConfig)
	}

	logger := setupLogger(cfg, stderr)

	text, err := corpus.ReadFiles(cfg.Corpus, corpus.WithNormalization(cfg.NormalizeForm()))
	if err != nil {
		return err
	}

	m := bpe.New(bpe.WithLogger(logger))
	if _, err := m.Train(text, cfg.VocabSize); err != nil {
		return err
	}
	if err := m.Save(cfg.ModelPath); err != nil {
		return err
	}

	stats := m.LastTrainStats()
	fmt.Fprintf(stdout, "trained %d merges (vocab %d, stop %s, ratio %.2f), saved to %s\n",
		stats.Merges, m.VocabSize(), stats.Stop, stats.Ratio(), cfg.ModelPath)
	return nil
}

func runEncode(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("encode", stderr)
	var common commonFlags
	common.register(fs)
	watch := fs.Bool("watch", false, "reload the model when its file changes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, stderr)

	current, stop, err := openModel(ctx, cfg.ModelPath, *watch, logger)
	if err != nil {
		return err
	}
	defer stop()

	encode := func(text string) error {
		_, err := fmt.Fprintln(stdout, formatIDs(current().Encode(text)))
		return err
	}

	if fs.NArg() > 0 {
		return encode(strings.Join(fs.Args(), " "))
	}
	return eachLine(stdin, encode)
}

func runDecode(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := newFlagSet("decode", stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, stderr)

	m, err := bpe.LoadFile(cfg.ModelPath, bpe.WithLogger(logger))
	if err != nil {
		return err
	}

	decode := func(fields []string) error {
		ids, err := parseIDs(fields)
		if err != nil {
			return err
		}
		text, err := m.Decode(ids)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, text)
		return err
	}

	if fs.NArg() > 0 {
		return decode(fs.Args())
	}
	return eachLine(stdin, func(line string) error {
		return decode(strings.Fields(line))
	})
}

func runInspect(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("inspect", stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.resolve(fs)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, stderr)

	m, err := bpe.LoadFile(cfg.ModelPath, bpe.WithLogger(logger))
	if err != nil {
		return err
	}

	w := bufio.NewWriter(stdout)
	fmt.Fprintf(w, "vocab_size %d\nmerges %d\n", m.VocabSize(), m.NumMerges())
	for _, mg := range m.Merges() {
		b, _ := m.TokenBytes(mg.ID)
		fmt.Fprintf(w, "%d = %d %d %s\n", mg.ID, mg.Left, mg.Right, strconv.Quote(string(b)))
	}
	return w.Flush()
}

func runSchema(stdout io.Writer) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(bpe.Schema())
}

// openModel loads the model at path. With watch set it also starts a reload
// watcher; stop ends it and waits for it to exit.
func openModel(ctx context.Context, path string, watch bool, logger *slog.Logger) (current func() tokenizer.Encoder, stop func(), err error) {
	opts := []bpe.Option{bpe.WithLogger(logger)}
	if !watch {
		m, err := bpe.LoadFile(path, opts...)
		if err != nil {
			return nil, nil, err
		}
		return func() tokenizer.Encoder { return m }, func() {}, nil
	}

	w, err := reload.New(path, reload.WithModelOptions(opts...))
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("model watcher stopped", slog.Any("error", err))
		}
	}()

	stop = func() {
		cancel()
		wg.Wait()
	}
	return func() tokenizer.Encoder { return w.Current() }, stop, nil
}

func eachLine(r io.Reader, fn func(string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		if err := fn(sc.Text()); err != nil {
			return err
		}
	}
	return sc.Err()
}

func parseIDs(fields []string) ([]int, error) {
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		id, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("token id %q: %w", f, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatIDs(ids []int) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}
