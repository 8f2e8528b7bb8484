package bpe

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// WriteTo writes the merge table as a JSON object mapping each merge id
// (as a decimal string) to its [left, right] pair, in ascending id order.
//
//	{
//	  "256": [97, 97],
//	  "257": [256, 98]
//	}
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: bufio.NewWriter(w)}
	if len(m.merges) == 0 {
		fmt.Fprint(cw, "{}\n")
	} else {
		fmt.Fprint(cw, "{\n")
		for i, p := range m.merges {
			sep := ","
			if i == len(m.merges)-1 {
				sep = ""
			}
			fmt.Fprintf(cw, "  %q: [%d, %d]%s\n", strconv.Itoa(NumBytes+i), p.Left, p.Right, sep)
		}
		fmt.Fprint(cw, "}\n")
	}
	if cw.err != nil {
		return cw.n, fmt.Errorf("write model: %w", cw.err)
	}
	if err := cw.w.Flush(); err != nil {
		return cw.n, fmt.Errorf("write model: %w", err)
	}
	return cw.n, nil
}

// ReadFrom replaces the model's merges with those read from r and rebuilds
// the vocabulary by replaying them in ascending id order. On error the model
// is left unchanged.
//
// Ids must form the contiguous range NumBytes..NumBytes+n-1 and each pair may
// only reference ids defined before it; anything else fails with
// ErrCorruptModel.
func (m *Model) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	n := int64(len(data))
	if err != nil {
		return n, fmt.Errorf("read model: %w", err)
	}

	var raw map[string][]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return n, newError("load", ErrCorruptModel, "decode json: %v", err)
	}

	pairs, err := orderMerges(raw)
	if err != nil {
		return n, err
	}

	next := &Model{logger: m.logger}
	next.reset()
	for _, p := range pairs {
		next.addMerge(p)
	}

	m.merges, m.blob, m.off = next.merges, next.blob, next.off
	m.stats = TrainStats{}
	return n, nil
}

// orderMerges validates a decoded merge document and returns its pairs
// indexed by id - NumBytes.
func orderMerges(raw map[string][]int) ([]Pair, error) {
	ids := make([]int, 0, len(raw))
	byID := make(map[int][]int, len(raw))
	for key, pair := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, newError("load", ErrCorruptModel, "key %q is not an integer id", key)
		}
		if id < NumBytes {
			return nil, newError("load", ErrCorruptModel, "id %d collides with the byte alphabet", id)
		}
		if _, dup := byID[id]; dup {
			return nil, newError("load", ErrCorruptModel, "id %d appears more than once", id)
		}
		if len(pair) != 2 {
			return nil, newError("load", ErrCorruptModel, "id %d has %d components, want 2", id, len(pair))
		}
		byID[id] = pair
		ids = append(ids, id)
	}
	sort.Ints(ids)

	pairs := make([]Pair, len(ids))
	for i, id := range ids {
		if want := NumBytes + i; id != want {
			return nil, newError("load", ErrCorruptModel, "missing id %d", want)
		}
		p := Pair{Left: byID[id][0], Right: byID[id][1]}
		if p.Left < 0 || p.Left >= id || p.Right < 0 || p.Right >= id {
			return nil, newError("load", ErrCorruptModel,
				"id %d merges (%d, %d) which are not defined before it", id, p.Left, p.Right)
		}
		pairs[i] = p
	}
	return pairs, nil
}

// Save writes the model to path. The file is written to a temporary sibling
// and renamed into place so readers never observe a partial model.
func (m *Model) Save(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := m.WriteTo(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp model file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename model file: %w", err)
	}
	return nil
}

// Load replaces the model's state with the model stored at path.
func (m *Model) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	if _, err := m.ReadFrom(f); err != nil {
		return err
	}
	return nil
}

// LoadFile creates a model from the file at path.
func LoadFile(path string, opts ...Option) (*Model, error) {
	m := New(opts...)
	if err := m.Load(path); err != nil {
		return nil, err
	}
	return m, nil
}

type countingWriter struct {
	w   *bufio.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
