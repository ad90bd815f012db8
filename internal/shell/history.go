package shell

import (
	"bytes"
	"io"
	"os"
)

// HistoryStore reads and writes line history. *liner.State satisfies it.
type HistoryStore interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

// LoadHistory reads history entries from path.
func LoadHistory(h HistoryStore, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = h.ReadHistory(f)
	return err
}

// SaveHistory writes at most limit of the newest history entries to path.
func SaveHistory(h HistoryStore, path string, limit int) error {
	var buf bytes.Buffer
	if _, err := h.WriteHistory(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, lastLines(buf.Bytes(), limit), 0o600)
}

// lastLines keeps the final n newline-terminated lines of data.
func lastLines(data []byte, n int) []byte {
	if n <= 0 {
		return data
	}
	lines := bytes.SplitAfter(data, []byte("\n"))
	if len(lines) > 0 && len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	if len(lines) <= n {
		return data
	}
	return bytes.Join(lines[len(lines)-n:], nil)
}
