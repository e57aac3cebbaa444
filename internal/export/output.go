package export

import (
	"io"
	"os"
	"strconv"
)

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Create opens path for writing. "-" selects stdout, which is left open on
// Close.
func Create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
