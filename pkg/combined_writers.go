package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter fans a write out to all writers, e.g. STDOUT and the log file.
// A failing writer does not stop the others, all errors are combined.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	return &CombinedWriter{
		Writers: writers,
	}
}

func (cw *CombinedWriter) Write(p []byte) (n int, err error) {
	written := false
	for _, w := range cw.Writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		written = true
	}
	if written {
		n = len(p)
	}
	return n, err
}
