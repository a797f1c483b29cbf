package match

// MultiWriter fans progress rows out to multiple writers.
type MultiWriter struct {
	writers []ProgressWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ws ...ProgressWriter) *MultiWriter {
	return &MultiWriter{writers: ws}
}

// Write sends a progress row to all writers.
func (mw *MultiWriter) Write(row ProgressRow) error {
	for _, w := range mw.writers {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBench sends a benchmark sample to every writer that records them.
func (mw *MultiWriter) WriteBench(s BenchSample) error {
	for _, w := range mw.writers {
		if bw, ok := w.(BenchWriter); ok {
			if err := bw.WriteBench(s); err != nil {
				return err
			}
		}
	}
	return nil
}
