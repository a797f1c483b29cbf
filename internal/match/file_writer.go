package match

import (
	"encoding/json"
	"os"
)

// FileWriter appends progress rows and bench samples to JSONL files. The
// bench path may be empty to skip that log.
type FileWriter struct {
	progFile  *os.File
	benchFile *os.File
	progEnc   *json.Encoder
	benchEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter writing to progressPath and, when
// benchPath is non-empty, benchPath.
func NewFileWriter(progressPath, benchPath string) (*FileWriter, error) {
	pf, err := os.Create(progressPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{progFile: pf, progEnc: json.NewEncoder(pf)}
	if benchPath != "" {
		bf, err := os.Create(benchPath)
		if err != nil {
			pf.Close()
			return nil, err
		}
		fw.benchFile = bf
		fw.benchEnc = json.NewEncoder(bf)
	}
	return fw, nil
}

// Write appends a progress row.
func (w *FileWriter) Write(row ProgressRow) error {
	return w.progEnc.Encode(row)
}

// WriteBench appends a benchmark sample.
func (w *FileWriter) WriteBench(s BenchSample) error {
	if w.benchEnc == nil {
		return nil
	}
	return w.benchEnc.Encode(s)
}

// Close closes the underlying files.
func (w *FileWriter) Close() error {
	err := w.progFile.Close()
	if w.benchFile != nil {
		if cerr := w.benchFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
