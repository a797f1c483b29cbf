// Writer implementation printing progress rows to STDOUT
package match

import (
	"encoding/json"
	"fmt"
)

// StdoutWriter prints progress rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// Write outputs a single progress row.
func (w *StdoutWriter) Write(row ProgressRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteBench outputs a benchmark sample.
func (w *StdoutWriter) WriteBench(s BenchSample) error {
	data, _ := json.Marshal(s)
	fmt.Println(string(data))
	return nil
}
