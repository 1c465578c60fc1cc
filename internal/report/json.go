package report

import (
	"io"

	"github.com/nao1215/nymix/internal/export"
	"github.com/nao1215/nymix/internal/model"
)

// JSONWriter outputs the result set in the export file layout, so its
// output can be fed back to "nymix report".
type JSONWriter struct {
	baseWriter
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the result set in JSON format.
func (w *JSONWriter) Write(rs *model.ResultSet) (int, error) {
	// Marshal sets the checksum; work on a copy to leave rs untouched.
	c := *rs
	data, err := export.Marshal(&c)
	if err != nil {
		return 0, err
	}
	return w.output.Write(data)
}
