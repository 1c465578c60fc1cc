package report

import (
	"bytes"
	"encoding/csv"
	"io"

	"github.com/nao1215/nymix/internal/model"
)

// delimitedHeader is the header row of CSV and TSV reports.
var delimitedHeader = []string{"name", "kind", "target", "status", "detail"}

// DelimitedWriter outputs one row per record, separated by comma or tab.
type DelimitedWriter struct {
	baseWriter
	comma rune
}

// NewDelimitedWriter creates a DelimitedWriter using comma as the field separator.
func NewDelimitedWriter(output io.Writer, comma rune) *DelimitedWriter {
	return &DelimitedWriter{
		baseWriter: newBaseWriter(output),
		comma:      comma,
	}
}

// Write outputs every record, grouped by name, in result-set order.
func (w *DelimitedWriter) Write(rs *model.ResultSet) (int, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = w.comma

	if err := cw.Write(delimitedHeader); err != nil {
		return 0, err
	}
	for _, group := range rs.Groups() {
		for _, r := range group.Records {
			row := []string{r.Name, string(r.Kind), r.Target, r.Status.String(), r.Detail}
			if err := cw.Write(row); err != nil {
				return 0, err
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
