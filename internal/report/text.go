package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/nymix/internal/model"
)

// textRule is the width of section separators.
const textRule = 70

// TextWriter outputs human-readable text reports for terminal display.
// Plain ASCII framing keeps the output usable when piped to files.
type TextWriter struct {
	baseWriter
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer) *TextWriter {
	return &TextWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the result set in human-readable format.
func (w *TextWriter) Write(rs *model.ResultSet) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, rs)
	w.writeNames(&sb, rs)
	w.writeSummary(&sb, rs)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the run information.
func (w *TextWriter) writeHeader(sb *strings.Builder, rs *model.ResultSet) {
	sb.WriteString(strings.Repeat("=", textRule))
	sb.WriteString("\n")
	sb.WriteString("                      NYMIX AVAILABILITY REPORT\n")
	sb.WriteString(strings.Repeat("=", textRule))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Run ID:     %s\n", rs.ID)
	fmt.Fprintf(sb, "Checked At: %s\n", rs.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Targets:    %s\n", targetLabels(rs.Targets()))
	sb.WriteString("\n")
}

// writeNames writes one block per name with one line per target.
func (w *TextWriter) writeNames(sb *strings.Builder, rs *model.ResultSet) {
	width := 0
	for _, t := range rs.Targets() {
		width = max(width, len(t.Label()))
	}

	for _, g := range rs.Groups() {
		sb.WriteString(g.Name)
		sb.WriteString("\n")
		for _, r := range g.Records {
			fmt.Fprintf(sb, "  %-*s  [%s] %s", width, r.TargetRef().Label(), statusIndicator(r.Status), r.Status)
			if r.Detail != "" {
				fmt.Fprintf(sb, " (%s)", r.Detail)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
}

// writeSummary writes the status counters.
func (w *TextWriter) writeSummary(sb *strings.Builder, rs *model.ResultSet) {
	summary := rs.Summary()

	sb.WriteString(strings.Repeat("-", textRule))
	sb.WriteString("\n")
	fmt.Fprintf(sb, "available: %d  taken: %d  unknown: %d  total: %d\n",
		summary.Available, summary.Taken, summary.Unknown, summary.Total())
	sb.WriteString(strings.Repeat("-", textRule))
	sb.WriteString("\n")
}

// statusIndicator returns an ASCII marker for a status.
func statusIndicator(s model.Status) string {
	switch s {
	case model.StatusAvailable:
		return "+"
	case model.StatusTaken:
		return "x"
	default:
		return "?"
	}
}
