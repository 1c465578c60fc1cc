package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/nymix/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the result set in Markdown format.
func (w *MarkdownWriter) Write(rs *model.ResultSet) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, rs)
	w.writeSummary(md, rs)
	w.writeMatrix(md, rs)
	w.writeDetails(md, rs)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, rs *model.ResultSet) {
	md.H1("Nymix Availability Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + rs.ID + "`"},
			{"Checked At", rs.CreatedAt.UTC().Format("2006-01-02 15:04:05 MST")},
			{"Names", strconv.Itoa(len(rs.Groups()))},
			{"Targets", escapeCell(targetLabels(rs.Targets()))},
			{"Lookups", strconv.Itoa(len(rs.Records))},
		},
	})
	md.PlainText("")
}

// writeSummary writes the status summary section.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, rs *model.ResultSet) {
	summary := rs.Summary()

	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Status", "Count"},
		Rows: [][]string{
			{model.StatusAvailable.Symbol() + " Available", strconv.Itoa(summary.Available)},
			{model.StatusTaken.Symbol() + " Taken", strconv.Itoa(summary.Taken)},
			{model.StatusUnknown.Symbol() + " Unknown", strconv.Itoa(summary.Unknown)},
			{"**Total**", "**" + strconv.Itoa(summary.Total()) + "**"},
		},
	})
	md.PlainText("")

	if summary.Total() > 0 {
		w.writePieChart(md, summary)
	}
	w.writeAlert(md, rs, summary)
}

// writePieChart writes a mermaid pie chart for the status distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary model.Summary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Availability"),
		piechart.WithShowData(true),
	)

	for _, status := range model.Statuses {
		if n := summary.Count(status); n > 0 {
			chart.LabelAndIntValue(status.String(), uint64(n)) //nolint:gosec // Counts are never negative
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert describing the overall outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, rs *model.ResultSet, summary model.Summary) {
	free := fullyAvailable(rs)
	switch {
	case summary.Total() == 0:
		md.Note("The result set contains no records.")
	case len(free) > 0:
		md.Tip("Available on every checked target: " + strings.Join(free, ", "))
	case summary.Available == 0 && summary.Unknown == 0:
		md.Cautionf("Every lookup is taken. %d record(s) checked.", summary.Total())
	default:
		md.Note("No name is available on every checked target.")
	}
	if summary.Unknown > 0 {
		md.PlainText("")
		md.Warningf("%d lookup(s) could not be decided. See the details below.", summary.Unknown)
	}
	md.PlainText("")
}

// writeMatrix writes one row per name and one column per target.
func (w *MarkdownWriter) writeMatrix(md *markdown.Markdown, rs *model.ResultSet) {
	md.H2("Availability")
	md.PlainText("")

	targets := rs.Targets()
	if len(rs.Records) == 0 {
		md.PlainText("No lookups recorded.")
		md.PlainText("")
		return
	}

	header := make([]string, 0, len(targets)+1)
	header = append(header, "Name")
	for _, t := range targets {
		header = append(header, escapeCell(t.Label()))
	}

	groups := rs.Groups()
	rows := make([][]string, len(groups))
	for i, g := range groups {
		row := make([]string, 0, len(targets)+1)
		row = append(row, "`"+escapeCell(g.Name)+"`")
		for _, t := range targets {
			r, ok := cell(g, t)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, r.Status.Symbol()+" "+r.Status.String())
		}
		rows[i] = row
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDetails writes the per-name record tables.
func (w *MarkdownWriter) writeDetails(md *markdown.Markdown, rs *model.ResultSet) {
	groups := rs.Groups()
	if len(groups) == 0 {
		return
	}

	md.H2("Details")
	md.PlainText("")

	for _, g := range groups {
		md.H3(g.Name)
		md.PlainText("")

		rows := make([][]string, len(g.Records))
		for i, r := range g.Records {
			detail := r.Detail
			if detail == "" {
				detail = "-"
			}
			rows[i] = []string{
				escapeCell(r.TargetRef().Label()),
				r.Status.Symbol() + " " + r.Status.String(),
				escapeCell(detail),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Target", "Status", "Detail"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [nymix](https://github.com/nao1215/nymix)*")
}

// fullyAvailable returns the names available on every target they were
// checked against, in result-set order.
func fullyAvailable(rs *model.ResultSet) []string {
	names := make([]string, 0)
	for _, g := range rs.Groups() {
		free := len(g.Records) > 0
		for _, r := range g.Records {
			if r.Status != model.StatusAvailable {
				free = false
				break
			}
		}
		if free {
			names = append(names, g.Name)
		}
	}
	return names
}

// targetLabels joins target labels with commas.
func targetLabels(targets []model.Target) string {
	labels := make([]string, len(targets))
	for i, t := range targets {
		labels[i] = t.Label()
	}
	return strings.Join(labels, ", ")
}

// escapeCell keeps free text from breaking a table row.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
