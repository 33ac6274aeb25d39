// Package output renders command results for terminals, documents and
// scripts.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// OutputMode selects how results are written.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto" // table on a TTY, markdown otherwise
	ModeTable    OutputMode = "table"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
	ModeCSV      OutputMode = "csv"
)

// Mode parses a mode name. "text" and "md" are accepted as aliases.
func Mode(name string) OutputMode {
	switch strings.ToLower(name) {
	case "text", "table":
		return ModeTable
	case "md", "markdown":
		return ModeMarkdown
	case "json":
		return ModeJSON
	case "csv":
		return ModeCSV
	default:
		return ModeAuto
	}
}

// Renderer writes results in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	isTTY  bool
	mode   OutputMode
	styles *Styles
}

// NewRenderer creates a Renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode OutputMode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a Renderer with an explicit TTY state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode OutputMode) *Renderer {
	r := &Renderer{out: out, errOut: errOut, isTTY: isTTY, mode: mode}
	r.styles = NewStyles(errOut, r.Styled())
	return r
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Mode returns the effective mode with auto resolved.
func (r *Renderer) Mode() OutputMode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeTable
	}
	return ModeMarkdown
}

// Styled reports whether output is decorated: terminal table mode only.
func (r *Renderer) Styled() bool {
	return r.isTTY && r.Mode() == ModeTable
}

// Out returns the result writer.
func (r *Renderer) Out() io.Writer { return r.out }

func (r *Renderer) quiet() bool {
	m := r.Mode()
	return m == ModeJSON || m == ModeCSV
}

// Infof writes a status line to the error stream. It is suppressed in
// machine-readable modes.
func (r *Renderer) Infof(format string, args ...any) {
	if r.quiet() {
		return
	}
	_, _ = fmt.Fprintln(r.errOut, r.styles.Info.Render(fmt.Sprintf(format, args...)))
}

// Headerf writes a section heading to the error stream. It is suppressed in
// machine-readable modes.
func (r *Renderer) Headerf(format string, args ...any) {
	if r.quiet() {
		return
	}
	_, _ = fmt.Fprintln(r.errOut, r.styles.Header.Render(fmt.Sprintf(format, args...)))
}

// Warnf writes a warning line to the error stream, in every mode.
func (r *Renderer) Warnf(format string, args ...any) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render(fmt.Sprintf(format, args...)))
}

// Successf writes a result line to the output stream. Machine-readable
// modes get the bare text.
func (r *Renderer) Successf(format string, args ...any) {
	_, _ = fmt.Fprintln(r.out, r.styles.Success.Render(fmt.Sprintf(format, args...)))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// jsonResult keeps the column order that a map would lose.
type jsonResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Rows writes a result set. Each row is aligned with cols.
func (r *Renderer) Rows(cols []string, rows [][]any) error {
	switch r.Mode() {
	case ModeJSON:
		if rows == nil {
			rows = [][]any{}
		}
		return r.JSON(jsonResult{Columns: cols, Rows: rows})
	case ModeCSV:
		return r.csv(cols, rows)
	case ModeMarkdown:
		return r.markdown(cols, rows)
	default:
		return r.table(cols, rows)
	}
}

func (r *Renderer) table(cols []string, rows [][]any) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render("(0 rows)"))
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = FormatValue(v)
		}
		t.AppendRow(tr)
	}

	t.Render()
	_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render(fmt.Sprintf("(%d rows)", len(rows))))
	return nil
}

func (r *Renderer) markdown(cols []string, rows [][]any) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = strings.ReplaceAll(FormatValue(v), "|", `\|`)
		}
		_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func (r *Renderer) csv(cols []string, rows [][]any) error {
	_, _ = fmt.Fprintln(r.out, strings.Join(cols, ","))
	for _, row := range rows {
		values := make([]string, len(row))
		for i, v := range row {
			values[i] = escapeCSV(FormatValue(v))
		}
		_, _ = fmt.Fprintln(r.out, strings.Join(values, ","))
	}
	return nil
}

// FormatValue renders a scalar for text output.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
