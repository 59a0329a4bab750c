package present

import (
	"fmt"
	"io"
	"strings"

	"sheetops/domain/table"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
)

// Renderer prints row-sets as bordered text tables
type Renderer struct {
	out     io.Writer
	maxRows int
}

// NewRenderer writes to out. When maxRows > 0 and a row-set is longer than
// twice that, only the first and last maxRows rows are shown.
func NewRenderer(out io.Writer, maxRows int) *Renderer {
	return &Renderer{out: out, maxRows: maxRows}
}

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	headerStyle = cellStyle.Bold(true)
)

// Table renders rs without printing it
func (r *Renderer) Table(rs *table.RowSet) string {
	cols := rs.Schema().Columns()
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Name
	}

	var rows [][]string
	elided := r.maxRows > 0 && rs.Len() > 2*r.maxRows
	if elided {
		rows = append(rows, displayRows(rs.Head(r.maxRows))...)
		gap := make([]string, len(cols))
		for i := range gap {
			gap[i] = "..."
		}
		rows = append(rows, gap)
		rows = append(rows, displayRows(rs.Tail(r.maxRows))...)
	} else {
		rows = displayRows(rs)
	}

	t := lgtable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			if col < len(cols) && cols[col].Type == table.ColumnNumeric {
				return numberStyle
			}
			return cellStyle
		})

	out := t.String()
	if elided {
		out += fmt.Sprintf("\n[%d rows x %d columns]", rs.Len(), len(cols))
	}
	return out
}

// displayRows renders cells; missing numbers show as NaN and other missing
// cells stay blank.
func displayRows(rs *table.RowSet) [][]string {
	cols := rs.Schema().Columns()
	rows := make([][]string, rs.Len())
	for i := range rows {
		values := rs.Row(i).Values()
		cells := make([]string, len(values))
		for j, v := range values {
			switch {
			case !v.IsMissing():
				cells[j] = v.String()
			case cols[j].Type == table.ColumnNumeric:
				cells[j] = "NaN"
			}
		}
		rows[i] = cells
	}
	return rows
}

// Print writes an optional title followed by the table
func (r *Renderer) Print(title string, rs *table.RowSet) error {
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteString("\n")
	}
	b.WriteString(r.Table(rs))
	b.WriteString("\n\n")
	_, err := io.WriteString(r.out, b.String())
	return err
}

// Printf writes free text
func (r *Renderer) Printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(r.out, format, args...)
	return err
}

// DTypes lists each column with its declared type, one per line
func DTypes(rs *table.RowSet) string {
	cols := rs.Schema().Columns()
	width := 0
	for _, c := range cols {
		if len(c.Name) > width {
			width = len(c.Name)
		}
	}
	var b strings.Builder
	for _, c := range cols {
		fmt.Fprintf(&b, "%-*s  %s\n", width, c.Name, c.Type)
	}
	return b.String()
}

// PrintDTypes writes the DTypes listing under a title
func (r *Renderer) PrintDTypes(title string, rs *table.RowSet) error {
	if title != "" {
		if err := r.Printf("%s\n", title); err != nil {
			return err
		}
	}
	return r.Printf("%s\n", DTypes(rs))
}
