package excel

// ExcelData represents the raw dataset: trimmed headers and rows padded to header width
type ExcelData struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows
}

// HasColumn reports whether a header with that name exists
func (d *ExcelData) HasColumn(name string) bool {
	for _, h := range d.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Column returns the raw cells at position j
func (d *ExcelData) Column(j int) []string {
	cells := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		cells[i] = row[j]
	}
	return cells
}
