package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sheetops/adapters/coercer"
	"sheetops/domain/core"
	"sheetops/domain/table"
	"sheetops/internal"
	"sheetops/internal/errors"
	"sheetops/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ExcelConfig
	coercer  *coercer.TypeCoercer
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string, config ExcelConfig, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := strings.TrimPrefix(ext, ".")
	if fileType == "xlsm" {
		fileType = "xlsx"
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   config,
		coercer:  coercer.NewTypeCoercer(config.CoercionConfig),
		logger:   logger.With("DataReader"),
	}
}

// ReadData reads the raw header and cell grid
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileError(r.filePath, core.ErrFileNotFound)
		}
		return nil, errors.FileError(r.filePath, fmt.Errorf("%w: %v", core.ErrUnreadable, err))
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVData()
	case "xlsx":
		rows, err = r.readExcelData()
	default:
		return nil, errors.FileError(r.filePath, fmt.Errorf("%w: %q", core.ErrUnsupportedFormat, r.fileType))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.ParseError(r.filePath, core.ErrEmpty)
	}
	return r.processRows(rows), nil
}

// readExcelData reads the configured sheet, or the first one
func (r *DataReader) readExcelData() ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.FileError(r.filePath, fmt.Errorf("%w: %v", core.ErrUnreadable, err))
	}
	defer f.Close()
	r.logger.Trace("Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.ParseError(r.filePath, core.ErrEmpty)
		}
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.ParseError(r.filePath, fmt.Errorf("sheet %q: %w", sheet, err))
	}
	r.logger.Debug("%s read in %.2fms (%d rows)", sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))
	return rows, nil
}

// readCSVData reads CSV data, allowing ragged rows
func (r *DataReader) readCSVData() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.FileError(r.filePath, fmt.Errorf("%w: %v", core.ErrUnreadable, err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	r.logger.Debug("CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// processRows trims headers and pads every data row to the header width
func (r *DataReader) processRows(rows [][]string) *ExcelData {
	headerRow := rows[0]
	width := len(headerRow)
	for _, row := range rows[1:] {
		if len(row) > width {
			width = len(row)
		}
	}

	headers := make([]string, width)
	for i := range headers {
		if i < len(headerRow) {
			headers[i] = strings.TrimSpace(headerRow[i])
		}
		if headers[i] == "" {
			headers[i] = fmt.Sprintf("Unnamed: %d", i)
		}
	}

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cells := make([]string, width)
		copy(cells, row)
		dataRows = append(dataRows, cells)
	}

	r.logger.Debug("%s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &ExcelData{Headers: headers, Rows: dataRows}
}

// ReadRowSet reads the file and builds a typed row-set. Converters win over
// DTypes; remaining columns are inferred.
func (r *DataReader) ReadRowSet(opts ports.ReadOptions) (*table.RowSet, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	return r.ToRowSet(data, opts)
}

// ToRowSet types the raw grid column by column
func (r *DataReader) ToRowSet(data *ExcelData, opts ports.ReadOptions) (*table.RowSet, error) {
	for name := range opts.Converters {
		if !data.HasColumn(name) {
			return nil, errors.ColumnNotFound(name, core.NewColumnNotFoundError(name))
		}
	}
	for name := range opts.DTypes {
		if !data.HasColumn(name) {
			return nil, errors.ColumnNotFound(name, core.NewColumnNotFoundError(name))
		}
	}

	cols := make([]table.Column, len(data.Headers))
	values := make([][]table.Value, len(data.Headers))
	for j, name := range data.Headers {
		cells := data.Column(j)
		col, vals, err := r.typeColumn(name, cells, opts)
		if err != nil {
			return nil, err
		}
		cols[j] = col
		values[j] = vals
	}

	schema, err := table.NewSchema(cols...)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	records := make([]table.Record, len(data.Rows))
	for i := range records {
		rec := make(table.Record, len(cols))
		for j := range cols {
			rec[j] = values[j][i]
		}
		records[i] = rec
	}
	rs, err := table.New(schema, records)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	return rs, nil
}

func (r *DataReader) typeColumn(name string, cells []string, opts ports.ReadOptions) (table.Column, []table.Value, error) {
	if conv, ok := opts.Converters[name]; ok {
		vals := make([]table.Value, len(cells))
		for i, cell := range cells {
			vals[i] = conv.Convert(strings.TrimSpace(cell))
		}
		return table.Column{Name: name, Type: conv.Type}, vals, nil
	}

	if want, ok := opts.DTypes[name]; ok {
		vals, err := r.coercer.Column(name, cells, want)
		if err != nil {
			return table.Column{}, nil, errors.TypeMismatch(
				fmt.Sprintf("%s: column %s declared %s", r.filePath, name, want), err)
		}
		if want == table.ColumnCategorical {
			want = table.ColumnString
		}
		return table.Column{Name: name, Type: want}, vals, nil
	}

	analysis := r.coercer.AnalyzeTypeDistribution(cells)
	inferred := analysis.RecommendedType
	vals := make([]table.Value, len(cells))
	lost := 0
	for i, cell := range cells {
		v, err := r.coercer.CoerceValue(cell, inferred)
		if err != nil {
			lost++
			v = table.NewMissing()
		}
		vals[i] = v
	}
	if lost > 0 {
		r.logger.Warn("%s: %d cells in %s did not read as %s and are missing", r.filePath, lost, name, inferred)
	}
	r.logger.Trace("column %s inferred %s (%d/%d numeric)", name, inferred, analysis.NumericCount, analysis.ValidCount)
	return table.Column{Name: name, Type: inferred}, vals, nil
}
