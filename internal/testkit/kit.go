package testkit

import (
	"fmt"
	"path/filepath"
	"time"

	"sheetops/adapters/excel"
	"sheetops/domain/table"
	"sheetops/internal/config"
)

// Sample file names, matching the default configuration
const (
	StatusFile = "customer-status.xlsx"
	CompFile   = "excel-comp-data.xlsx"
	SalesFile  = "sample-salesv3.xlsx"
	TypesFile  = "sales_data_types.csv"
)

// MonthlyFiles are the per-month sales workbooks, in month order
var MonthlyFiles = []string{"sales-jan-2014.xlsx", "sales-feb-2014.xlsx", "sales-mar-2014.xlsx"}

// TestKit is a directory of generated sample workbooks
type TestKit struct {
	Dir   string
	Files []string
}

// NewTestKit writes every sample file into dir
func NewTestKit(dir string, cfg SalesGeneratorConfig) (*TestKit, error) {
	g := NewSalesDataGenerator(cfg)
	kit := &TestKit{Dir: dir}

	for i, name := range MonthlyFiles {
		rs, err := g.MonthlySales(time.Month(i + 1))
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", name, err)
		}
		if err := kit.writeXLSX(name, rs); err != nil {
			return nil, err
		}
	}

	sheets := []struct {
		name string
		gen  func() (*table.RowSet, error)
	}{
		{StatusFile, g.CustomerStatus},
		{CompFile, g.CompData},
		{SalesFile, g.SampleSales},
	}
	for _, s := range sheets {
		rs, err := s.gen()
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", s.name, err)
		}
		if err := kit.writeXLSX(s.name, rs); err != nil {
			return nil, err
		}
	}

	types, err := g.DataTypes()
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", TypesFile, err)
	}
	path := filepath.Join(dir, TypesFile)
	if err := excel.WriteCSV(path, types); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	kit.Files = append(kit.Files, path)

	return kit, nil
}

func (k *TestKit) writeXLSX(name string, rs *table.RowSet) error {
	path := filepath.Join(k.Dir, name)
	if err := excel.WriteXLSX(path, "", rs); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	k.Files = append(k.Files, path)
	return nil
}

// Config returns the default configuration pointed at the kit's directory
func (k *TestKit) Config() *config.Config {
	cfg := config.Default()
	cfg.Data.Dir = k.Dir
	return cfg
}
