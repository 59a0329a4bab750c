package excel

import (
	"sheetops/adapters/coercer"
)

// ExcelConfig holds configuration for spreadsheet sources
type ExcelConfig struct {
	Sheet          string                 `json:"sheet"` // empty reads the first sheet
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// DefaultExcelConfig returns sensible defaults for spreadsheet processing
func DefaultExcelConfig() ExcelConfig {
	return ExcelConfig{
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}
