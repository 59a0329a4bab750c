package table

// Converter is a lenient per-column conversion from raw cell text. Cells
// that do not convert become missing instead of failing the load.
type Converter struct {
	Type    ColumnType
	Convert func(raw string) Value
	// Typed, when set, handles cells that already hold Type. Without it such
	// cells are kept as they are.
	Typed func(Value) Value
}
