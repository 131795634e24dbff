package model

// RawTable is an institutional export as read from disk: an ordered grid of
// untyped cells plus source metadata. No invariants hold until the cleaning
// strategy for the institution has run.
type RawTable struct {
	Institution string     `json:"institution"`
	SourcePath  string     `json:"source_path"`
	Rows        [][]string `json:"rows"`
}

// Empty reports whether the table holds no usable cells.
func (t *RawTable) Empty() bool {
	for _, row := range t.Rows {
		for _, cell := range row {
			if cell != "" {
				return false
			}
		}
	}
	return true
}
