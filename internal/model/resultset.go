package model

// ResultSet is the rectangular output of executing one compiled aggregate:
// ordered column names plus rows of scalar cells.
type ResultSet struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

func (rs *ResultSet) RowCount() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

func (rs *ResultSet) ColumnCount() int {
	if rs == nil {
		return 0
	}
	return len(rs.Columns)
}

func (rs *ResultSet) Empty() bool {
	return rs.RowCount() == 0
}

// ColumnIndex returns the position of the named column, or -1.
func (rs *ResultSet) ColumnIndex(name string) int {
	if rs == nil {
		return -1
	}
	for i, c := range rs.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

func (rs *ResultSet) HasColumn(name string) bool {
	return rs.ColumnIndex(name) != -1
}

// Scalar returns the single cell of a (1,1) result set.
func (rs *ResultSet) Scalar() (interface{}, bool) {
	if rs.RowCount() != 1 || rs.ColumnCount() != 1 {
		return nil, false
	}
	return rs.Rows[0][0], true
}

// Cell returns the value at (row, col) without bounds panics.
func (rs *ResultSet) Cell(row, col int) (interface{}, bool) {
	if rs == nil || row < 0 || row >= len(rs.Rows) {
		return nil, false
	}
	cells := rs.Rows[row]
	if col < 0 || col >= len(cells) {
		return nil, false
	}
	return cells[col], true
}

// AsInt64 coerces a numeric cell to int64. Drivers hand counts back as
// int64 already; the other cases cover decoded JSON and test fixtures.
func AsInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	default:
		return 0, false
	}
}

// AsString coerces a cell to its string form for labels and group keys.
func AsString(v interface{}) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
