package nbastats

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrResultSetMissing is returned when a response lacks the requested table.
	ErrResultSetMissing = errors.New("result set missing")
	// ErrColumnMissing is returned when a required column is absent from a table.
	ErrColumnMissing = errors.New("column missing")
)

// Response is the envelope every stats.nba.com endpoint returns. Most
// endpoints use "resultSets"; a few legacy ones use a single "resultSet".
type Response struct {
	Resource   string      `json:"resource"`
	ResultSets []ResultSet `json:"resultSets"`
	ResultSet  *ResultSet  `json:"resultSet"`
}

// ResultSet is one table: a header row plus positional value rows.
type ResultSet struct {
	Name    string  `json:"name"`
	Headers Headers `json:"headers"`
	RowSet  [][]any `json:"rowSet"`

	columns map[string]int
}

// Headers accepts both the flat header list and the nested
// [{"columnNames": [...]}] shape some endpoints emit.
type Headers []string

func (h *Headers) UnmarshalJSON(data []byte) error {
	var flat []string
	if err := json.Unmarshal(data, &flat); err == nil {
		*h = flat
		return nil
	}

	var nested []struct {
		ColumnNames []string `json:"columnNames"`
	}
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("decoding headers: %w", err)
	}
	if len(nested) > 0 {
		*h = nested[len(nested)-1].ColumnNames
	}
	return nil
}

// Table returns the i-th result set, mirroring the positional access the
// upstream documents (e.g. box score 0 = players, 1 = teams).
func (r *Response) Table(i int) (*ResultSet, error) {
	if i == 0 && len(r.ResultSets) == 0 && r.ResultSet != nil {
		return r.ResultSet, nil
	}
	if i < 0 || i >= len(r.ResultSets) {
		return nil, fmt.Errorf("%s table %d of %d: %w", r.Resource, i, len(r.ResultSets), ErrResultSetMissing)
	}
	return &r.ResultSets[i], nil
}

// TableByName finds a result set by its name (case-insensitive).
func (r *Response) TableByName(name string) (*ResultSet, error) {
	for i := range r.ResultSets {
		if strings.EqualFold(r.ResultSets[i].Name, name) {
			return &r.ResultSets[i], nil
		}
	}
	if r.ResultSet != nil && strings.EqualFold(r.ResultSet.Name, name) {
		return r.ResultSet, nil
	}
	return nil, fmt.Errorf("%s table %q: %w", r.Resource, name, ErrResultSetMissing)
}

func (rs *ResultSet) index() map[string]int {
	if rs.columns == nil {
		rs.columns = make(map[string]int, len(rs.Headers))
		for i, h := range rs.Headers {
			rs.columns[h] = i
		}
	}
	return rs.columns
}

// HasColumn reports whether the table carries the named column.
func (rs *ResultSet) HasColumn(col string) bool {
	_, ok := rs.index()[col]
	return ok
}

// Require fails with ErrColumnMissing naming the first absent column.
func (rs *ResultSet) Require(cols ...string) error {
	for _, c := range cols {
		if !rs.HasColumn(c) {
			return fmt.Errorf("%s: %q: %w", rs.Name, c, ErrColumnMissing)
		}
	}
	return nil
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	return len(rs.RowSet)
}

// Rows returns row accessors in table order.
func (rs *ResultSet) Rows() []Row {
	idx := rs.index()
	rows := make([]Row, len(rs.RowSet))
	for i, values := range rs.RowSet {
		rows[i] = Row{values: values, columns: idx}
	}
	return rows
}

// Row gives named access to one positional row.
type Row struct {
	values  []any
	columns map[string]int
}

// Value returns the raw cell for col. The bool is false when the column
// does not exist; a present column can still hold nil.
func (r Row) Value(col string) (any, bool) {
	i, ok := r.columns[col]
	if !ok || i >= len(r.values) {
		return nil, false
	}
	return r.values[i], true
}

// Lookup probes candidate column names in order and returns the value of
// the first column that exists, even if that value is nil.
func (r Row) Lookup(candidates ...string) (any, bool) {
	for _, col := range candidates {
		if v, ok := r.Value(col); ok {
			return v, true
		}
	}
	return nil, false
}

// String renders the cell as a string; nil and absent cells give "".
func (r Row) String(col string) string {
	v, _ := r.Value(col)
	s, _ := asString(v)
	return s
}

// Int returns the cell as an int, or 0 when absent, nil or non-numeric.
func (r Row) Int(col string) int {
	n, _ := r.IntPtr(col)
	if n == nil {
		return 0
	}
	return *n
}

// IntPtr returns nil for absent, null or NaN cells.
func (r Row) IntPtr(col string) (*int, bool) {
	v, ok := r.Value(col)
	if !ok {
		return nil, false
	}
	n, ok := asInt(v)
	if !ok {
		return nil, true
	}
	return &n, true
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return 0, false
		}
		return int(x), true
	case int:
		return x, true
	case int64:
		return int(x), true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i), true
		}
		f, err := x.Float64()
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return int(f), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func asString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case float64:
		if math.IsNaN(x) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	}
	return fmt.Sprint(v), true
}
