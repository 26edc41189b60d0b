package core

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Table is an ordered collection of records sharing a column set.
// Columns are the union of record keys in order of first appearance.
type Table struct {
	Columns []string
	Rows    []*Record
}

// NewTable builds a table from records, deriving the column set.
func NewTable(records []*Record) *Table {
	t := &Table{Rows: records}
	seen := make(map[string]struct{})
	for _, rec := range records {
		for _, k := range rec.Keys() {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			t.Columns = append(t.Columns, k)
		}
	}
	if t.Rows == nil {
		t.Rows = []*Record{}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// FormatValue renders a record value as a single delimited-file cell.
// nil becomes the empty string and nested values become compact JSON.
func FormatValue(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case *Record, []any:
		b, err := marshalValue(t)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// ParseValue infers the value of a delimited-file cell.
// Empty cells are null, numeric literals become json.Number and
// true/false become booleans. Everything else stays a string.
func ParseValue(cell string) any {
	if cell == "" {
		return nil
	}
	switch cell {
	case "true":
		return true
	case "false":
		return false
	}
	// json.Valid rejects forms like "01000" or "+1" that strconv accepts
	if !json.Valid([]byte(cell)) {
		return cell
	}
	if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return json.Number(cell)
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return json.Number(cell)
	}
	return cell
}
