package core

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNewTableColumnUnion(t *testing.T) {
	a := NewRecord()
	a.Set("id", json.Number("1"))
	a.Set("name", "Ana")
	b := NewRecord()
	b.Set("id", json.Number("2"))
	b.Set("email", "b@x.com")
	b.Set("name", "Bia")

	table := NewTable([]*Record{a, b})

	want := []string{"id", "name", "email"}
	if !reflect.DeepEqual(table.Columns, want) {
		t.Errorf("Columns = %v, want %v", table.Columns, want)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestNewTableEmpty(t *testing.T) {
	table := NewTable(nil)
	if table.Len() != 0 || len(table.Columns) != 0 {
		t.Errorf("empty table = %+v", table)
	}
	if table.Rows == nil {
		t.Error("Rows should be non-nil so it encodes as []")
	}
}

func TestFormatValue(t *testing.T) {
	nested := NewRecord()
	nested.Set("city", "São Paulo")
	nested.Set("zip", "01000")
	nested.Set("n", json.Number("12"))

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "Ana", "Ana"},
		{"number", json.Number("3.50"), "3.50"},
		{"bool", true, "true"},
		{"int", 12, "12"},
		{"float", 1.5, "1.5"},
		{"nested", nested, `{"city":"São Paulo","zip":"01000","n":12}`},
		{"array", []any{"a", json.Number("1"), nil}, `["a",1,null]`},
		{"html stays unescaped", []any{"<b>&"}, `["<b>&"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatValue(tt.value)
			if err != nil {
				t.Fatalf("FormatValue() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatValue() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := FormatValue(struct{}{}); err == nil {
		t.Error("FormatValue(struct{}{}) expected error")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		cell string
		want any
	}{
		{"", nil},
		{"true", true},
		{"false", false},
		{"42", json.Number("42")},
		{"-3.25", json.Number("-3.25")},
		{"1e3", json.Number("1e3")},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
		{"01000", "01000"},
		{"Ana", "Ana"},
		{`{"city":"SP"}`, `{"city":"SP"}`},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			got := ParseValue(tt.cell)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseValue(%q) = %#v, want %#v", tt.cell, got, tt.want)
			}
		})
	}
}
