// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package frame

import (
	"fmt"
	"strconv"
	"time"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fmpapi/table"
)

// Type of the values in a Column.
type Type int

// Column types. Each non-nil value of a column has the Go type noted below.
const (
	TypeNull     Type = iota // all values are nil
	TypeBool                 // bool
	TypeInt32                // int32
	TypeInt64                // int64
	TypeFloat64              // float64
	TypeString               // string
	TypeDate                 // Date
	TypeDateTime             // time.Time in UTC
	TypeAny                  // mixed scalars or nested JSON values
)

var typeNames = map[Type]string{
	TypeNull:     "null",
	TypeBool:     "bool",
	TypeInt32:    "int32",
	TypeInt64:    "int64",
	TypeFloat64:  "float64",
	TypeString:   "string",
	TypeDate:     "date",
	TypeDateTime: "datetime",
	TypeAny:      "any",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Column is a named, homogeneously typed sequence of values. A nil value is a
// null.
type Column struct {
	Name   string
	Type   Type
	Values []any
}

// copyColumn returns a Column with its own copy of the values.
func copyColumn(c Column) Column {
	vs := make([]any, len(c.Values))
	copy(vs, c.Values)
	return Column{Name: c.Name, Type: c.Type, Values: vs}
}

// Frame is an immutable table of named columns of equal length.
type Frame struct {
	columns []Column
	index   map[string]int
	rows    int
}

// New creates a Frame from the columns. All columns must have the same number
// of values and distinct names. The columns are copied.
func New(columns ...Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, ok := f.index[c.Name]; ok {
			return nil, errors.Reason("duplicate column name '%s'", c.Name)
		}
		if i == 0 {
			f.rows = len(c.Values)
		} else if len(c.Values) != f.rows {
			return nil, errors.Reason("column '%s' has %d values, expected %d",
				c.Name, len(c.Values), f.rows)
		}
		f.index[c.Name] = i
		f.columns = append(f.columns, copyColumn(c))
	}
	return f, nil
}

// NumRows is the number of rows in the frame.
func (f *Frame) NumRows() int { return f.rows }

// NumColumns is the number of columns in the frame.
func (f *Frame) NumColumns() int { return len(f.columns) }

// Shape returns the number of rows and columns.
func (f *Frame) Shape() (rows, cols int) { return f.rows, len(f.columns) }

// Names of the columns in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.columns))
	for i, c := range f.columns {
		names[i] = c.Name
	}
	return names
}

// Types of the columns in order.
func (f *Frame) Types() []Type {
	types := make([]Type, len(f.columns))
	for i, c := range f.columns {
		types[i] = c.Type
	}
	return types
}

// Columns returns copies of all the columns.
func (f *Frame) Columns() []Column {
	res := make([]Column, len(f.columns))
	for i, c := range f.columns {
		res[i] = copyColumn(c)
	}
	return res
}

// Column returns a copy of the named column.
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.index[name]
	if !ok {
		return Column{}, false
	}
	return copyColumn(f.columns[i]), true
}

// Row returns the values of the i'th row in column order.
func (f *Frame) Row(i int) []any {
	row := make([]any, len(f.columns))
	for j, c := range f.columns {
		row[j] = c.Values[i]
	}
	return row
}

// Records returns each row as a map from column name to value. Null values are
// present as nil.
func (f *Frame) Records() []map[string]any {
	res := make([]map[string]any, f.rows)
	for i := range res {
		r := make(map[string]any, len(f.columns))
		for _, c := range f.columns {
			r[c.Name] = c.Values[i]
		}
		res[i] = r
	}
	return res
}

// Row of a Frame, as seen by the table package.
type Row []any

var _ table.Row = Row{}
var _ table.ValueRow = Row{}

// FormatValue prints a single cell value. Nulls are printed as empty strings.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "TRUE"
		}
		return "FALSE"
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	}
	return fmt.Sprintf("%v", v)
}

// CSV implements table.Row.
func (r Row) CSV() []string {
	res := make([]string, len(r))
	for i, v := range r {
		res[i] = FormatValue(v)
	}
	return res
}

// Values implements table.ValueRow.
func (r Row) Values() []any { return r }

// Table converts the frame into a printable row table with a header of column
// names.
func (f *Frame) Table() *table.Table {
	t := table.NewTable(f.Names()...)
	for i := 0; i < f.rows; i++ {
		t.AddRow(Row(f.Row(i)))
	}
	return t
}
