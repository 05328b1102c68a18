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
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/stockparfait/errors"
)

// ParseError reports a column whose values cannot be converted to the type
// implied by its name.
type ParseError struct {
	Column string
	Target Type
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to convert column '%s' to %s: %s",
		e.Column, e.Target, e.Err.Error())
}

// Unwrap returns the underlying parse failure.
func (e *ParseError) Unwrap() error { return e.Err }

// IsYearColumn matches column names that hold years. The match is a
// case-insensitive substring test.
func IsYearColumn(name string) bool {
	return strings.Contains(strings.ToLower(name), "year")
}

// IsDateColumn matches column names that hold dates or datetimes. The match is
// a case-insensitive substring test.
func IsDateColumn(name string) bool {
	return strings.Contains(strings.ToLower(name), "date")
}

// ConvertColumnTypes returns a new Frame where year-like columns are cast to
// int32 and date-like columns are parsed as dates, falling back to datetimes
// when any value is not a plain date. A name matching both is handled as a
// year first. Other columns are unchanged.
func ConvertColumnTypes(f *Frame) (*Frame, error) {
	columns := f.Columns()
	for i, c := range columns {
		var err error
		if IsYearColumn(c.Name) {
			if c, err = toInt32(c); err != nil {
				return nil, &ParseError{Column: c.Name, Target: TypeInt32, Err: err}
			}
		}
		if IsDateColumn(c.Name) {
			if c, err = toDate(c); err != nil {
				return nil, &ParseError{Column: c.Name, Target: TypeDate, Err: err}
			}
		}
		columns[i] = c
	}
	return New(columns...)
}

func int32Of(v any) (int32, error) {
	var i int64
	switch x := v.(type) {
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case int32:
		return x, nil
	case int64:
		i = x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return 0, errors.Reason("%v is not an integer", x)
		}
		if x < math.MinInt32 || x > math.MaxInt32 {
			return 0, errors.Reason("%v is out of the int32 range", x)
		}
		return int32(x), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 32)
		if err != nil {
			return 0, errors.Annotate(err, "invalid integer string '%s'", x)
		}
		return int32(n), nil
	default:
		return 0, errors.Reason("cannot cast %T to int32", v)
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, errors.Reason("%d is out of the int32 range", i)
	}
	return int32(i), nil
}

func toInt32(c Column) (Column, error) {
	if c.Type == TypeInt32 {
		return c, nil
	}
	if c.Type == TypeDate || c.Type == TypeDateTime {
		return c, errors.Reason("cannot cast %s to int32", c.Type)
	}
	res := Column{Name: c.Name, Type: TypeInt32, Values: make([]any, len(c.Values))}
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		n, err := int32Of(v)
		if err != nil {
			return c, errors.Annotate(err, "row %d", i)
		}
		res.Values[i] = n
	}
	return res, nil
}

// toDate parses a string column as dates or, failing that, as datetimes.
// Empty strings become nulls.
func toDate(c Column) (Column, error) {
	switch c.Type {
	case TypeDate, TypeDateTime:
		return c, nil
	case TypeNull:
		return Column{Name: c.Name, Type: TypeDate, Values: make([]any, len(c.Values))}, nil
	case TypeString:
	default:
		return c, errors.Reason("expected string values, got %s", c.Type)
	}
	if res, err := parseColumn(c, TypeDate); err == nil {
		return res, nil
	}
	res, err := parseColumn(c, TypeDateTime)
	if err != nil {
		return c, errors.Annotate(err, "values are neither dates nor datetimes")
	}
	return res, nil
}

func parseColumn(c Column, t Type) (Column, error) {
	res := Column{Name: c.Name, Type: t, Values: make([]any, len(c.Values))}
	for i, v := range c.Values {
		s, _ := v.(string)
		if s == "" {
			continue
		}
		var parsed any
		var err error
		if t == TypeDate {
			parsed, err = ParseDate(s)
		} else {
			var tm time.Time
			tm, err = ParseDateTime(s)
			parsed = tm
		}
		if err != nil {
			return c, errors.Annotate(err, "row %d", i)
		}
		res.Values[i] = parsed
	}
	return res, nil
}

// SnakeCase rewrites a camelCase name to snake_case: an underscore is inserted
// between an ASCII lowercase letter and a following ASCII uppercase letter,
// then the whole name is lowercased. For example, "calendarYear" becomes
// "calendar_year" and "SymbolName" becomes "symbol_name".
func SnakeCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if i > 0 && 'A' <= ch && ch <= 'Z' {
			if prev := name[i-1]; 'a' <= prev && prev <= 'z' {
				b.WriteByte('_')
			}
		}
		b.WriteByte(ch)
	}
	return strings.ToLower(b.String())
}

// ConvertColumnNames returns a new Frame with every column name converted by
// SnakeCase. It fails if two columns end up with the same name.
func ConvertColumnNames(f *Frame) (*Frame, error) {
	columns := f.Columns()
	for i := range columns {
		columns[i].Name = SnakeCase(columns[i].Name)
	}
	res, err := New(columns...)
	if err != nil {
		return nil, errors.Annotate(err, "failed to rename columns")
	}
	return res, nil
}
