// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package table prints row-oriented tables as aligned text, CSV, JSON or
// TOML.
package table

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/stockparfait/errors"
)

// Row interface that a table row representation must implement.
type Row interface {
	CSV() []string // an encoding/csv compatible row representation
}

// ValueRow is optionally implemented by a Row to provide typed cell values for
// the structured writers (JSON and TOML). Rows which don't implement it are
// written as strings.
type ValueRow interface {
	Row
	Values() []any // nil is a null cell
}

// Table container.
//
// A typical use:
//   type MyRow struct {
//     Symbol string
//     Price float64
//   }
//
//   func (r MyRow) CSV() []string {
//     return []string{r.Symbol, fmt.Sprintf("%.2f", r.Price)}
//   }
//   t := NewTable("Symbol", "Price")
//   t.AddRow(MyRow{"AAPL", 175.5}, MyRow{"MSFT", 410.1})
type Table struct {
	Header []string // optional, may be nil
	Rows   []Row
}

// NewTable creates a new Table instance with optional column headers.  It is
// expected that, when present, the number of column headers is the same as the
// number of elements in each Row.
func NewTable(header ...string) *Table {
	return &Table{Header: header}
}

// AddRow adds one or more rows to the table.
func (t *Table) AddRow(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Params are parameters for pretty-printing or export of Table data.
type Params struct {
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes; CSV and text only
	MaxColWidth int  // for WriteText only; 0 = unlimited, otherwise must be >= 4
}

// rows returns the rows limited by p.Rows.
func (t *Table) rows(p Params) []Row {
	if p.Rows > 0 && p.Rows < len(t.Rows) {
		return t.Rows[:p.Rows]
	}
	return t.Rows
}

// WriteCSV writes the entire table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	cw := csv.NewWriter(w)
	if !p.NoHeader && len(t.Header) > 0 {
		if err := cw.Write(t.Header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for _, r := range t.rows(p) {
		if err := cw.Write(r.CSV()); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush written rows")
	}
	return nil
}

// columnWidths computes the width of each column over all the given rows,
// capped at maxWidth when it's positive.
func columnWidths(rows [][]string, maxWidth int) ([]int, error) {
	var widths []int
	for _, row := range rows {
		if len(row) == 0 {
			return nil, errors.Reason("row size = 0")
		}
		if len(widths) == 0 {
			widths = make([]int, len(row))
		}
		if len(row) != len(widths) {
			return nil, errors.Reason("row size [%d] != expected size [%d]",
				len(row), len(widths))
		}
		for i, s := range row {
			if l := len([]rune(s)); widths[i] < l {
				widths[i] = l
			}
			if maxWidth > 0 && widths[i] > maxWidth {
				widths[i] = maxWidth
			}
		}
	}
	return widths, nil
}

// WriteText writes the table as a text formatted for ease of reading.
func (t *Table) WriteText(w io.Writer, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	var lines [][]string
	withHeader := !p.NoHeader && len(t.Header) > 0
	if withHeader {
		lines = append(lines, t.Header)
	}
	for _, r := range t.rows(p) {
		lines = append(lines, r.CSV())
	}
	widths, err := columnWidths(lines, p.MaxColWidth)
	if err != nil {
		return errors.Annotate(err, "failed to compute column widths")
	}

	write := func(row []string) error {
		cells := make([]string, len(row))
		for i, s := range row {
			if r := []rune(s); len(r) > widths[i] {
				s = string(r[:widths[i]-2]) + ".."
			}
			cells[i] = fmt.Sprintf("%[2]*[1]s", s, widths[i])
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.Join(cells, " | "))
		return err
	}

	for i, line := range lines {
		if err := write(line); err != nil {
			return errors.Annotate(err, "failed to write line %d", i)
		}
		if i == 0 && withHeader {
			dashes := make([]string, len(widths))
			for j, n := range widths {
				dashes[j] = strings.Repeat("-", n)
			}
			if err := write(dashes); err != nil {
				return errors.Annotate(err, "failed to write header separator")
			}
		}
	}
	return nil
}

// records converts rows into maps keyed by the header. Null cells are left
// out when skipNull is set, and kept as nil otherwise.
func (t *Table) records(p Params, skipNull bool) ([]map[string]any, error) {
	if len(t.Header) == 0 {
		return nil, errors.Reason("structured output requires a header")
	}
	var res []map[string]any
	for i, r := range t.rows(p) {
		var values []any
		if vr, ok := r.(ValueRow); ok {
			values = vr.Values()
		} else {
			for _, s := range r.CSV() {
				values = append(values, s)
			}
		}
		if len(values) != len(t.Header) {
			return nil, errors.Reason("row %d size [%d] != header size [%d]",
				i, len(values), len(t.Header))
		}
		m := make(map[string]any, len(values))
		for j, v := range values {
			if v == nil && skipNull {
				continue
			}
			m[t.Header[j]] = v
		}
		res = append(res, m)
	}
	return res, nil
}

// WriteJSON writes the table as a JSON array of objects, one per row, with the
// keys in header order.
func (t *Table) WriteJSON(w io.Writer, p Params) error {
	recs, err := t.records(p, false)
	if err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("[")
	for i, rec := range recs {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  {")
		for j, h := range t.Header {
			if j > 0 {
				b.WriteString(", ")
			}
			k, err := json.Marshal(h)
			if err != nil {
				return errors.Annotate(err, "failed to encode key '%s'", h)
			}
			v, err := json.Marshal(rec[h])
			if err != nil {
				return errors.Annotate(err, "failed to encode value of '%s' in row %d", h, i)
			}
			b.Write(k)
			b.WriteString(": ")
			b.Write(v)
		}
		b.WriteString("}")
	}
	if len(recs) > 0 {
		b.WriteString("\n")
	}
	b.WriteString("]\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Annotate(err, "failed to write JSON")
	}
	return nil
}

// WriteTOML writes the table as an array of tables named "rows". Null cells
// are omitted, since TOML has no null value.
func (t *Table) WriteTOML(w io.Writer, p Params) error {
	recs, err := t.records(p, true)
	if err != nil {
		return err
	}
	doc := map[string]any{"rows": recs}
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return errors.Annotate(err, "failed to write TOML")
	}
	return nil
}
