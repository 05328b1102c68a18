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

// Package matrix converts a Frame into a gonum dense matrix. Importing the
// package registers the "matrix" format in frame.DefaultRegistry.
package matrix

import (
	"math"
	"time"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fmpapi/frame"
	"gonum.org/v1/gonum/mat"
)

func init() {
	Register(frame.DefaultRegistry)
}

// Register the matrix format and its components in r.
func Register(r *frame.Registry) {
	r.Provide(frame.ComponentGonum)
	r.Provide(frame.ComponentMatrix)
	r.SetConverter(frame.MatrixFormat, func(f *frame.Frame) (any, error) {
		return New(f)
	})
}

// Matrix holds the numeric columns of a Frame as a rows x columns dense matrix.
type Matrix struct {
	Names   []string // names of the columns kept in Dense
	Dropped []string // names of non-numeric columns left out
	Dense   *mat.Dense
}

// numeric reports whether a column of type t has a float64 representation.
func numeric(t frame.Type) bool {
	switch t {
	case frame.TypeBool, frame.TypeInt32, frame.TypeInt64, frame.TypeFloat64,
		frame.TypeDate, frame.TypeDateTime, frame.TypeNull:
		return true
	}
	return false
}

// toFloat converts a cell to float64. Nulls are NaN, booleans are 0 or 1,
// dates and datetimes are seconds since the Unix epoch.
func toFloat(v any) float64 {
	switch x := v.(type) {
	case nil:
		return math.NaN()
	case bool:
		if x {
			return 1
		}
		return 0
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float64:
		return x
	case frame.Date:
		return float64(x.ToTime().Unix())
	case time.Time:
		return float64(x.Unix())
	}
	return math.NaN()
}

// New converts the numeric columns of f. String and mixed columns are
// listed in Dropped.
func New(f *frame.Frame) (*Matrix, error) {
	m := &Matrix{}
	var cols []frame.Column
	for _, c := range f.Columns() {
		if !numeric(c.Type) {
			m.Dropped = append(m.Dropped, c.Name)
			continue
		}
		m.Names = append(m.Names, c.Name)
		cols = append(cols, c)
	}
	if len(cols) == 0 || f.NumRows() == 0 {
		return nil, errors.Reason("no numeric data to convert")
	}
	data := make([]float64, f.NumRows()*len(cols))
	for j, c := range cols {
		for i, v := range c.Values {
			data[i*len(cols)+j] = toFloat(v)
		}
	}
	m.Dense = mat.NewDense(f.NumRows(), len(cols), data)
	return m, nil
}

// Column returns a copy of the named column's values.
func (m *Matrix) Column(name string) ([]float64, bool) {
	for j, n := range m.Names {
		if n == name {
			return mat.Col(nil, j, m.Dense), true
		}
	}
	return nil, false
}
