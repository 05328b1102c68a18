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

package matrix

import (
	"math"
	"testing"
	"time"

	"github.com/stockparfait/fmpapi/frame"
	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMatrix(t *testing.T) {
	t.Parallel()

	Convey("Matrix", t, func() {
		f, err := frame.New(
			frame.Column{Name: "symbol", Type: frame.TypeString, Values: []any{"ABC", "XYZ"}},
			frame.Column{Name: "price", Type: frame.TypeFloat64, Values: []any{152.35, nil}},
			frame.Column{Name: "year", Type: frame.TypeInt32, Values: []any{int32(2024), int32(2023)}},
			frame.Column{Name: "date", Type: frame.TypeDate, Values: []any{frame.NewDate(1970, 1, 2), nil}},
			frame.Column{Name: "at", Type: frame.TypeDateTime, Values: []any{
				time.Date(1970, 1, 1, 0, 1, 0, 0, time.UTC), time.Time{}}},
			frame.Column{Name: "active", Type: frame.TypeBool, Values: []any{true, false}},
		)
		So(err, ShouldBeNil)

		Convey("New keeps numeric columns", func() {
			m, err := New(f)
			So(err, ShouldBeNil)
			So(m.Names, ShouldResemble, []string{"price", "year", "date", "at", "active"})
			So(m.Dropped, ShouldResemble, []string{"symbol"})
			r, c := m.Dense.Dims()
			So(r, ShouldEqual, 2)
			So(c, ShouldEqual, 5)
			So(testutil.Round(m.Dense.At(0, 0), 5), ShouldEqual, 152.35)
			So(math.IsNaN(m.Dense.At(1, 0)), ShouldBeTrue)
			So(m.Dense.At(0, 1), ShouldEqual, 2024.0)
			So(m.Dense.At(0, 2), ShouldEqual, 86400.0)
			So(math.IsNaN(m.Dense.At(1, 2)), ShouldBeTrue)
			So(m.Dense.At(0, 3), ShouldEqual, 60.0)
			So(m.Dense.At(1, 4), ShouldEqual, 0.0)

			year, ok := m.Column("year")
			So(ok, ShouldBeTrue)
			So(year, ShouldResemble, []float64{2024, 2023})
			_, ok = m.Column("symbol")
			So(ok, ShouldBeFalse)
		})

		Convey("New fails without numeric columns", func() {
			f, err := frame.New(frame.Column{Name: "s", Type: frame.TypeString, Values: []any{"a"}})
			So(err, ShouldBeNil)
			_, err = New(f)
			So(err, ShouldNotBeNil)
		})

		Convey("Register provides the format", func() {
			r := frame.NewRegistry()
			So(r.Check(frame.MatrixFormat), ShouldNotBeNil)
			Register(r)
			So(r.Available(frame.ComponentGonum), ShouldBeTrue)
			So(r.Available(frame.ComponentMatrix), ShouldBeTrue)
			res, err := r.Convert(frame.MatrixFormat, f)
			So(err, ShouldBeNil)
			_, ok := res.(*Matrix)
			So(ok, ShouldBeTrue)
		})

		Convey("import registers in the default registry", func() {
			So(frame.DefaultRegistry.Check(frame.MatrixFormat), ShouldBeNil)
		})
	})
}
