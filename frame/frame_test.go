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
	"bytes"
	"testing"
	"time"

	"github.com/stockparfait/fmpapi/table"

	. "github.com/smartystreets/goconvey/convey"
)

const stockListJSON = `[
  {
    "symbol": "ABCX.US",
    "name": "AlphaBeta Corporation",
    "price": 152.35,
    "exchange": "New York Stock Exchange",
    "exchangeShortName": "NYSE",
    "type": "stock"
  },
  {
    "symbol": "GLOTECH.TO",
    "name": "Global Technologies Inc.",
    "price": 88.50,
    "exchange": "Toronto Stock Exchange",
    "exchangeShortName": "TSX",
    "type": "stock"
  }
]`

const balanceSheetJSON = `{
  "date": "2024-09-28",
  "symbol": "XYZC",
  "reportedCurrency": "USD",
  "cik": "0001234567",
  "fillingDate": "2024-11-01",
  "acceptedDate": "2024-11-01 06:01:36",
  "calendarYear": "2024",
  "period": "FY",
  "cashAndCashEquivalents": 67890
}`

func TestFrame(t *testing.T) {
	t.Parallel()

	Convey("FromJSON", t, func() {
		Convey("array of records", func() {
			f, err := FromJSON([]byte(stockListJSON))
			So(err, ShouldBeNil)
			rows, cols := f.Shape()
			So(rows, ShouldEqual, 2)
			So(cols, ShouldEqual, 6)
			So(f.Names(), ShouldResemble, []string{
				"symbol", "name", "price", "exchange", "exchangeShortName", "type"})
			price, ok := f.Column("price")
			So(ok, ShouldBeTrue)
			So(price.Type, ShouldEqual, TypeFloat64)
			So(price.Values, ShouldResemble, []any{152.35, 88.5})
			So(f.Row(1)[0], ShouldEqual, "GLOTECH.TO")
		})

		Convey("single record", func() {
			f, err := FromJSON([]byte(balanceSheetJSON))
			So(err, ShouldBeNil)
			So(f.NumRows(), ShouldEqual, 1)
			So(f.NumColumns(), ShouldEqual, 9)
			cash, _ := f.Column("cashAndCashEquivalents")
			So(cash.Type, ShouldEqual, TypeInt64)
			So(cash.Values, ShouldResemble, []any{int64(67890)})
			year, _ := f.Column("calendarYear")
			So(year.Type, ShouldEqual, TypeString)
		})

		Convey("records with different keys", func() {
			f, err := FromJSON([]byte(`[{"a": 1, "b": true}, {"c": "x", "a": 2.5}]`))
			So(err, ShouldBeNil)
			So(f.Names(), ShouldResemble, []string{"a", "b", "c"})
			So(f.Types(), ShouldResemble, []Type{TypeFloat64, TypeBool, TypeString})
			So(f.Row(0), ShouldResemble, []any{1.0, true, nil})
			So(f.Row(1), ShouldResemble, []any{2.5, nil, "x"})
		})

		Convey("mixed and nested values", func() {
			f, err := FromJSON([]byte(`[{"a": 1, "b": null, "n": {"x": 1}}, {"a": "one", "b": null, "n": [2]}]`))
			So(err, ShouldBeNil)
			So(f.Types(), ShouldResemble, []Type{TypeAny, TypeNull, TypeAny})
			So(f.Row(0), ShouldResemble, []any{int64(1), nil, map[string]any{"x": int64(1)}})
			So(f.Row(1), ShouldResemble, []any{"one", nil, []any{int64(2)}})
		})

		Convey("empty documents", func() {
			for _, s := range []string{`[]`, `{}`, `null`, ``, `[{}, {}]`} {
				_, err := FromJSON([]byte(s))
				So(err, ShouldEqual, ErrEmpty)
			}
		})

		Convey("invalid documents", func() {
			for _, s := range []string{`"text"`, `42`, `[1, 2]`, `[{"a": 1}`, `{"a": 1} {}`, `[[{"a": 1}]]`} {
				_, err := FromJSON([]byte(s))
				So(err, ShouldNotBeNil)
				So(err, ShouldNotEqual, ErrEmpty)
			}
		})
	})

	Convey("New", t, func() {
		Convey("rejects duplicate names", func() {
			_, err := New(Column{Name: "a", Values: []any{nil}}, Column{Name: "a", Values: []any{nil}})
			So(err, ShouldNotBeNil)
		})

		Convey("rejects uneven columns", func() {
			_, err := New(Column{Name: "a", Values: []any{nil}}, Column{Name: "b"})
			So(err, ShouldNotBeNil)
		})

		Convey("is not affected by later changes", func() {
			values := []any{int64(1), int64(2)}
			f, err := New(Column{Name: "a", Type: TypeInt64, Values: values})
			So(err, ShouldBeNil)
			values[0] = int64(42)
			c, _ := f.Column("a")
			So(c.Values[0], ShouldEqual, int64(1))
			c.Values[1] = int64(43)
			So(f.Row(1), ShouldResemble, []any{int64(2)})
		})
	})

	Convey("Records and Table", t, func() {
		tm := time.Date(2024, 11, 1, 6, 1, 36, 0, time.UTC)
		f, err := New(
			Column{Name: "symbol", Type: TypeString, Values: []any{"ABC", "XYZ"}},
			Column{Name: "date", Type: TypeDate, Values: []any{NewDate(2024, 9, 28), nil}},
			Column{Name: "accepted", Type: TypeDateTime, Values: []any{tm, tm}},
			Column{Name: "year", Type: TypeInt32, Values: []any{int32(2024), int32(2023)}},
			Column{Name: "active", Type: TypeBool, Values: []any{true, false}},
		)
		So(err, ShouldBeNil)

		So(f.Records(), ShouldResemble, []map[string]any{
			{"symbol": "ABC", "date": NewDate(2024, 9, 28), "accepted": tm, "year": int32(2024), "active": true},
			{"symbol": "XYZ", "date": nil, "accepted": tm, "year": int32(2023), "active": false},
		})

		var buf bytes.Buffer
		So(f.Table().WriteCSV(&buf, table.Params{}), ShouldBeNil)
		So("\n"+buf.String(), ShouldEqual, `
symbol,date,accepted,year,active
ABC,2024-09-28,2024-11-01 06:01:36,2024,TRUE
XYZ,,2024-11-01 06:01:36,2023,FALSE
`)
	})
}
