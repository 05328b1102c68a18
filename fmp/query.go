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

package fmp

import (
	"net/url"
	"reflect"
	"strconv"

	"github.com/stockparfait/fmpapi/frame"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DefaultAPIVersion is used when a Query doesn't set one.
const DefaultAPIVersion = "v3"

// Allowed values of the "period" parameter.
const (
	PeriodAnnual  = "annual"
	PeriodQuarter = "quarter"
)

// Query is a builder for a single API request. Builder methods never modify
// the receiver; they return a modified copy.
type Query struct {
	resource string         // e.g. "profile" or "stock/list"
	symbol   *string        // nil when not set
	params   map[string]any // string, bool, integer or float values
	version  string
}

// NewQuery creates a query for the resource, such as "balance-sheet-statement".
func NewQuery(resource string) *Query {
	return &Query{resource: resource, params: make(map[string]any)}
}

// Copy creates a deep copy of the query. It is primarily used in its builder
// methods.
func (q *Query) Copy() *Query {
	q2 := Query{resource: q.resource, version: q.version}
	if q.symbol != nil {
		s := *q.symbol
		q2.symbol = &s
	}
	q2.params = maps.Clone(q.params)
	if q2.params == nil {
		q2.params = make(map[string]any)
	}
	return &q2
}

// Symbol sets the ticker appended to the resource path.
func (q *Query) Symbol(symbol string) *Query {
	q2 := q.Copy()
	q2.symbol = &symbol
	return q2
}

// Version sets the API version, e.g. "v4".
func (q *Query) Version(version string) *Query {
	q2 := q.Copy()
	q2.version = version
	return q2
}

// Param adds a query parameter. The value must be a string, a bool, an integer
// or a float.
func (q *Query) Param(key string, value any) *Query {
	q2 := q.Copy()
	q2.params[key] = value
	return q2
}

// Params adds all the parameters from m.
func (q *Query) Params(m map[string]any) *Query {
	q2 := q.Copy()
	for k, v := range m {
		q2.params[k] = v
	}
	return q2
}

// Limit the number of returned records.
func (q *Query) Limit(n int) *Query { return q.Param("limit", n) }

// Period of financial statements, PeriodAnnual or PeriodQuarter.
func (q *Query) Period(p string) *Query { return q.Param("period", p) }

// From sets the start date of a historical range.
func (q *Query) From(d frame.Date) *Query { return q.Param("from", d.String()) }

// To sets the end date of a historical range.
func (q *Query) To(d frame.Date) *Query { return q.Param("to", d.String()) }

// Search sets the search string of the "search" resource.
func (q *Query) Search(s string) *Query { return q.Param("query", s) }

// APIVersion returns the API version, DefaultAPIVersion if not set.
func (q *Query) APIVersion() string {
	if q.version == "" {
		return DefaultAPIVersion
	}
	return q.version
}

// Path returns the URL path after the API version: the resource, followed by
// the symbol when it's set.
func (q *Query) Path() string {
	if q.symbol == nil {
		return q.resource
	}
	return q.resource + "/" + url.PathEscape(*q.symbol)
}

// isInteger reports whether v is of any Go integer kind, and returns its value
// if it fits into int64.
func isInteger(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return 1<<63 - 1, true
		}
		return int64(u), true
	}
	return 0, false
}

// formatValue prints a parameter value for the query string. The second result
// is false for unsupported types.
func formatValue(v any) (string, bool) {
	if n, ok := isInteger(v); ok {
		if rv := reflect.ValueOf(v); rv.Kind() >= reflect.Uint && rv.Kind() <= reflect.Uint64 {
			return strconv.FormatUint(rv.Uint(), 10), true
		}
		return strconv.FormatInt(n, 10), true
	}
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	}
	return "", false
}

// Validate checks the query before it is sent.
func (q *Query) Validate() error {
	if q.resource == "" {
		return invalidArgument("resource must not be empty")
	}
	if q.symbol != nil && *q.symbol == "" {
		return invalidArgument("please provide a valid symbol")
	}
	if v, ok := q.params["limit"]; ok {
		if n, isInt := isInteger(v); !isInt || n < 1 {
			return invalidArgument("limit must be an integer larger than 0, got %v", v)
		}
	}
	if v, ok := q.params["period"]; ok {
		if s, _ := v.(string); s != PeriodAnnual && s != PeriodQuarter {
			return invalidArgument("period must be either '%s' or '%s', got %v",
				PeriodAnnual, PeriodQuarter, v)
		}
	}
	keys := maps.Keys(q.params)
	slices.Sort(keys)
	for _, k := range keys {
		if _, ok := formatValue(q.params[k]); !ok {
			return invalidArgument("parameter '%s' has unsupported type %T", k, q.params[k])
		}
	}
	return nil
}

// Values returns the query parameters, without the API key. Each call creates
// a new object, so the caller is free to modify it without affecting the
// query. Values of unsupported types are skipped; see Validate.
func (q *Query) Values() url.Values {
	v := make(url.Values)
	for k, p := range q.params {
		if s, ok := formatValue(p); ok {
			v.Set(k, s)
		}
	}
	return v
}
