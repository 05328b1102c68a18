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
	"encoding/json"
	"io"
	"strings"

	"github.com/stockparfait/errors"
)

// ErrEmpty is returned by FromJSON when the document holds no records: an
// empty array, an empty object, null, or an array of empty objects.
var ErrEmpty = errors.Reason("response body is empty")

// record is a flat JSON object with its keys in document order.
type record struct {
	keys   []string
	values map[string]any
}

// readRecord reads one JSON object from dec, whose opening '{' has already
// been consumed.
func readRecord(dec *json.Decoder) (*record, error) {
	r := &record{values: make(map[string]any)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Annotate(err, "failed to read object key")
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.Reason("expected an object key, got %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, errors.Annotate(err, "failed to read value of '%s'", key)
		}
		if _, seen := r.values[key]; !seen {
			r.keys = append(r.keys, key)
		}
		r.values[key] = v
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, errors.Annotate(err, "failed to close object")
	}
	return r, nil
}

// readRecords decodes the whole document into records.
func readRecords(data []byte) ([]*record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Annotate(err, "failed to parse JSON")
	}
	var records []*record
	switch tok {
	case nil:
		return nil, nil
	case json.Delim('{'):
		r, err := readRecord(dec)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	case json.Delim('['):
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, errors.Annotate(err, "failed to parse record %d", len(records))
			}
			if tok != json.Delim('{') {
				return nil, errors.Reason("record %d is not an object: %v", len(records), tok)
			}
			r, err := readRecord(dec)
			if err != nil {
				return nil, errors.Annotate(err, "failed to parse record %d", len(records))
			}
			records = append(records, r)
		}
		if _, err := dec.Token(); err != nil { // closing ']'
			return nil, errors.Annotate(err, "failed to close array")
		}
	default:
		return nil, errors.Reason("expected a JSON array or object, got %v", tok)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Reason("unexpected data after the JSON document")
	}
	return records, nil
}

// FromJSON builds a Frame from a JSON array of flat objects, or from a single
// flat object which becomes a one-row frame. Columns appear in the order their
// keys are first seen; a key missing from a record is a null in that row.
func FromJSON(data []byte) (*Frame, error) {
	records, err := readRecords(data)
	if err != nil {
		return nil, err
	}
	var names []string
	seen := make(map[string]struct{})
	for _, r := range records {
		for _, k := range r.keys {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				names = append(names, k)
			}
		}
	}
	if len(names) == 0 {
		return nil, ErrEmpty
	}
	columns := make([]Column, len(names))
	for i, name := range names {
		raw := make([]any, len(records))
		for j, r := range records {
			raw[j] = r.values[name]
		}
		columns[i] = inferColumn(name, raw)
	}
	return New(columns...)
}

// scalar kinds as decoded by encoding/json with UseNumber.
const (
	kindBool = 1 << iota
	kindInt
	kindFloat
	kindString
	kindNested
)

func isInteger(n json.Number) bool {
	if strings.ContainsAny(string(n), ".eE") {
		return false
	}
	_, err := n.Int64()
	return err == nil
}

func kindOf(v any) int {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		return kindBool
	case json.Number:
		if isInteger(x) {
			return kindInt
		}
		return kindFloat
	case string:
		return kindString
	}
	return kindNested
}

// plain converts json.Number values, possibly nested, into int64 or float64.
func plain(v any) any {
	switch x := v.(type) {
	case json.Number:
		if isInteger(x) {
			i, _ := x.Int64()
			return i
		}
		f, _ := x.Float64()
		return f
	case []any:
		res := make([]any, len(x))
		for i, e := range x {
			res[i] = plain(e)
		}
		return res
	case map[string]any:
		res := make(map[string]any, len(x))
		for k, e := range x {
			res[k] = plain(e)
		}
		return res
	}
	return v
}

// inferColumn picks the narrowest Type holding all the raw JSON values.
func inferColumn(name string, raw []any) Column {
	kinds := 0
	for _, v := range raw {
		kinds |= kindOf(v)
	}
	c := Column{Name: name, Values: make([]any, len(raw))}
	switch kinds {
	case 0:
		c.Type = TypeNull
	case kindBool:
		c.Type = TypeBool
	case kindInt:
		c.Type = TypeInt64
	case kindInt | kindFloat, kindFloat:
		c.Type = TypeFloat64
	case kindString:
		c.Type = TypeString
	default:
		c.Type = TypeAny
	}
	for i, v := range raw {
		if v == nil {
			continue
		}
		if c.Type == TypeFloat64 {
			f, _ := v.(json.Number).Float64()
			c.Values[i] = f
			continue
		}
		c.Values[i] = plain(v)
	}
	return c
}
