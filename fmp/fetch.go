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
	"context"
	"encoding/json"

	"github.com/stockparfait/fmpapi/frame"
	"github.com/stockparfait/logging"
)

// Options of Fetch. The zero value converts column names to snake_case and
// returns only the Frame.
type Options struct {
	NoSnakeCase bool   // keep column names as returned by the API
	Format      string // alternate format, e.g. frame.MatrixFormat; "" = none
}

// Result of Fetch.
type Result struct {
	Frame     *frame.Frame
	Alternate any // the Frame converted to Options.Format, if requested
}

// apiErrorMessage detects the {"Error Message": "..."} body which the API
// returns with status 200 for some invalid requests.
func apiErrorMessage(body []byte) (string, bool) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(body, &m); err != nil || len(m) != 1 {
		return "", false
	}
	raw, ok := m["Error Message"]
	if !ok {
		return "", false
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return "", false
	}
	return msg, true
}

// Normalize converts a raw response body into a Frame: it builds the table,
// converts year and date columns, and optionally renames the columns to
// snake_case.
func Normalize(body []byte, snakeCase bool) (*frame.Frame, error) {
	if msg, ok := apiErrorMessage(body); ok {
		return nil, &Error{Kind: InvalidResponse, Message: msg}
	}
	f, err := frame.FromJSON(body)
	if err == frame.ErrEmpty {
		return nil, &Error{
			Kind:    EmptyResponse,
			Message: "check your resource and parameter specification",
		}
	}
	if err != nil {
		return nil, &Error{Kind: InvalidResponse, Cause: err}
	}
	if f, err = frame.ConvertColumnTypes(f); err != nil {
		if pe, ok := err.(*frame.ParseError); ok {
			return nil, &Error{Kind: ColumnParse, Column: pe.Column, Cause: pe}
		}
		return nil, &Error{Kind: InvalidResponse, Cause: err}
	}
	if snakeCase {
		if f, err = frame.ConvertColumnNames(f); err != nil {
			return nil, &Error{Kind: InvalidResponse, Cause: err}
		}
	}
	return f, nil
}

// checkFormat verifies that the optional components of the format are present.
func (c *Client) checkFormat(format string) error {
	if format == "" {
		return nil
	}
	err := c.config.Registry.Check(format)
	if err == nil {
		return nil
	}
	if me, ok := err.(*frame.MissingError); ok {
		return &Error{
			Kind:       MissingDependency,
			Message:    "format '" + format + "' is not available",
			Components: me.Components,
			Cause:      me,
		}
	}
	return &Error{Kind: InvalidArgument, Cause: err}
}

// Fetch performs the query and returns the normalized result. Arguments and
// the availability of the requested format are checked before the request is
// sent. Exactly one request is made; it is not retried.
func (c *Client) Fetch(ctx context.Context, q *Query, opts Options) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := c.checkFormat(opts.Format); err != nil {
		return nil, err
	}
	body, err := c.get(ctx, q)
	if err != nil {
		return nil, err
	}
	f, err := Normalize(body, !opts.NoSnakeCase)
	if err != nil {
		return nil, err
	}
	logging.Infof(ctx, "FMP: fetched %d rows, %d columns from %s",
		f.NumRows(), f.NumColumns(), q.Path())
	res := &Result{Frame: f}
	if opts.Format != "" {
		if res.Alternate, err = c.config.Registry.Convert(opts.Format, f); err != nil {
			if me, ok := err.(*frame.MissingError); ok {
				return nil, &Error{Kind: MissingDependency, Components: me.Components, Cause: me}
			}
			return nil, &Error{Kind: InvalidResponse, Cause: err}
		}
	}
	return res, nil
}

// Fetch performs the query with the Client from the context.
func Fetch(ctx context.Context, q *Query, opts Options) (*Result, error) {
	c := GetClient(ctx)
	if c == nil {
		return nil, noClient()
	}
	return c.Fetch(ctx, q, opts)
}
