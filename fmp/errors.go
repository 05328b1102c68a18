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
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the errors returned by Fetch.
type Kind string

// Error kinds.
const (
	// InvalidArgument is a bad symbol, limit, period or parameter, detected
	// before any network call.
	InvalidArgument Kind = "invalid argument"
	// Transport is a failure to complete the HTTP round trip.
	Transport Kind = "transport"
	// HTTPStatus is a non-2xx response. It is never retried.
	HTTPStatus Kind = "http status"
	// EmptyResponse is a response body with no records: [], {} or null.
	EmptyResponse Kind = "empty response"
	// InvalidResponse is a body which is not a JSON array or object of flat
	// records, or an error message returned by the API.
	InvalidResponse Kind = "invalid response"
	// ColumnParse is a year or date column which cannot be converted.
	ColumnParse Kind = "column parse"
	// MissingDependency is an alternate format requested without the optional
	// components it requires.
	MissingDependency Kind = "missing dependency"
)

// Error is the error type of all the failures in this package which a caller
// may want to tell apart.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int      // for HTTPStatus
	Column     string   // for ColumnParse
	Components []string // for MissingDependency
	Cause      error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	switch e.Kind {
	case HTTPStatus:
		fmt.Fprintf(&b, " %d", e.StatusCode)
	case ColumnParse:
		fmt.Fprintf(&b, " in column '%s'", e.Column)
	case MissingDependency:
		fmt.Fprintf(&b, " (%s)", strings.Join(e.Components, ", "))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsKind checks whether err is, or wraps, an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func invalidArgument(format string, args ...any) *Error {
	return &Error{Kind: InvalidArgument, Message: fmt.Sprintf(format, args...)}
}
