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

// Package fmp is a client for the Financial Modeling Prep (FMP) REST API.
//
// Official documentation is at https://site.financialmodelingprep.com/developer/docs .
//
// A Query names a resource, such as "balance-sheet-statement" or "stock/list",
// an optional ticker symbol and query parameters. Fetch validates the query,
// performs a single GET request and normalizes the JSON response into a
// frame.Frame: year columns become int32, date columns become dates or
// datetimes, and column names are converted to snake_case unless disabled.
//
// A typical use:
//
//	c := fmp.NewClient(fmp.Config{APIKey: key})
//	q := fmp.NewQuery("income-statement").Symbol("AAPL").Limit(1)
//	res, err := c.Fetch(ctx, q, fmp.Options{})
//
// All the errors a caller may want to tell apart are of type *Error; use
// IsKind to check the kind.
package fmp
