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
	"net/http"
	"net/url"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fetch"
	"github.com/stockparfait/fmpapi/frame"
	"github.com/stockparfait/logging"
	"resty.dev/v3"
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// Defaults for Config.
const (
	DefaultBaseURL   = "https://financialmodelingprep.com/api/"
	DefaultUserAgent = "fmpapi Go package (https://github.com/stockparfait/fmpapi)"
)

// Config of a Client. Zero fields take their defaults.
type Config struct {
	APIKey     string          // sent as "apikey"; an empty key is sent as is
	BaseURL    string          // default: DefaultBaseURL
	UserAgent  string          // default: DefaultUserAgent
	HTTPClient *http.Client    // default: fetch.GetClient(ctx) of each request
	Registry   *frame.Registry // optional components; default: frame.DefaultRegistry
}

// Client for the Financial Modeling Prep API. It holds no connections: each
// request opens its own and releases it before returning.
type Client struct {
	config Config
}

// NewClient creates a new client.
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(config.BaseURL, "/") {
		config.BaseURL += "/"
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}
	if config.Registry == nil {
		config.Registry = frame.DefaultRegistry
	}
	return &Client{config: config}
}

// httpClient returns the HTTP client of a single request: Config.HTTPClient,
// or else the one in the context as set by fetch.UseClient, or else a client
// with its own transport.
func (c *Client) httpClient(ctx context.Context) *http.Client {
	if c.config.HTTPClient != nil {
		return c.config.HTTPClient
	}
	if hc := fetch.GetClient(ctx); hc != nil {
		return hc
	}
	return &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
}

// URL of the query, without the query string:
// {base_url}{api_version}/{resource}[/{symbol}].
func (c *Client) URL(q *Query) string {
	return c.config.BaseURL + q.APIVersion() + "/" + q.Path()
}

// values returns the full query string values, including the API key. Query
// parameters take precedence over the key.
func (c *Client) values(q *Query) url.Values {
	v := url.Values{"apikey": []string{c.config.APIKey}}
	for k, vs := range q.Values() {
		v[k] = vs
	}
	return v
}

// redacted prints the query string with the API key hidden, for logging.
func redacted(v url.Values) string {
	v2 := make(url.Values, len(v))
	for k, vs := range v {
		v2[k] = vs
	}
	if _, ok := v2["apikey"]; ok {
		v2.Set("apikey", "REDACTED")
	}
	return v2.Encode()
}

// Get validates the query, performs a single GET request and returns the raw
// response body. A non-2xx response is an HTTPStatus error.
func (c *Client) Get(ctx context.Context, q *Query) ([]byte, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return c.get(ctx, q)
}

// get sends an already validated query. Idle connections are closed before
// it returns.
func (c *Client) get(ctx context.Context, q *Query) ([]byte, error) {
	uri := c.URL(q)
	query := c.values(q)
	logging.Debugf(ctx, "FMP: GET %s?%s", uri, redacted(query))

	hc := c.httpClient(ctx)
	defer hc.CloseIdleConnections()
	rc := resty.NewWithClient(hc).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", c.config.UserAgent).
		SetRetryCount(0)
	defer rc.Close()
	resp, err := rc.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		Get(uri)
	if err != nil {
		return nil, &Error{
			Kind:    Transport,
			Message: "request to " + uri + " failed",
			Cause:   err,
		}
	}
	if !resp.IsSuccess() {
		return nil, &Error{
			Kind:       HTTPStatus,
			StatusCode: resp.StatusCode(),
			Message:    resp.Status(),
		}
	}
	return resp.Bytes(), nil
}

func noClient() error {
	return errors.Reason("no FMP client in context; see fmp.UseClient")
}
