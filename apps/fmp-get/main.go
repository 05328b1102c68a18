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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/fmpapi/config"
	"github.com/stockparfait/fmpapi/fmp"
	"github.com/stockparfait/fmpapi/frame"
	"github.com/stockparfait/fmpapi/frame/matrix"
	"github.com/stockparfait/fmpapi/table"
	"github.com/stockparfait/logging"
	"gonum.org/v1/gonum/mat"
)

// paramsFlag collects repeated -param key=value flags.
type paramsFlag map[string]any

var _ flag.Value = paramsFlag{}

func (p paramsFlag) String() string {
	var parts []string
	for k, v := range p {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ",")
}

// Set parses key=value. A value in canonical integer form is stored as an int,
// so that "limit=10" passes validation while "limit=ten" fails. Any other
// value, e.g. "cik=0000320193", is sent exactly as given.
func (p paramsFlag) Set(s string) error {
	k, v, ok := strings.Cut(s, "=")
	if !ok || k == "" {
		return errors.Reason("expected key=value, got '%s'", s)
	}
	if n, err := strconv.Atoi(v); err == nil && strconv.Itoa(n) == v {
		p[k] = n
		return nil
	}
	p[k] = v
	return nil
}

type Flags struct {
	ConfigDir   string // default: ~/.fmpapi
	LogLevel    logging.Level
	Resource    string // required
	Symbol      *string
	Params      paramsFlag
	APIVersion  string
	NoSnakeCase bool
	Format      string // text, csv, json or toml
	Matrix      bool   // print the numeric columns as a matrix
	Rows        int    // max. rows to print; 0 = all
	MaxColWidth int
}

func parseFlags(args []string) (*Flags, error) {
	flags := Flags{Params: make(paramsFlag)}
	fs := flag.NewFlagSet("fmp-get", flag.ExitOnError)
	fs.StringVar(&flags.ConfigDir, "config",
		filepath.Join(os.Getenv("HOME"), ".fmpapi"),
		"directory with the optional config.toml")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.StringVar(&flags.Resource, "resource", "",
		"API resource, e.g. profile, income-statement, stock/list (required)")
	symbol := fs.String("symbol", "", "ticker symbol")
	fs.Var(flags.Params, "param", "query parameter key=value (repeatable)")
	fs.StringVar(&flags.APIVersion, "api-version", fmp.DefaultAPIVersion, "API version")
	fs.BoolVar(&flags.NoSnakeCase, "no-snake-case", false,
		"keep column names as returned by the API")
	fs.StringVar(&flags.Format, "format", "text", "output format: text, csv, json, toml")
	fs.BoolVar(&flags.Matrix, "matrix", false, "print numeric columns as a matrix")
	fs.IntVar(&flags.Rows, "rows", 0, "max. number of rows to print; 0 = all")
	fs.IntVar(&flags.MaxColWidth, "max-col-width", 0, "text format column width limit")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "symbol" {
			flags.Symbol = symbol
		}
	})
	if flags.Resource == "" {
		return nil, errors.Reason("missing required -resource argument")
	}
	switch flags.Format {
	case "text", "csv", "json", "toml":
	default:
		return nil, errors.Reason("unsupported -format %s", flags.Format)
	}
	return &flags, nil
}

func query(flags *Flags) *fmp.Query {
	q := fmp.NewQuery(flags.Resource).Version(flags.APIVersion).Params(flags.Params)
	if flags.Symbol != nil {
		q = q.Symbol(*flags.Symbol)
	}
	return q
}

func fetchData(ctx context.Context, flags *Flags) (*fmp.Result, error) {
	cfg, err := config.Load(flags.ConfigDir)
	if err != nil {
		return nil, errors.Annotate(err, "failed to load config")
	}
	c := cfg.Client()

	opts := fmp.Options{NoSnakeCase: flags.NoSnakeCase}
	if flags.Matrix {
		opts.Format = frame.MatrixFormat
	}
	return c.Fetch(ctx, query(flags), opts)
}

func printMatrix(w io.Writer, m *matrix.Matrix) error {
	if _, err := fmt.Fprintf(w, "%s\n", strings.Join(m.Names, " | ")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%v\n", mat.Formatted(m.Dense, mat.Squeeze()))
	return err
}

func printData(ctx context.Context, flags *Flags, w io.Writer) error {
	res, err := fetchData(ctx, flags)
	if err != nil {
		return errors.Annotate(err, "failed to fetch %s", query(flags).Path())
	}
	if flags.Matrix {
		m, ok := res.Alternate.(*matrix.Matrix)
		if !ok {
			return errors.Reason("unexpected alternate result %T", res.Alternate)
		}
		if err := printMatrix(w, m); err != nil {
			return errors.Annotate(err, "failed to print matrix")
		}
		return nil
	}
	tbl := res.Frame.Table()
	p := table.Params{Rows: flags.Rows, MaxColWidth: flags.MaxColWidth}
	switch flags.Format {
	case "csv":
		err = tbl.WriteCSV(w, p)
	case "json":
		err = tbl.WriteJSON(w, p)
	case "toml":
		err = tbl.WriteTOML(w, p)
	default:
		err = tbl.WriteText(w, p)
	}
	if err != nil {
		return errors.Annotate(err, "failed to print %s", flags.Format)
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := printData(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, "%s", err.Error())
		os.Exit(1)
	}
}
