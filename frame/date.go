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
	"encoding/json"
	"fmt"
	"time"

	"github.com/stockparfait/errors"
)

// dateFormats are accepted for calendar date columns. A value must match one
// of them exactly, without a time component.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
}

// dateTimeFormats are tried in order for date-with-time columns.
var dateTimeFormats = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseWith(formats []string, s string) (time.Time, error) {
	var err error
	for _, f := range formats {
		var tm time.Time
		if tm, err = time.Parse(f, s); err == nil {
			return tm.UTC(), nil
		}
	}
	return time.Time{}, err
}

// ParseDateTime parses a date-with-time string in one of the formats commonly
// returned by the API. The result is in UTC.
func ParseDateTime(s string) (time.Time, error) {
	tm, err := parseWith(dateTimeFormats, s)
	if err != nil {
		return time.Time{}, errors.Annotate(err, "failed to parse a datetime string: '%s'", s)
	}
	return tm, nil
}

// Date records a calendar date as year, month and day. The struct is designed
// to fit into 4 bytes.
type Date struct {
	YearVal  uint16
	MonthVal uint8
	DayVal   uint8
}

var _ json.Marshaler = Date{}

// NewDate is the constructor for Date.
func NewDate(year uint16, month, day uint8) Date {
	return Date{year, month, day}
}

// NewDateFromTime creates a Date instance from a time.Time value in UTC.
func NewDateFromTime(t time.Time) Date {
	t = t.UTC()
	return Date{
		YearVal:  uint16(t.Year()),
		MonthVal: uint8(t.Month()),
		DayVal:   uint8(t.Day()),
	}
}

// ParseDate creates a Date from a string holding only a calendar date, such as
// "2023-12-31". Strings with a time component are rejected.
func ParseDate(s string) (Date, error) {
	t, err := parseWith(dateFormats, s)
	if err != nil {
		return Date{}, errors.Annotate(err, "failed to parse a Date string: '%s'", s)
	}
	return NewDateFromTime(t), nil
}

func (d Date) Year() uint16 { return d.YearVal }
func (d Date) Month() uint8 { return d.MonthVal }
func (d Date) Day() uint8   { return d.DayVal }

// String representation of the value.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year(), d.Month(), d.Day())
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// ToTime converts Date to Time in UTC.
func (d Date) ToTime() time.Time {
	return time.Date(int(d.Year()), time.Month(d.Month()), int(d.Day()), 0, 0, 0, 0, time.UTC)
}
