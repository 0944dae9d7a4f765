// MIT License
//
// Copyright 2018 Canonical Ledgers, LLC
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package fio

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimePointSec is a point in time with second precision, encoded as a
// uint32 count of seconds since the Unix epoch.
type TimePointSec uint32

// TimeFormat is the layout of time values in node responses. All times are
// UTC.
const TimeFormat = "2006-01-02T15:04:05"

// NewTimePointSec truncates t to a TimePointSec.
func NewTimePointSec(t time.Time) TimePointSec {
	return TimePointSec(t.Unix())
}

// Time returns t as a time.Time in UTC.
func (t TimePointSec) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t TimePointSec) String() string {
	return t.Time().Format(TimeFormat)
}

func (t TimePointSec) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimePointSec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%T: %v", t, err)
	}
	tm, err := ParseTime(s)
	if err != nil {
		return fmt.Errorf("%T: %v", t, err)
	}
	*t = NewTimePointSec(tm)
	return nil
}

// ParseTime parses a node time string. A fractional second part is
// accepted.
func ParseTime(s string) (time.Time, error) {
	return time.ParseInLocation(TimeFormat, s, time.UTC)
}

// Time is a time.Time that decodes from either a node time string or a
// number of seconds since the Unix epoch.
type Time struct {
	time.Time
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(TimeFormat))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] != '"' {
		var sec int64
		if err := json.Unmarshal(data, &sec); err != nil {
			return fmt.Errorf("%T: %v", t, err)
		}
		t.Time = time.Unix(sec, 0).UTC()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%T: %v", t, err)
	}
	tm, err := ParseTime(s)
	if err != nil {
		return fmt.Errorf("%T: %v", t, err)
	}
	t.Time = tm
	return nil
}
