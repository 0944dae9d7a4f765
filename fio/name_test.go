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

package fio_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		Str string
		Val uint64
	}{
		{"eosio", 6138663577826885632},
		{"fio.address", 6604532311915900928},
		{"fio.token", 6604542949799231488},
		{"fio.reqobt", 6604541681872027648},
		{"active", 3617214756542218240},
		{"trnsfiopubky", 14836974533819359712},
		{"", 0},
	}
	for _, test := range tests {
		t.Run(test.Str, func(t *testing.T) {
			n, err := fio.NewName(test.Str)
			require.NoError(t, err)
			assert.Equal(t, fio.Name(test.Val), n)
			assert.Equal(t, test.Str, n.String())
		})
	}
}

func TestNameInvalid(t *testing.T) {
	tests := []struct {
		Str string
		Err string
	}{
		{"Alice", `invalid name "Alice": invalid character 'A'`},
		{"abcdefghijklmn", `invalid name "abcdefghijklmn": too long`},
		{"abcdefghijklz", `invalid name "abcdefghijklz": invalid 13th character`},
		{"alice.", `invalid name "alice.": not normalized`},
		{"bob6", `invalid name "bob6": invalid character '6'`},
	}
	for _, test := range tests {
		t.Run(test.Str, func(t *testing.T) {
			_, err := fio.NewName(test.Str)
			assert.EqualError(t, err, test.Err)
		})
	}
}

func TestNameJSON(t *testing.T) {
	data, err := json.Marshal(fio.ContractReqObt)
	require.NoError(t, err)
	assert.Equal(t, `"fio.reqobt"`, string(data))
	var n fio.Name
	require.NoError(t, json.Unmarshal(data, &n))
	assert.Equal(t, fio.ContractReqObt, n)
}

func TestTime(t *testing.T) {
	var tm fio.Time
	require.NoError(t, json.Unmarshal([]byte(`"2019-10-14T19:42:31.500"`), &tm))
	assert.Equal(t, time.Date(2019, 10, 14, 19, 42, 31, 500000000, time.UTC),
		tm.Time)
	require.NoError(t, json.Unmarshal([]byte(`1571082151`), &tm))
	assert.Equal(t, int64(1571082151), tm.Unix())

	sec := fio.NewTimePointSec(time.Date(2019, 10, 14, 19, 42, 31, 0, time.UTC))
	data, err := json.Marshal(sec)
	require.NoError(t, err)
	assert.Equal(t, `"2019-10-14T19:42:31"`, string(data))
	var parsed fio.TimePointSec
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, sec, parsed)
}
