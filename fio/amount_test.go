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
	"testing"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSUF(t *testing.T) {
	assert.Equal(t, "0.000000000", fio.FormatSUF(0))
	assert.Equal(t, "1.500000000", fio.FormatSUF(1500000000))
	assert.Equal(t, "12.000000001", fio.FormatSUF(12000000001))
}

var parseFIOTests = []struct {
	Name   string
	Amount string
	SUF    uint64
	Error  string
}{{
	Name:   "whole",
	Amount: "12",
	SUF:    12 * fio.SUFPerFIO,
}, {
	Name:   "fraction",
	Amount: "0.5",
	SUF:    500000000,
}, {
	Name:   "leading dot",
	Amount: ".000000001",
	SUF:    1,
}, {
	Name:   "trailing dot",
	Amount: "3.",
	SUF:    3 * fio.SUFPerFIO,
}, {
	Name:   "too precise",
	Amount: "1.0000000001",
	Error:  `invalid FIO amount: "1.0000000001": more than 9 decimal places`,
}, {
	Name:   "empty",
	Amount: ".",
	Error:  `invalid FIO amount: "."`,
}, {
	Name:   "negative",
	Amount: "-1",
	Error:  `invalid FIO amount: "-1"`,
}, {
	Name:   "overflow",
	Amount: "18446744074",
	Error:  `invalid FIO amount: "18446744074": overflow`,
}}

func TestParseFIO(t *testing.T) {
	for _, test := range parseFIOTests {
		t.Run(test.Name, func(t *testing.T) {
			suf, err := fio.ParseFIO(test.Amount)
			if len(test.Error) > 0 {
				assert.EqualError(t, err, test.Error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.SUF, suf)
			assert.Equal(t, suf, mustParse(t, fio.FormatSUF(suf)))
		})
	}
}

func mustParse(t *testing.T, amount string) uint64 {
	suf, err := fio.ParseFIO(amount)
	require.NoError(t, err)
	return suf
}
