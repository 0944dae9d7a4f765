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
	"strings"
)

// Name is an account, contract, action or permission name. It is a base32
// string of up to 13 characters packed into a uint64.
type Name uint64

const nameCharset = ".12345abcdefghijklmnopqrstuvwxyz"

// Well known names.
var (
	NameActive = MustName("active")

	ContractAddress = MustName("fio.address")
	ContractToken   = MustName("fio.token")
	ContractReqObt  = MustName("fio.reqobt")
)

// NewName parses s into a Name. Only names that encode back to exactly s are
// accepted.
func NewName(s string) (Name, error) {
	var n Name
	if err := n.Set(s); err != nil {
		return 0, err
	}
	return n, nil
}

// MustName is like NewName but panics on an invalid name.
func MustName(s string) Name {
	n, err := NewName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func nameSymbol(c byte) (uint64, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 6, true
	case c >= '1' && c <= '5':
		return uint64(c-'1') + 1, true
	case c == '.':
		return 0, true
	}
	return 0, false
}

// Set parses s into n.
func (n *Name) Set(s string) error {
	if len(s) > 13 {
		return fmt.Errorf("invalid name %q: too long", s)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		sym, ok := nameSymbol(s[i])
		if !ok {
			return fmt.Errorf("invalid name %q: invalid character %q",
				s, s[i])
		}
		if i < 12 {
			v |= (sym & 0x1f) << uint(64-5*(i+1))
			continue
		}
		if sym > 0x0f {
			return fmt.Errorf("invalid name %q: invalid 13th character",
				s)
		}
		v |= sym
	}
	if Name(v).String() != s {
		return fmt.Errorf("invalid name %q: not normalized", s)
	}
	*n = Name(v)
	return nil
}

// String returns the base32 form of n without trailing dots.
func (n Name) String() string {
	var str [13]byte
	v := uint64(n)
	for i := 0; i <= 12; i++ {
		var c byte
		if i == 0 {
			c = nameCharset[v&0x0f]
			v >>= 4
		} else {
			c = nameCharset[v&0x1f]
			v >>= 5
		}
		str[12-i] = c
	}
	return strings.TrimRight(string(str[:]), ".")
}

// Type implements pflag.Value.
func (Name) Type() string { return "Name" }

// MarshalJSON encodes n as a JSON string.
func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

// UnmarshalJSON decodes a JSON string into n.
func (n *Name) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%T: %v", n, err)
	}
	return n.Set(s)
}
