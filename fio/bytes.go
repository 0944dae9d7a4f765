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
	"encoding/hex"
	"fmt"
)

// Bytes32 implements json.Marshaler and json.Unmarshaler to encode and decode
// strings with exactly 32 bytes of hex encoded data, such as chain IDs,
// transaction IDs and checksum256 fields.
type Bytes32 [32]byte

// NewBytes32 allocates a new Bytes32 object with the first 32 bytes of data
// contained in s32.
func NewBytes32(s32 []byte) *Bytes32 {
	b32 := new(Bytes32)
	copy(b32[:], s32)
	return b32
}

// NewBytes32FromString allocates a new Bytes32 object with the hex encoded
// string data contained in s32.
func NewBytes32FromString(s32 string) *Bytes32 {
	b32 := new(Bytes32)
	if err := b32.Set(s32); err != nil {
		return nil
	}
	return b32
}

// Set decodes a hex string with exactly 32 bytes of data into b.
func (b *Bytes32) Set(hexStr string) error {
	if len(hexStr) != len(b)*2 {
		return fmt.Errorf("invalid length")
	}
	if _, err := hex.Decode(b[:], []byte(hexStr)); err != nil {
		return err
	}
	return nil
}

// String returns the hex encoded data of b.
func (b Bytes32) String() string {
	return hex.EncodeToString(b[:])
}

// Type implements pflag.Value.
func (Bytes32) Type() string { return "Bytes32" }

// IsZero returns true if b is all zeros.
func (b Bytes32) IsZero() bool {
	return b == Bytes32{}
}

// UnmarshalJSON unmarshals a string with exactly 32 bytes of hex encoded data.
func (b *Bytes32) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%T: expected JSON string", b)
	}
	data = data[1 : len(data)-1]
	if len(data) != len(b)*2 {
		return fmt.Errorf("%T: invalid length", b)
	}
	if _, err := hex.Decode(b[:], data); err != nil {
		return fmt.Errorf("%T: %v", b, err)
	}
	return nil
}

// MarshalJSON marshals b into hex encoded data.
func (b Bytes32) MarshalJSON() ([]byte, error) {
	return bytesMarshalJSON(b[:])
}

// Bytes implements json.Marshaler and json.Unmarshaler to encode and decode
// strings with hex encoded data, such as packed transactions and block ids.
type Bytes []byte

// String returns the hex encoded data of b.
func (b Bytes) String() string {
	return hex.EncodeToString(b[:])
}

// UnmarshalJSON unmarshals a string of hex encoded data.
func (b *Bytes) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%T: expected JSON string", b)
	}
	data = data[1 : len(data)-1]
	*b = make(Bytes, hex.DecodedLen(len(data)))
	if _, err := hex.Decode(*b, data); err != nil {
		return fmt.Errorf("%T: %v", b, err)
	}
	return nil
}

// MarshalJSON marshals b into hex encoded data.
func (b Bytes) MarshalJSON() ([]byte, error) {
	return bytesMarshalJSON(b)
}

// bytesMarshalJSON marshals b into hex encoded data.
func bytesMarshalJSON(b []byte) ([]byte, error) {
	l := hex.EncodedLen(len(b)) + 2
	data := make([]byte, l)
	hex.Encode(data[1:], b[:])
	data[0] = '"'
	data[len(data)-1] = '"'
	return data, nil
}
