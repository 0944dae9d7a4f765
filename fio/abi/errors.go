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

package abi

import (
	"fmt"

	"github.com/Factom-Asset-Tokens/fiod/fio"
)

// SerializationError is returned when a value does not match its ABI type or
// binary data cannot be decoded as its ABI type.
type SerializationError struct {
	Op   string // "serialize" or "deserialize"
	Type string
	Err  error
}

func (err *SerializationError) Error() string {
	return fmt.Sprintf("%v %v: %v", err.Op, err.Type, err.Err)
}

func (err *SerializationError) Unwrap() error { return err.Err }

// ProviderError is returned when the ABI of an account cannot be retrieved
// or decoded.
type ProviderError struct {
	Account fio.Name
	Err     error
}

func (err *ProviderError) Error() string {
	return fmt.Sprintf("abi of %v: %v", err.Account, err.Err)
}

func (err *ProviderError) Unwrap() error { return err.Err }
