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
	"fmt"
	"strings"
)

// KeyFormatError is returned when a key or signature string or byte
// encoding is malformed.
type KeyFormatError struct {
	Type string
	Err  error
}

func (err *KeyFormatError) Error() string {
	return fmt.Sprintf("invalid %v: %v", err.Type, err.Err)
}

func (err *KeyFormatError) Unwrap() error { return err.Err }

func keyFormatErrorf(typ, format string, args ...interface{}) error {
	return &KeyFormatError{Type: typ, Err: fmt.Errorf(format, args...)}
}

// DecryptionError is returned by Decrypt when the ciphertext was not
// produced with the given secret or has been altered.
type DecryptionError struct {
	Err error
}

func (err *DecryptionError) Error() string {
	return fmt.Sprintf("decryption failed: %v", err.Err)
}

func (err *DecryptionError) Unwrap() error { return err.Err }

// APIError is an error response from a FIO node. Nodes report errors in two
// shapes: the chain plugin's {"code", "message", "error":{...}} and the FIO
// API's {"type", "message", "fields":[...]}. Both decode into APIError.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       int    `json:"code,omitempty"`
	Type       string `json:"type,omitempty"`
	Message    string `json:"message"`
	Fields     []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
		Error string `json:"error"`
	} `json:"fields,omitempty"`
	Details *struct {
		Code    int    `json:"code"`
		Name    string `json:"name"`
		What    string `json:"what"`
		Details []struct {
			Message string `json:"message"`
			Method  string `json:"method"`
		} `json:"details"`
	} `json:"error,omitempty"`
}

func (err *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "fio node: %v", err.StatusCode)
	if len(err.Message) > 0 {
		fmt.Fprintf(&b, ": %v", err.Message)
	}
	if err.Details != nil {
		fmt.Fprintf(&b, ": %v", err.Details.What)
		for _, d := range err.Details.Details {
			fmt.Fprintf(&b, ": %v", d.Message)
		}
	}
	for _, f := range err.Fields {
		fmt.Fprintf(&b, ": %v: %v", f.Name, f.Error)
	}
	return b.String()
}
