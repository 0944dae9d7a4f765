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

package trx

import "fmt"

// PrepareError is returned by Processor.Prepare.
type PrepareError struct {
	Err error
}

func (err *PrepareError) Error() string {
	return fmt.Sprintf("prepare transaction: %v", err.Err)
}

func (err *PrepareError) Unwrap() error { return err.Err }

// SignError is returned by Processor.Sign.
type SignError struct {
	Err error
}

func (err *SignError) Error() string {
	return fmt.Sprintf("sign transaction: %v", err.Err)
}

func (err *SignError) Unwrap() error { return err.Err }

// BroadcastError is returned by Processor.Broadcast.
type BroadcastError struct {
	Err error
}

func (err *BroadcastError) Error() string {
	return fmt.Sprintf("broadcast transaction: %v", err.Err)
}

func (err *BroadcastError) Unwrap() error { return err.Err }
