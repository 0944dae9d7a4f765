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

package api

import (
	jrpc "github.com/AdamSLevy/jsonrpc2/v14"
)

// Errors returned by fiod in addition to the standard JSON-RPC errors.
// Validation failures are reported as jsonrpc2.ErrorInvalidParams. Data
// holds the message of the underlying error.
var (
	ErrorDecryption = jrpc.NewError(-32811, "Decryption Error", nil)
	ErrorABI        = jrpc.NewError(-32812, "ABI Error", nil)
	ErrorSerialize  = jrpc.NewError(-32813, "Serialization Error", nil)

	ErrorTransactionPrepare   = jrpc.NewError(-32820, "Transaction Prepare Error", nil)
	ErrorTransactionSign      = jrpc.NewError(-32821, "Transaction Sign Error", nil)
	ErrorTransactionBroadcast = jrpc.NewError(-32822, "Transaction Broadcast Error", nil)

	ErrorFIONode = jrpc.NewError(-32830, "FIO Node Error", nil)
)
