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

package srv

import (
	"errors"
	"fmt"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"

	"github.com/Factom-Asset-Tokens/fiod/api"
	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

type chainIDError struct {
	Expected, Actual fio.Bytes32
}

func (err *chainIDError) Error() string {
	return fmt.Sprintf("invalid FIO chain ID: %v, expected: %v",
		err.Actual, err.Expected)
}

var kindErrors = map[sdk.Kind]jrpc.Error{
	sdk.KindDecryption:           api.ErrorDecryption,
	sdk.KindAbiProvider:          api.ErrorABI,
	sdk.KindSerialization:        api.ErrorSerialize,
	sdk.KindTransactionPrepare:   api.ErrorTransactionPrepare,
	sdk.KindTransactionSign:      api.ErrorTransactionSign,
	sdk.KindTransactionBroadcast: api.ErrorTransactionBroadcast,
	sdk.KindNetworkQuery:         api.ErrorFIONode,
}

// apiError converts an error returned by the facade into a jsonrpc2.Error
// carrying the error message, and the node's response if there was one, as
// data.
func apiError(err error) jrpc.Error {
	var sdkErr *sdk.Error
	if !errors.As(err, &sdkErr) {
		return jrpc.NewError(jrpc.ErrorCodeInternal, "Internal error",
			err.Error())
	}
	switch sdkErr.Kind {
	case sdk.KindValidation, sdk.KindKeyFormat:
		return jrpc.ErrorInvalidParams(sdkErr.Message)
	}
	jErr, ok := kindErrors[sdkErr.Kind]
	if !ok {
		jErr = jrpc.NewError(jrpc.ErrorCodeInternal, "Internal error", nil)
	}
	var apiErr *fio.APIError
	if errors.As(err, &apiErr) {
		jErr.Data = apiErr
	} else {
		jErr.Data = sdkErr.Message
	}
	return jErr
}
