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

package sdk

import (
	"errors"
	"fmt"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/Factom-Asset-Tokens/fiod/fio/trx"
)

// Kind classifies an Error by the layer that produced it.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindKeyFormat
	KindDecryption
	KindAbiProvider
	KindSerialization
	KindTransactionPrepare
	KindTransactionSign
	KindTransactionBroadcast
	KindNetworkQuery
)

var kindNames = map[Kind]string{
	KindValidation:           "validation",
	KindKeyFormat:            "key format",
	KindDecryption:           "decryption",
	KindAbiProvider:          "abi provider",
	KindSerialization:        "serialization",
	KindTransactionPrepare:   "transaction prepare",
	KindTransactionSign:      "transaction sign",
	KindTransactionBroadcast: "transaction broadcast",
	KindNetworkQuery:         "network query",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the only error type returned by SDK methods. Err is the lower
// layer error, if any, and is reachable with errors.As.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v error: %v", err.Kind, err.Message)
}

func (err *Error) Unwrap() error { return err.Err }

func validationError(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Message: msg, Err: err}
}

// wrap converts err into an *Error. Processor stage errors take precedence
// over their causes. Errors of unknown type are classified as def.
func wrap(def Kind, err error) error {
	if err == nil {
		return nil
	}
	var sdkErr *Error
	if errors.As(err, &sdkErr) {
		return sdkErr
	}
	return &Error{Kind: kindOf(def, err), Message: err.Error(), Err: err}
}

func kindOf(def Kind, err error) Kind {
	var (
		prepErr  *trx.PrepareError
		signErr  *trx.SignError
		bcastErr *trx.BroadcastError
		provErr  *abi.ProviderError
		serErr   *abi.SerializationError
		keyErr   *fio.KeyFormatError
		decErr   *fio.DecryptionError
		apiErr   *fio.APIError
	)
	switch {
	case errors.As(err, &prepErr):
		return KindTransactionPrepare
	case errors.As(err, &signErr):
		return KindTransactionSign
	case errors.As(err, &bcastErr):
		return KindTransactionBroadcast
	case errors.As(err, &provErr):
		return KindAbiProvider
	case errors.As(err, &serErr):
		return KindSerialization
	case errors.As(err, &keyErr):
		return KindKeyFormat
	case errors.As(err, &decErr):
		return KindDecryption
	case errors.As(err, &apiErr):
		return KindNetworkQuery
	}
	return def
}
