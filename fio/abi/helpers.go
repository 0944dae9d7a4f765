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
	"encoding/base64"
	"fmt"
	"strings"
)

// SerializeTransaction serializes trx, typically a *trx.Transaction, as the
// builtin transaction type.
func SerializeTransaction(trx interface{}) ([]byte, error) {
	return Serialize(TransactionABI, TypeTransaction, trx)
}

// DeserializeTransaction deserializes a packed transaction into its generic
// JSON form.
func DeserializeTransaction(data []byte) (map[string]interface{}, error) {
	v, err := Deserialize(TransactionABI, TypeTransaction, data)
	if err != nil {
		return nil, err
	}
	return v.(map[string]interface{}), nil
}

// EncodeABIDef serializes a as a binary abi_def.
func EncodeABIDef(a *ABI) ([]byte, error) {
	return Serialize(DefinitionABI, TypeABIDef, a)
}

// DecodeABIDef decodes the base64 binary abi_def returned by get_raw_abi.
// Padded and unpadded base64 are both accepted.
func DecodeABIDef(b64 string) (*ABI, error) {
	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(b64, "="))
	if err != nil {
		return nil, fmt.Errorf("abi_def: %v", err)
	}
	v, err := Deserialize(DefinitionABI, TypeABIDef, data)
	if err != nil {
		return nil, err
	}
	var a ABI
	if err := Convert(v, &a); err != nil {
		return nil, &SerializationError{"deserialize", TypeABIDef, err}
	}
	return &a, nil
}

// SerializeNewFundsContent serializes the content of a funds request.
func SerializeNewFundsContent(content interface{}) ([]byte, error) {
	return Serialize(ContentABI, TypeNewFundsContent, content)
}

// DeserializeNewFundsContent deserializes the content of a funds request
// into content.
func DeserializeNewFundsContent(data []byte, content interface{}) error {
	return deserializeInto(TypeNewFundsContent, data, content)
}

// SerializeRecordSendContent serializes the content of a record of sent
// funds.
func SerializeRecordSendContent(content interface{}) ([]byte, error) {
	return Serialize(ContentABI, TypeRecordSendContent, content)
}

// DeserializeRecordSendContent deserializes the content of a record of sent
// funds into content.
func DeserializeRecordSendContent(data []byte, content interface{}) error {
	return deserializeInto(TypeRecordSendContent, data, content)
}

func deserializeInto(typeName string, data []byte, dst interface{}) error {
	v, err := Deserialize(ContentABI, typeName, data)
	if err != nil {
		return err
	}
	if err := Convert(v, dst); err != nil {
		return &SerializationError{"deserialize", typeName, err}
	}
	return nil
}
