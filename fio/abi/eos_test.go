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

package abi_test

import (
	"math"
	"testing"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contractABI = abi.MustParse(`{
	"version": "eosio::abi/1.1",
	"types": [{"new_type_name": "account_name", "type": "name"}],
	"structs": [{
		"name": "header", "base": "",
		"fields": [{"name": "id", "type": "uint16"}]
	}, {
		"name": "post", "base": "header",
		"fields": [
			{"name": "owner", "type": "account_name"},
			{"name": "memo", "type": "string?"},
			{"name": "tags", "type": "string[]"},
			{"name": "amount", "type": "int64"},
			{"name": "nonce", "type": "uint64"},
			{"name": "data", "type": "bytes"},
			{"name": "flag", "type": "bool"}
		]
	}, {
		"name": "setkey", "base": "",
		"fields": [
			{"name": "owner", "type": "name"},
			{"name": "key", "type": "public_key"}
		]
	}],
	"actions": [
		{"name": "post", "type": "post", "ricardian_contract": ""},
		{"name": "setkey", "type": "setkey", "ricardian_contract": ""}
	]
}`)

func TestContractSerializer(t *testing.T) {
	var s abi.ContractSerializer
	tests := []struct {
		Name    string
		Value   map[string]interface{}
		Decoded map[string]interface{}
	}{{
		Name: "all fields",
		Value: map[string]interface{}{
			"id":     7,
			"owner":  "alice",
			"memo":   "hi",
			"tags":   []string{"a", "b"},
			"amount": int64(math.MaxInt64),
			"nonce":  uint64(math.MaxUint64),
			"data":   fio.Bytes{1, 2},
			"flag":   true,
		},
		Decoded: map[string]interface{}{
			"id":     uint16(7),
			"owner":  "alice",
			"memo":   "hi",
			"tags":   []interface{}{"a", "b"},
			"amount": int64(math.MaxInt64),
			"nonce":  uint64(math.MaxUint64),
			"data":   fio.Bytes{1, 2},
			"flag":   true,
		},
	}, {
		Name: "empty",
		Value: map[string]interface{}{
			"id":     0,
			"owner":  "",
			"tags":   []string{},
			"amount": int64(math.MinInt64),
			"nonce":  0,
			"data":   fio.Bytes{},
			"flag":   false,
		},
		Decoded: map[string]interface{}{
			"id":     uint16(0),
			"owner":  "",
			"memo":   nil,
			"tags":   []interface{}{},
			"amount": int64(math.MinInt64),
			"nonce":  uint64(0),
			"data":   fio.Bytes{},
			"flag":   false,
		},
	}}

	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			data, err := s.Serialize(contractABI, "post", test.Value)
			require.NoError(err)
			binary, err := abi.Serialize(contractABI, "post", test.Value)
			require.NoError(err)
			assert.Equal(binary, data)

			v, err := s.Deserialize(contractABI, "post", data)
			require.NoError(err)
			assert.Equal(test.Decoded, v)
		})
	}
}

func TestContractSerializerMissingField(t *testing.T) {
	_, err := abi.ContractSerializer{}.Serialize(contractABI, "post",
		map[string]interface{}{"id": 1, "owner": "alice"})
	var serr *abi.SerializationError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "missing field")

	_, err = abi.ContractSerializer{}.Serialize(contractABI, "post",
		map[string]interface{}{"owner": "alice"})
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, err.Error(), "missing field id")
}

func TestContractSerializerFallback(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	var s abi.ContractSerializer

	pub, err := fio.NewPublicKey("FIO7c8SVyAyu6cACCaUjmPFEUyW9p2owWHeqq2WSEZ18FFTgErE1K")
	require.NoError(err)
	in := map[string]interface{}{"owner": "alice", "key": pub}
	data, err := s.Serialize(contractABI, "setkey", in)
	require.NoError(err)
	v, err := s.Deserialize(contractABI, "setkey", data)
	require.NoError(err)
	assert.Equal(map[string]interface{}{"owner": "alice", "key": pub.String()}, v)

	data, err = s.Serialize(contractABI, "uint16", 513)
	require.NoError(err)
	assert.Equal([]byte{1, 2}, data)

	header := map[string]interface{}{
		"expiration":             "2019-10-14T20:42:31",
		"ref_block_num":          1,
		"ref_block_prefix":       2,
		"max_net_usage_words":    0,
		"max_cpu_usage_ms":       0,
		"delay_sec":              0,
		"context_free_actions":   []interface{}{},
		"actions":                []interface{}{},
		"transaction_extensions": []interface{}{},
	}
	data, err = s.Serialize(abi.TransactionABI, abi.TypeTransaction, header)
	require.NoError(err)
	binary, err := abi.Serialize(abi.TransactionABI, abi.TypeTransaction, header)
	require.NoError(err)
	assert.Equal(binary, data)
}
