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
	"encoding/base64"
	"encoding/hex"
	"math"
	"testing"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testABI = abi.MustParse(`{
	"version": "eosio::abi/1.1",
	"types": [{"new_type_name": "account_name", "type": "name"}],
	"structs": [{
		"name": "base", "base": "",
		"fields": [{"name": "id", "type": "uint16"}]
	}, {
		"name": "derived", "base": "base",
		"fields": [
			{"name": "owner", "type": "account_name"},
			{"name": "memo", "type": "string?"},
			{"name": "tags", "type": "string[]"},
			{"name": "ext", "type": "varuint32$"}
		]
	}],
	"variants": [{"name": "num_or_str", "types": ["uint8", "string"]}],
	"actions": [{"name": "transfer", "type": "derived", "ricardian_contract": ""}]
}`)

const chainID = "cf057bbfb72640471fd910bcb67639c22df9f92470936cddc1ade0e2f2e7dc4f"

var builtinTests = []struct {
	Type    string
	Value   interface{}
	Hex     string
	Decoded interface{}
}{
	{"bool", true, "01", true},
	{"int8", int8(-1), "ff", int8(-1)},
	{"uint16", uint16(513), "0102", uint16(513)},
	{"int32", int32(-2), "feffffff", int32(-2)},
	{"uint64", "18446744073709551615", "ffffffffffffffff", uint64(math.MaxUint64)},
	{"varuint32", 300, "ac02", uint32(300)},
	{"varint32", -1, "01", int32(-1)},
	{"varint32", 1, "02", int32(1)},
	{"float64", 1.5, "000000000000f83f", 1.5},
	{"name", "eosio", "0000000000ea3055", "eosio"},
	{"name", fio.ContractReqObt, "00403ed4aa0ba85b", "fio.reqobt"},
	{"string", "hi", "026869", "hi"},
	{"bytes", fio.Bytes{1, 2}, "020102", fio.Bytes{1, 2}},
	{"time_point_sec", "1970-01-01T00:01:40", "64000000", "1970-01-01T00:01:40"},
	{"time_point", "1970-01-01T00:00:01.000", "40420f0000000000",
		"1970-01-01T00:00:01.000"},
	{"symbol_code", "FIO", "46494f0000000000", "FIO"},
	{"symbol", "9,FIO", "0946494f00000000", "9,FIO"},
	{"asset", "1.000000000 FIO", "00ca9a3b000000000946494f00000000",
		"1.000000000 FIO"},
	{"asset", "-0.5 FIO", "fbffffffffffffff0146494f00000000", "-0.5 FIO"},
	{"checksum256", chainID, chainID, chainID},
	{"string[]", []string{"a", "b"}, "0201610162", []interface{}{"a", "b"}},
	{"uint8?", nil, "00", nil},
	{"uint8?", 7, "0107", uint8(7)},
	{"account_name", "active", "00000000a8ed3232", "active"},
	{"num_or_str", []interface{}{"string", "x"}, "010178",
		[]interface{}{"string", "x"}},
}

func TestBuiltins(t *testing.T) {
	for _, test := range builtinTests {
		test := test
		t.Run(test.Type, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			data, err := abi.Serialize(testABI, test.Type, test.Value)
			require.NoError(err)
			assert.Equal(test.Hex, hex.EncodeToString(data))

			v, err := abi.Deserialize(testABI, test.Type, data)
			require.NoError(err)
			assert.Equal(test.Decoded, v)
		})
	}
}

func TestKeys(t *testing.T) {
	require := require.New(t)
	priv, err := fio.NewPrivateKey()
	require.NoError(err)
	pub := priv.PublicKey()
	sig, err := priv.Sign(make([]byte, 32))
	require.NoError(err)

	data, err := abi.Serialize(testABI, "public_key", pub)
	require.NoError(err)
	assert.Len(t, data, 34)
	assert.Equal(t, byte(0), data[0])
	v, err := abi.Deserialize(testABI, "public_key", data)
	require.NoError(err)
	assert.Equal(t, pub.String(), v)

	data, err = abi.Serialize(testABI, "signature", sig)
	require.NoError(err)
	assert.Len(t, data, 66)
	v, err = abi.Deserialize(testABI, "signature", data)
	require.NoError(err)
	assert.Equal(t, sig.String(), v)

	data[0] = 1
	_, err = abi.Deserialize(testABI, "signature", data)
	assert.EqualError(t, err,
		"deserialize signature: unsupported key type 1")
}

func TestStruct(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		assert := assert.New(t)
		require := require.New(t)
		data, err := abi.Serialize(testABI, "derived", map[string]interface{}{
			"id": 1, "owner": "eosio", "tags": []string{"a"},
		})
		require.NoError(err)
		assert.Equal("0100"+"0000000000ea3055"+"00"+"010161",
			hex.EncodeToString(data))

		v, err := abi.Deserialize(testABI, "derived", data)
		require.NoError(err)
		assert.Equal(map[string]interface{}{
			"id": uint16(1), "owner": "eosio", "memo": nil,
			"tags": []interface{}{"a"},
		}, v)
	})
	t.Run("full", func(t *testing.T) {
		assert := assert.New(t)
		require := require.New(t)
		type derived struct {
			ID    uint16   `json:"id"`
			Owner fio.Name `json:"owner"`
			Memo  string   `json:"memo"`
			Tags  []string `json:"tags"`
			Ext   uint32   `json:"ext"`
		}
		in := derived{ID: 2, Owner: fio.NameActive, Memo: "m", Ext: 5}
		data, err := abi.Serialize(testABI, "derived", in)
		require.NoError(err)
		assert.Equal("0200"+"00000000a8ed3232"+"01016d"+"00"+"05",
			hex.EncodeToString(data))

		v, err := abi.Deserialize(testABI, "derived", data)
		require.NoError(err)
		var out derived
		require.NoError(abi.Convert(v, &out))
		in.Tags = []string{}
		assert.Equal(in, out)
	})
}

func TestSerializeErrors(t *testing.T) {
	tests := []struct {
		Name  string
		Type  string
		Value interface{}
		Err   string
	}{{
		Name:  "missing field",
		Type:  "derived",
		Value: map[string]interface{}{"id": 1},
		Err:   "serialize derived: missing field owner",
	}, {
		Name:  "wrong type",
		Type:  "derived",
		Value: map[string]interface{}{"id": 1, "owner": 5},
		Err:   "serialize derived: owner: expected string, got json.Number",
	}, {
		Name:  "array element",
		Type:  "derived",
		Value: map[string]interface{}{"id": 1, "owner": "a", "tags": []int{1}},
		Err:   "serialize derived: tags: [0]: expected string, got json.Number",
	}, {
		Name:  "empty object",
		Type:  "base",
		Value: map[string]interface{}{},
		Err:   "serialize base: missing field id",
	}, {
		Name:  "unknown type",
		Type:  "nope",
		Value: 1,
		Err:   `serialize nope: unknown type "nope"`,
	}, {
		Name:  "overflow",
		Type:  "uint8",
		Value: 256,
		Err: `serialize uint8: strconv.ParseUint: ` +
			`parsing "256": value out of range`,
	}, {
		Name:  "invalid name",
		Type:  "name",
		Value: "EOSIO",
		Err: `serialize name: invalid name "EOSIO": ` +
			`invalid character 'E'`,
	}, {
		Name:  "invalid variant",
		Type:  "num_or_str",
		Value: []interface{}{"bool", true},
		Err:   `serialize num_or_str: variant num_or_str: invalid type "bool"`,
	}}
	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			_, err := abi.Serialize(testABI, test.Type, test.Value)
			assert.EqualError(t, err, test.Err)
			var serr *abi.SerializationError
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestDeserializeErrors(t *testing.T) {
	_, err := abi.Deserialize(testABI, "uint32", []byte{1, 2})
	assert.EqualError(t, err,
		"deserialize uint32: unexpected end of data at offset 0")

	_, err = abi.Deserialize(testABI, "uint8", []byte{1, 2})
	assert.EqualError(t, err, "deserialize uint8: 1 trailing bytes")

	_, err = abi.Deserialize(testABI, "bool", []byte{2})
	assert.EqualError(t, err, "deserialize bool: invalid bool 0x2")

	_, err = abi.Deserialize(testABI, "string", []byte{5, 'a'})
	assert.EqualError(t, err,
		"deserialize string: length 5 exceeds remaining data")
}

func TestTransaction(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	trx := map[string]interface{}{
		"expiration":             "2019-10-14T19:42:31",
		"ref_block_num":          1,
		"ref_block_prefix":       2,
		"max_net_usage_words":    0,
		"max_cpu_usage_ms":       0,
		"delay_sec":              0,
		"context_free_actions":   nil,
		"transaction_extensions": nil,
		"actions": []interface{}{map[string]interface{}{
			"account": "fio.reqobt",
			"name":    "newfundsreq",
			"authorization": []interface{}{map[string]interface{}{
				"actor": "5keniyy2gu4v", "permission": "active",
			}},
			"data": "0102",
		}},
	}
	data, err := abi.SerializeTransaction(trx)
	require.NoError(err)
	assert.Equal("a7cfa45d0100020000000000000001"+
		"00403ed4aa0ba85b00acba384dbdb89a"+
		"01b08966c27b37152c00000000a8ed3232"+
		"02010200", hex.EncodeToString(data))

	v, err := abi.DeserializeTransaction(data)
	require.NoError(err)
	assert.Equal("2019-10-14T19:42:31", v["expiration"])
	assert.Equal(uint16(1), v["ref_block_num"])
	assert.Equal(uint32(2), v["ref_block_prefix"])
	actions := v["actions"].([]interface{})
	require.Len(actions, 1)
	act := actions[0].(map[string]interface{})
	assert.Equal("newfundsreq", act["name"])
	assert.Equal(fio.Bytes{1, 2}, act["data"])
}

type fundsContent struct {
	PayeePublicAddress string `json:"payee_public_address"`
	Amount             string `json:"amount"`
	TokenCode          string `json:"token_code"`
	Memo               string `json:"memo,omitempty"`
	Hash               string `json:"hash,omitempty"`
	OfflineURL         string `json:"offline_url,omitempty"`
}

func TestContent(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	in := fundsContent{
		PayeePublicAddress: "1AkZGXsnyDfp4faMmVfTWsN1nNRRvEZJk8",
		Amount:             "1.5",
		TokenCode:          "BTC",
		Memo:               "invoice 42",
	}
	data, err := abi.SerializeNewFundsContent(in)
	require.NoError(err)
	// hash and offline_url are absent.
	assert.Equal([]byte{0, 0}, data[len(data)-2:])

	var out fundsContent
	require.NoError(abi.DeserializeNewFundsContent(data, &out))
	assert.Equal(in, out)

	err = abi.DeserializeRecordSendContent(data, &out)
	var serr *abi.SerializationError
	assert.ErrorAs(err, &serr)
}

func TestABIDef(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	data, err := abi.EncodeABIDef(testABI)
	require.NoError(err)

	for _, b64 := range []string{
		base64Std(data),
		base64Raw(data),
	} {
		a, err := abi.DecodeABIDef(b64)
		require.NoError(err)
		assert.Equal(testABI.Version, a.Version)
		assert.Equal(testABI.Types, a.Types)
		assert.Equal(testABI.Structs, a.Structs)
		assert.Equal(testABI.Variants, a.Variants)
		assert.Equal(testABI.Actions, a.Actions)
		typ, ok := a.ActionType(fio.MustName("transfer"))
		assert.True(ok)
		assert.Equal("derived", typ)
		_, ok = a.Struct("base")
		assert.True(ok)
	}

	_, err = abi.DecodeABIDef("!!")
	assert.Error(err)
}

func base64Std(data []byte) string { return base64.StdEncoding.EncodeToString(data) }

func base64Raw(data []byte) string { return base64.RawStdEncoding.EncodeToString(data) }
