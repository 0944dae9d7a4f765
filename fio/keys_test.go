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

package fio_test

import (
	"encoding/json"
	"testing"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keyPairs = []struct {
	Name  string
	WIF   string
	Pub   string
	Actor string
}{{
	Name:  "alice",
	WIF:   "5JbcPK6qTpYxMXtfpGXagYbo3KFE3qqxv2tLXLMPR8dTWWeYCp9",
	Pub:   "FIO7c8SVyAyu6cACCaUjmPFEUyW9p2owWHeqq2WSEZ18FFTgErE1K",
	Actor: "5keniyy2gu4v",
}, {
	Name:  "bob",
	WIF:   "5JAExdhmQw8F1siD7uzLrhmzfjW97hubw7ZNxjAiAu6p7Xq9wqG",
	Pub:   "FIO8LKt4DBzXKzDGjFcZo5x82Nv5ahmbZ8AUNXBv2vMfm6smiHst3",
	Actor: "5hiabfczqj4z",
}, {
	Name:  "carol",
	WIF:   "5JLxoeRoMDGBbkLdXJjxuh3zHsSS7Lg6Ak9Ft8v8sSdYPkFuABF",
	Pub:   "FIO5oBUYbtGTxMS66pPkjC2p8pbA3zCtc8XD4dq9fMut867GRdh82",
	Actor: "r41zuwovtn44",
}}

func TestPrivateKeyPublicKey(t *testing.T) {
	for _, test := range keyPairs {
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			pk, err := fio.NewPrivateKeyFromWIF(test.WIF)
			require.NoError(err)
			assert.Equal(test.WIF, pk.String())

			pub := pk.PublicKey()
			assert.Equal(test.Pub, pub.String())

			parsed, err := fio.NewPublicKey(test.Pub)
			require.NoError(err)
			assert.Equal(pub, parsed)
			assert.Equal(test.Actor, pub.Actor().String())
		})
	}
}

func TestNewPrivateKey(t *testing.T) {
	pk, err := fio.NewPrivateKey()
	require.NoError(t, err)
	assert.False(t, pk.IsZero())

	var parsed fio.PrivateKey
	require.NoError(t, parsed.Set(pk.String()))
	assert.Equal(t, pk, parsed)
	assert.Len(t, pk.PublicKey().Actor().String(), 12)
}

func TestNewPrivateKeyFromMnemonic(t *testing.T) {
	mnemonic := "valley alien library bread worry brother " +
		"bundle hammer loyal barely dune brave"
	pk, err := fio.NewPrivateKeyFromMnemonic(mnemonic)
	require.NoError(t, err)
	again, err := fio.NewPrivateKeyFromMnemonic(mnemonic)
	require.NoError(t, err)
	assert.Equal(t, pk, again)

	_, err = fio.NewPrivateKeyFromMnemonic("not a valid mnemonic")
	var keyErr *fio.KeyFormatError
	assert.ErrorAs(t, err, &keyErr)
}

var invalidKeys = []struct {
	Name string
	Str  string
}{{
	Name: "private/invalid checksum",
	Str:  "5JbcPK6qTpYxMXtfpGXagYbo3KFE3qqxv2tLXLMPR8dTWWeYCp8",
}, {
	Name: "private/public key",
	Str:  "FIO7c8SVyAyu6cACCaUjmPFEUyW9p2owWHeqq2WSEZ18FFTgErE1K",
}}

func TestPrivateKeyInvalid(t *testing.T) {
	for _, test := range invalidKeys {
		t.Run(test.Name, func(t *testing.T) {
			_, err := fio.NewPrivateKeyFromWIF(test.Str)
			var keyErr *fio.KeyFormatError
			require.ErrorAs(t, err, &keyErr)
			assert.Equal(t, "private key", keyErr.Type)
		})
	}
}

func TestPublicKeyInvalid(t *testing.T) {
	tests := []struct {
		Name string
		Str  string
		Err  string
	}{{
		Name: "prefix",
		Str:  "EOS7c8SVyAyu6cACCaUjmPFEUyW9p2owWHeqq2WSEZ18FFTgErE1K",
		Err:  "invalid public key: invalid prefix",
	}, {
		Name: "checksum",
		Str:  "FIO7c8SVyAyu6cACCaUjmPFEUyW9p2owWHeqq2WSEZ18FFTgErE1J",
		Err:  "invalid public key: invalid checksum",
	}, {
		Name: "length",
		Str:  "FIO7c8SVyAyu6cACCaUjmPFEUyW9p2owWHeqq2WSEZ18FF",
		Err:  "invalid public key: invalid length",
	}, {
		Name: "empty",
		Str:  "",
		Err:  "invalid public key: invalid prefix",
	}}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := fio.NewPublicKey(test.Str)
			assert.EqualError(t, err, test.Err)
		})
	}
}

func TestPublicKeyJSON(t *testing.T) {
	pub, err := fio.NewPublicKey(keyPairs[0].Pub)
	require.NoError(t, err)
	data, err := json.Marshal(pub)
	require.NoError(t, err)
	assert.Equal(t, `"`+keyPairs[0].Pub+`"`, string(data))

	var parsed fio.PublicKey
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, pub, parsed)

	assert.EqualError(t, parsed.UnmarshalJSON([]byte(`5`)),
		"*fio.PublicKey: expected JSON string")
}
