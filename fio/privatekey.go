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

	"github.com/Factom-Asset-Tokens/base58"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/tyler-smith/go-bip39"
)

// wifVersion is the WIF version byte of FIO private keys.
const wifVersion = 0x80

// PrivateKey is a secp256k1 private key scalar.
type PrivateKey [32]byte

// NewPrivateKey returns a new random PrivateKey.
func NewPrivateKey() (PrivateKey, error) {
	key, err := btcec.NewPrivateKey()
	if err != nil {
		return PrivateKey{}, err
	}
	var pk PrivateKey
	copy(pk[:], key.Serialize())
	return pk, nil
}

// NewPrivateKeyFromWIF parses a WIF encoded private key.
func NewPrivateKeyFromWIF(wif string) (PrivateKey, error) {
	var pk PrivateKey
	if err := pk.Set(wif); err != nil {
		return PrivateKey{}, err
	}
	return pk, nil
}

// mnemonicPath is m/44'/235'/0'/0/0, the FIO BIP44 path.
var mnemonicPath = []uint32{
	hdkeychain.HardenedKeyStart + 44,
	hdkeychain.HardenedKeyStart + 235,
	hdkeychain.HardenedKeyStart + 0,
	0,
	0,
}

// NewPrivateKeyFromMnemonic derives the first FIO key of a BIP39 mnemonic
// with an empty passphrase.
func NewPrivateKeyFromMnemonic(mnemonic string) (PrivateKey, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return PrivateKey{}, keyFormatErrorf("mnemonic", "%v", err)
	}
	key, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return PrivateKey{}, keyFormatErrorf("mnemonic", "%v", err)
	}
	for _, i := range mnemonicPath {
		if key, err = key.Derive(i); err != nil {
			return PrivateKey{}, keyFormatErrorf("mnemonic", "%v", err)
		}
	}
	ecKey, err := key.ECPrivKey()
	if err != nil {
		return PrivateKey{}, keyFormatErrorf("mnemonic", "%v", err)
	}
	var pk PrivateKey
	copy(pk[:], ecKey.Serialize())
	return pk, nil
}

// Set parses a WIF string into pk. The optional compression flag byte is
// accepted.
func (pk *PrivateKey) Set(wif string) error {
	b, ver, err := base58.CheckDecode(wif, 1)
	if err != nil {
		return keyFormatErrorf("private key", "%v", err)
	}
	if ver[0] != wifVersion {
		return keyFormatErrorf("private key", "invalid version")
	}
	switch len(b) {
	case len(pk):
	case len(pk) + 1:
		if b[len(pk)] != 0x01 {
			return keyFormatErrorf("private key",
				"invalid compression flag")
		}
	default:
		return keyFormatErrorf("private key", "invalid length")
	}
	var key PrivateKey
	copy(key[:], b)
	if !key.valid() {
		return keyFormatErrorf("private key", "out of range")
	}
	*pk = key
	return nil
}

// valid reports whether pk is a non-zero scalar below the curve order.
func (pk PrivateKey) valid() bool {
	var d secp256k1.ModNScalar
	overflow := d.SetByteSlice(pk[:])
	return !overflow && !d.IsZero()
}

// String encodes pk as WIF.
func (pk PrivateKey) String() string {
	return base58.CheckEncode(pk[:], wifVersion)
}

// Type implements pflag.Value.
func (PrivateKey) Type() string { return "PrivateKey" }

// IsZero returns true if pk has not been set.
func (pk PrivateKey) IsZero() bool {
	return pk == PrivateKey{}
}

// PublicKey returns the compressed public key of pk.
func (pk PrivateKey) PublicKey() PublicKey {
	var pub PublicKey
	copy(pub[:], pk.ecPrivateKey().PubKey().SerializeCompressed())
	return pub
}

// MarshalJSON encodes pk as a JSON string using pk.String().
func (pk PrivateKey) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%#v", pk.String())), nil
}

// UnmarshalJSON decodes a JSON string with a WIF private key into pk.
func (pk *PrivateKey) UnmarshalJSON(data []byte) error {
	wif, err := unmarshalJSONString(data)
	if err != nil {
		return fmt.Errorf("%T: %v", pk, err)
	}
	return pk.Set(wif)
}

func (pk PrivateKey) ecPrivateKey() *btcec.PrivateKey {
	key, _ := btcec.PrivKeyFromBytes(pk[:])
	return key
}
