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
	"bytes"
	"fmt"
	"strings"

	"github.com/Factom-Asset-Tokens/base58"
	"github.com/btcsuite/btcd/btcec/v2"
	"golang.org/x/crypto/ripemd160"
)

// PublicKeyPrefix is the human readable prefix of all FIO public keys.
const PublicKeyPrefix = "FIO"

// PublicKey is a compressed secp256k1 public key.
type PublicKey [33]byte

// NewPublicKey parses a "FIO..." public key string.
func NewPublicKey(pubStr string) (PublicKey, error) {
	var pub PublicKey
	if err := pub.Set(pubStr); err != nil {
		return PublicKey{}, err
	}
	return pub, nil
}

// Set parses pubStr into pub. The checksum and the curve point are
// verified.
func (pub *PublicKey) Set(pubStr string) error {
	if !strings.HasPrefix(pubStr, PublicKeyPrefix) {
		return keyFormatErrorf("public key", "invalid prefix")
	}
	b := base58.Decode(pubStr[len(PublicKeyPrefix):])
	if len(b) != len(pub)+4 {
		return keyFormatErrorf("public key", "invalid length")
	}
	if !bytes.Equal(ripemd160Checksum(b[:len(pub)]), b[len(pub):]) {
		return keyFormatErrorf("public key", "invalid checksum")
	}
	if _, err := btcec.ParsePubKey(b[:len(pub)]); err != nil {
		return keyFormatErrorf("public key", "%v", err)
	}
	copy(pub[:], b)
	return nil
}

// String encodes pub into its human readable form.
func (pub PublicKey) String() string {
	data := make([]byte, 0, len(pub)+4)
	data = append(data, pub[:]...)
	data = append(data, ripemd160Checksum(pub[:])...)
	return PublicKeyPrefix + base58.Encode(data)
}

// Type implements pflag.Value.
func (PublicKey) Type() string { return "PublicKey" }

// IsZero returns true if pub has not been set.
func (pub PublicKey) IsZero() bool {
	return pub == PublicKey{}
}

// Actor returns the FIO account name controlled by pub. It is derived from
// the key bytes following the sign byte, skipping any 5 bit group that is
// zero, so the name never contains a '.'.
func (pub PublicKey) Actor() Name {
	var v uint64
	for i, n := 1, 0; n < 12 && i < len(pub); i++ {
		c := uint64(pub[i] & 0x1f)
		if c == 0 {
			continue
		}
		v |= c << uint(5*(12-n)-1)
		n++
	}
	return Name(v)
}

// MarshalJSON encodes pub as a JSON string using pub.String().
func (pub PublicKey) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%#v", pub.String())), nil
}

// UnmarshalJSON decodes a JSON string with a human readable public key into
// pub.
func (pub *PublicKey) UnmarshalJSON(data []byte) error {
	pubStr, err := unmarshalJSONString(data)
	if err != nil {
		return fmt.Errorf("%T: %v", pub, err)
	}
	return pub.Set(pubStr)
}

func (pub PublicKey) ecPublicKey() (*btcec.PublicKey, error) {
	key, err := btcec.ParsePubKey(pub[:])
	if err != nil {
		return nil, keyFormatErrorf("public key", "%v", err)
	}
	return key, nil
}

// ripemd160Checksum returns the first 4 bytes of the ripemd160 hash of data
// followed by suffix.
func ripemd160Checksum(data []byte, suffix ...byte) []byte {
	h := ripemd160.New()
	h.Write(data)
	h.Write(suffix)
	return h.Sum(nil)[:4]
}

func unmarshalJSONString(data []byte) (string, error) {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return "", fmt.Errorf("expected JSON string")
	}
	return string(data[1 : len(data)-1]), nil
}
