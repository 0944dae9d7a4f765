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
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SignaturePrefix is the human readable prefix of K1 signatures.
const SignaturePrefix = "SIG_K1_"

// compactHeader is added to the recovery id of a compact signature made with
// a compressed key.
const compactHeader = 27 + 4

// Signature is a recoverable compact secp256k1 signature: a header byte
// holding the recovery id followed by R and S.
type Signature [65]byte

// NewSignature parses a "SIG_K1_..." signature string.
func NewSignature(sigStr string) (Signature, error) {
	var sig Signature
	if err := sig.Set(sigStr); err != nil {
		return Signature{}, err
	}
	return sig, nil
}

// Set parses sigStr into sig.
func (sig *Signature) Set(sigStr string) error {
	if !strings.HasPrefix(sigStr, SignaturePrefix) {
		return keyFormatErrorf("signature", "invalid prefix")
	}
	b := base58.Decode(sigStr[len(SignaturePrefix):])
	if len(b) != len(sig)+4 {
		return keyFormatErrorf("signature", "invalid length")
	}
	if !bytes.Equal(ripemd160Checksum(b[:len(sig)], 'K', '1'),
		b[len(sig):]) {
		return keyFormatErrorf("signature", "invalid checksum")
	}
	copy(sig[:], b)
	return nil
}

// String encodes sig into its human readable form.
func (sig Signature) String() string {
	data := make([]byte, 0, len(sig)+4)
	data = append(data, sig[:]...)
	data = append(data, ripemd160Checksum(sig[:], 'K', '1')...)
	return SignaturePrefix + base58.Encode(data)
}

// Type implements pflag.Value.
func (Signature) Type() string { return "Signature" }

// MarshalJSON encodes sig as a JSON string using sig.String().
func (sig Signature) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%#v", sig.String())), nil
}

// UnmarshalJSON decodes a JSON string with a human readable signature into
// sig.
func (sig *Signature) UnmarshalJSON(data []byte) error {
	sigStr, err := unmarshalJSONString(data)
	if err != nil {
		return fmt.Errorf("%T: %v", sig, err)
	}
	return sig.Set(sigStr)
}

// IsCanonical reports whether neither R nor S has its high bit set and
// neither has a redundant leading zero byte.
func (sig Signature) IsCanonical() bool {
	return sig[1]&0x80 == 0 &&
		!(sig[1] == 0 && sig[2]&0x80 == 0) &&
		sig[33]&0x80 == 0 &&
		!(sig[33] == 0 && sig[34]&0x80 == 0)
}

// PublicKey recovers the public key that produced sig over digest.
func (sig Signature) PublicKey(digest []byte) (PublicKey, error) {
	key, _, err := ecdsa.RecoverCompact(sig[:], digest)
	if err != nil {
		return PublicKey{}, keyFormatErrorf("signature", "%v", err)
	}
	var pub PublicKey
	copy(pub[:], key.SerializeCompressed())
	return pub, nil
}

// Verify returns true if sig is a valid signature of digest by pub.
func (sig Signature) Verify(digest []byte, pub PublicKey) bool {
	recovered, err := sig.PublicKey(digest)
	if err != nil {
		return false
	}
	return recovered == pub
}

// Sign returns a canonical recoverable signature of the 32 byte digest.
// Nonces are generated per RFC6979, iterating until the signature is
// canonical.
func (pk PrivateKey) Sign(digest []byte) (Signature, error) {
	if len(digest) != 32 {
		return Signature{}, fmt.Errorf("invalid digest length: %v",
			len(digest))
	}
	var d secp256k1.ModNScalar
	if overflow := d.SetByteSlice(pk[:]); overflow || d.IsZero() {
		return Signature{}, keyFormatErrorf("private key",
			"out of range")
	}
	defer d.Zero()

	var e secp256k1.ModNScalar
	e.SetByteSlice(digest)

	for i := uint32(0); ; i++ {
		k := secp256k1.NonceRFC6979(pk[:], digest, nil, nil, i)
		sig, ok := signNonce(&d, &e, k)
		k.Zero()
		if ok && sig.IsCanonical() {
			return sig, nil
		}
	}
}

// signNonce computes the compact signature (r, s) of e by d with nonce k.
// It returns false if k yields a zero r or s.
func signNonce(d, e, k *secp256k1.ModNScalar) (Signature, bool) {
	var R secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(k, &R)
	R.ToAffine()

	var r secp256k1.ModNScalar
	overflow := r.SetBytes(R.X.Bytes())
	if r.IsZero() {
		return Signature{}, false
	}
	recID := byte(overflow << 1)
	if R.Y.IsOdd() {
		recID |= 1
	}

	kInv := new(secp256k1.ModNScalar).InverseValNonConst(k)
	s := new(secp256k1.ModNScalar).Mul2(&r, d).Add(e).Mul(kInv)
	if s.IsZero() {
		return Signature{}, false
	}
	if s.IsOverHalfOrder() {
		s.Negate()
		recID ^= 1
	}

	var sig Signature
	sig[0] = compactHeader + recID
	r.PutBytesUnchecked(sig[1:33])
	s.PutBytesUnchecked(sig[33:65])
	return sig, true
}
