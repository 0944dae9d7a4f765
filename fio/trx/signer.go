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

package trx

import (
	"fmt"

	"github.com/Factom-Asset-Tokens/fiod/fio"
)

// Signer signs transaction digests. The Processor signs with every key
// returned by PublicKeys.
type Signer interface {
	PublicKeys() []fio.PublicKey
	SignDigest(pub fio.PublicKey, digest [32]byte) (fio.Signature, error)
}

// KeySigner is a Signer holding private keys in memory.
type KeySigner struct {
	pubs []fio.PublicKey
	keys map[fio.PublicKey]fio.PrivateKey
}

var _ Signer = (*KeySigner)(nil)

// NewKeySigner returns a KeySigner for keys. Duplicate keys are ignored.
func NewKeySigner(keys ...fio.PrivateKey) *KeySigner {
	s := &KeySigner{keys: make(map[fio.PublicKey]fio.PrivateKey, len(keys))}
	for _, key := range keys {
		pub := key.PublicKey()
		if _, ok := s.keys[pub]; ok {
			continue
		}
		s.keys[pub] = key
		s.pubs = append(s.pubs, pub)
	}
	return s
}

func (s *KeySigner) PublicKeys() []fio.PublicKey {
	return append([]fio.PublicKey{}, s.pubs...)
}

func (s *KeySigner) SignDigest(pub fio.PublicKey,
	digest [32]byte) (fio.Signature, error) {
	key, ok := s.keys[pub]
	if !ok {
		return fio.Signature{}, fmt.Errorf("no private key for %v", pub)
	}
	return key.Sign(digest[:])
}
