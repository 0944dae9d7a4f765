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
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
)

// SharedSecret is the sha512 hash of the x coordinate of the ECDH point of
// two keys. SharedSecret(a, B) == SharedSecret(b, A).
type SharedSecret [64]byte

// NewSharedSecret computes the shared secret of priv and pub. An unset or
// out of range priv and an unset or off curve pub are rejected with a
// *KeyFormatError, as is a product at infinity.
func NewSharedSecret(priv PrivateKey, pub PublicKey) (SharedSecret, error) {
	if !priv.valid() {
		return SharedSecret{}, keyFormatErrorf("private key", "out of range")
	}
	if pub.IsZero() {
		return SharedSecret{}, keyFormatErrorf("public key", "not set")
	}
	key, err := pub.ecPublicKey()
	if err != nil {
		return SharedSecret{}, err
	}
	x := btcec.GenerateSharedSecret(priv.ecPrivateKey(), key)
	if bytes.Equal(x, make([]byte, len(x))) {
		return SharedSecret{}, keyFormatErrorf("public key",
			"shared point at infinity")
	}
	return SharedSecret(sha512.Sum512(x)), nil
}

const (
	ivSize  = aes.BlockSize
	macSize = sha256.Size
)

// randReader is replaced in tests.
var randReader io.Reader = rand.Reader

// Encrypt encrypts plaintext under secret. The secret is hashed with sha512;
// the first half keys AES-256-CBC and the second half keys an HMAC-SHA256
// over the IV and ciphertext. The result is IV || ciphertext || HMAC.
func Encrypt(plaintext, secret []byte) ([]byte, error) {
	ke, km := deriveKeys(secret)

	block, err := aes.NewCipher(ke)
	if err != nil {
		return nil, err
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)

	out := make([]byte, ivSize+len(padded), ivSize+len(padded)+macSize)
	iv := out[:ivSize]
	if _, err := io.ReadFull(randReader, iv); err != nil {
		return nil, err
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[ivSize:], padded)

	mac := hmac.New(sha256.New, km)
	mac.Write(out)
	return mac.Sum(out), nil
}

// Decrypt reverses Encrypt. It returns a *DecryptionError if the HMAC does
// not match, which is the case for any other secret or altered data.
func Decrypt(data, secret []byte) ([]byte, error) {
	if len(data) < ivSize+aes.BlockSize+macSize ||
		(len(data)-ivSize-macSize)%aes.BlockSize != 0 {
		return nil, &DecryptionError{Err: fmt.Errorf("invalid length")}
	}
	ke, km := deriveKeys(secret)

	body, tag := data[:len(data)-macSize], data[len(data)-macSize:]
	mac := hmac.New(sha256.New, km)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), tag) {
		return nil, &DecryptionError{Err: fmt.Errorf("invalid hmac")}
	}

	block, err := aes.NewCipher(ke)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}
	iv, ciphertext := body[:ivSize], body[ivSize:]
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}
	return plaintext, nil
}

// EncryptString is Encrypt with the result base64 encoded, the form stored
// in the content field of FIO requests.
func EncryptString(plaintext, secret []byte) (string, error) {
	data, err := Encrypt(plaintext, secret)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecryptString decodes base64 content and decrypts it.
func DecryptString(content string, secret []byte) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(content)
	if err != nil {
		return nil, &DecryptionError{Err: err}
	}
	return Decrypt(data, secret)
}

func deriveKeys(secret []byte) (ke, km []byte) {
	k := sha512.Sum512(secret)
	return k[:32], k[32:]
}

func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(append(make([]byte, 0, len(data)+n), data...),
		bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	if len(data) == 0 || len(data)%size != 0 {
		return nil, fmt.Errorf("invalid padding")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > size {
		return nil, fmt.Errorf("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}
