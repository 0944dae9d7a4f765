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

// Package fio provides the primitives for working with the FIO blockchain:
// secp256k1 keys and signatures in FIO's string formats, the ECDH shared
// secret and authenticated cipher used for private request content, account
// names, and a Client for the FIO node REST API.
//
// Keys
//
// A PrivateKey is encoded as WIF. A PublicKey is encoded with the "FIO"
// prefix followed by the base58 of the compressed key and a ripemd160
// checksum. Signatures use the "SIG_K1_" prefix. All three implement
// json.Marshaler, json.Unmarshaler and the flag.Value interface.
//
// Every signature produced by PrivateKey.Sign is canonical as required by
// the chain, which may require several nonce iterations.
//
// Client
//
// Client wraps a resty.Client configured with a base URL and timeout. All
// methods take a context.Context. Errors returned by the node are decoded
// into *APIError.
package fio
