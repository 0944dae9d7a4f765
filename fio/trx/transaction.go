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
	"crypto/sha256"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/Factom-Asset-Tokens/fiod/fio/action"
)

// TransactionHeader bounds the validity of a Transaction.
type TransactionHeader struct {
	Expiration       fio.TimePointSec `json:"expiration"`
	RefBlockNum      uint16           `json:"ref_block_num"`
	RefBlockPrefix   uint32           `json:"ref_block_prefix"`
	MaxNetUsageWords uint32           `json:"max_net_usage_words"`
	MaxCPUUsageMS    uint8            `json:"max_cpu_usage_ms"`
	DelaySec         uint32           `json:"delay_sec"`
}

type Extension struct {
	Type uint16    `json:"type"`
	Data fio.Bytes `json:"data"`
}

// Transaction is a list of serialized actions and the header that binds
// them to a reference block.
type Transaction struct {
	TransactionHeader
	ContextFreeActions    []*action.Action `json:"context_free_actions"`
	Actions               []*action.Action `json:"actions"`
	TransactionExtensions []Extension      `json:"transaction_extensions"`
}

// Pack serializes t, whose actions must already be serialized, into a
// PackedTransaction without signatures.
func (t *Transaction) Pack(s abi.Serializer) (*fio.PackedTransaction, error) {
	data, err := s.Serialize(abi.TransactionABI, abi.TypeTransaction, t)
	if err != nil {
		return nil, err
	}
	return &fio.PackedTransaction{
		Signatures:            []fio.Signature{},
		PackedContextFreeData: fio.Bytes{},
		PackedTrx:             data,
	}, nil
}

// Digest returns the signing digest of packedTrx on chainID:
// sha256(chainID || packedTrx || 32 zero bytes), where the zero bytes stand
// for the digest of empty context free data.
func Digest(chainID fio.Bytes32, packedTrx []byte) [32]byte {
	h := sha256.New()
	h.Write(chainID[:])
	h.Write(packedTrx)
	h.Write(make([]byte, 32))
	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

// ID returns the transaction id of packedTrx.
func ID(packedTrx []byte) fio.Bytes32 {
	return sha256.Sum256(packedTrx)
}
