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
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Info is the result of chain/get_info.
type Info struct {
	ServerVersion            string  `json:"server_version"`
	ChainID                  Bytes32 `json:"chain_id"`
	HeadBlockNum             uint32  `json:"head_block_num"`
	HeadBlockID              Bytes32 `json:"head_block_id"`
	HeadBlockTime            Time    `json:"head_block_time"`
	HeadBlockProducer        string  `json:"head_block_producer"`
	LastIrreversibleBlockNum uint32  `json:"last_irreversible_block_num"`
	LastIrreversibleBlockID  Bytes32 `json:"last_irreversible_block_id"`
}

// GetInfo returns the chain id and head block information.
func (c *Client) GetInfo(ctx context.Context) (*Info, error) {
	var info Info
	if err := c.NodeRequest(ctx, "chain/get_info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Block is the subset of chain/get_block used to reference a block from a
// transaction header.
type Block struct {
	ID        Bytes32 `json:"id"`
	BlockNum  uint32  `json:"block_num"`
	Timestamp Time    `json:"timestamp"`
	Producer  string  `json:"producer"`
	Previous  Bytes32 `json:"previous"`
}

// RefBlockNum returns the low 16 bits of the block number.
func (b Block) RefBlockNum() uint16 {
	return uint16(b.BlockNum & 0xffff)
}

// RefBlockPrefix returns the little endian uint32 at bytes 8 through 11 of
// the block id.
func (b Block) RefBlockPrefix() uint32 {
	return binary.LittleEndian.Uint32(b.ID[8:12])
}

// GetBlock returns the block with the given number.
func (c *Client) GetBlock(ctx context.Context, blockNum uint32) (*Block, error) {
	params := struct {
		BlockNumOrID uint32 `json:"block_num_or_id"`
	}{blockNum}
	var block Block
	if err := c.NodeRequest(ctx, "chain/get_block", params, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// RawABI is the result of chain/get_raw_abi. ABI holds the base64 encoded
// binary abi_def.
type RawABI struct {
	AccountName string  `json:"account_name"`
	CodeHash    Bytes32 `json:"code_hash"`
	ABIHash     Bytes32 `json:"abi_hash"`
	ABI         string  `json:"abi"`
}

// GetRawABI returns the binary ABI of the contract deployed to account.
func (c *Client) GetRawABI(ctx context.Context, account Name) (*RawABI, error) {
	params := struct {
		AccountName Name `json:"account_name"`
	}{account}
	var abi RawABI
	if err := c.NodeRequest(ctx, "chain/get_raw_abi", params, &abi); err != nil {
		return nil, err
	}
	if len(abi.ABI) == 0 {
		return nil, fmt.Errorf("no abi for account %v", account)
	}
	return &abi, nil
}

// GetRequiredKeys returns the subset of available that is required to sign
// trx, which must be the JSON form of a transaction.
func (c *Client) GetRequiredKeys(ctx context.Context,
	trx interface{}, available []PublicKey) ([]PublicKey, error) {
	params := struct {
		Transaction   interface{} `json:"transaction"`
		AvailableKeys []PublicKey `json:"available_keys"`
	}{trx, available}
	var result struct {
		RequiredKeys []PublicKey `json:"required_keys"`
	}
	if err := c.NodeRequest(ctx,
		"chain/get_required_keys", params, &result); err != nil {
		return nil, err
	}
	return result.RequiredKeys, nil
}

// PackedTransaction is a signed, serialized transaction as accepted by
// chain/push_transaction.
type PackedTransaction struct {
	Signatures            []Signature `json:"signatures"`
	Compression           uint8       `json:"compression"`
	PackedContextFreeData Bytes       `json:"packed_context_free_data"`
	PackedTrx             Bytes       `json:"packed_trx"`
}

// PushTransactionResult is the result of chain/push_transaction.
type PushTransactionResult struct {
	TransactionID Bytes32 `json:"transaction_id"`
	Processed     struct {
		ID       Bytes32 `json:"id"`
		BlockNum uint32  `json:"block_num"`
		Receipt  struct {
			Status        string `json:"status"`
			CPUUsageUS    uint32 `json:"cpu_usage_us"`
			NetUsageWords uint32 `json:"net_usage_words"`
		} `json:"receipt"`
		Elapsed      int64           `json:"elapsed"`
		NetUsage     uint32          `json:"net_usage"`
		ActionTraces []ActionTrace   `json:"action_traces"`
		Except       json.RawMessage `json:"except,omitempty"`
	} `json:"processed"`
}

// ActionTrace is the execution trace of a single action.
type ActionTrace struct {
	Receipt struct {
		Receiver       string `json:"receiver"`
		Response       string `json:"response"`
		GlobalSequence uint64 `json:"global_sequence"`
	} `json:"receipt"`
	Act struct {
		Account string          `json:"account"`
		Name    string          `json:"name"`
		Data    json.RawMessage `json:"data"`
	} `json:"act"`
	Console string `json:"console"`
}

// ActionTraceResponse is the JSON response returned by FIO contracts in the
// first action's receipt.
type ActionTraceResponse struct {
	Status       string `json:"status"`
	FIORequestID uint64 `json:"fio_request_id,omitempty"`
	FeeCollected uint64 `json:"fee_collected"`
	Expiration   string `json:"expiration,omitempty"`
}

// ActionTraceResponse decodes the contract response of the first action
// trace.
func (r PushTransactionResult) ActionTraceResponse() (*ActionTraceResponse, error) {
	if len(r.Processed.ActionTraces) == 0 {
		return nil, fmt.Errorf("no action traces")
	}
	var res ActionTraceResponse
	if err := json.Unmarshal(
		[]byte(r.Processed.ActionTraces[0].Receipt.Response), &res); err != nil {
		return nil, fmt.Errorf("action trace response: %v", err)
	}
	return &res, nil
}

// PushTransaction submits a signed transaction.
func (c *Client) PushTransaction(ctx context.Context,
	trx *PackedTransaction) (*PushTransactionResult, error) {
	var result PushTransactionResult
	if err := c.NodeRequest(ctx,
		"chain/push_transaction", trx, &result); err != nil {
		return nil, err
	}
	if result.TransactionID.IsZero() {
		return nil, fmt.Errorf("push_transaction: no transaction id")
	}
	return &result, nil
}
