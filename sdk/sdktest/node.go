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

// Package sdktest provides an in-memory FIO node for testing code built on
// the sdk package.
package sdktest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/Factom-Asset-Tokens/fiod/fio/trx"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

// Test keys. Alice and Bob own alice:brd and bob:brd. Carol has no FIO
// account.
const (
	AliceWIF = "5JbcPK6qTpYxMXtfpGXagYbo3KFE3qqxv2tLXLMPR8dTWWeYCp9"
	AlicePub = "FIO7c8SVyAyu6cACCaUjmPFEUyW9p2owWHeqq2WSEZ18FFTgErE1K"
	BobWIF   = "5JAExdhmQw8F1siD7uzLrhmzfjW97hubw7ZNxjAiAu6p7Xq9wqG"
	BobPub   = "FIO8LKt4DBzXKzDGjFcZo5x82Nv5ahmbZ8AUNXBv2vMfm6smiHst3"
	CarolPub = "FIO5oBUYbtGTxMS66pPkjC2p8pbA3zCtc8XD4dq9fMut867GRdh82"

	ChainID = "cf057bbfb72640471fd910bcb67639c22df9f92470936cddc1ade0e2f2e7dc4f"
	HeadID  = "00011170aabbccdd0102030405060708090a0b0c0d0e0f101112131415161718"
)

// ContractABI defines the actions of every FIO system contract used by Node.
var ContractABI = abi.MustParse(`{
	"version": "eosio::abi/1.1",
	"structs": [{
		"name": "regaddress", "base": "",
		"fields": [
			{"name": "fio_address", "type": "string"},
			{"name": "owner_fio_public_key", "type": "string"},
			{"name": "max_fee", "type": "int64"},
			{"name": "actor", "type": "name"},
			{"name": "tpid", "type": "string"}
		]
	}, {
		"name": "regdomain", "base": "",
		"fields": [
			{"name": "fio_domain", "type": "string"},
			{"name": "owner_fio_public_key", "type": "string"},
			{"name": "max_fee", "type": "int64"},
			{"name": "actor", "type": "name"},
			{"name": "tpid", "type": "string"}
		]
	}, {
		"name": "renewaddress", "base": "",
		"fields": [
			{"name": "fio_address", "type": "string"},
			{"name": "max_fee", "type": "int64"},
			{"name": "tpid", "type": "string"},
			{"name": "actor", "type": "name"}
		]
	}, {
		"name": "renewdomain", "base": "",
		"fields": [
			{"name": "fio_domain", "type": "string"},
			{"name": "max_fee", "type": "int64"},
			{"name": "tpid", "type": "string"},
			{"name": "actor", "type": "name"}
		]
	}, {
		"name": "addaddress", "base": "",
		"fields": [
			{"name": "fio_address", "type": "string"},
			{"name": "token_code", "type": "string"},
			{"name": "public_address", "type": "string"},
			{"name": "max_fee", "type": "int64"},
			{"name": "actor", "type": "name"},
			{"name": "tpid", "type": "string"}
		]
	}, {
		"name": "setdomainpub", "base": "",
		"fields": [
			{"name": "fio_domain", "type": "string"},
			{"name": "is_public", "type": "int8"},
			{"name": "max_fee", "type": "int64"},
			{"name": "actor", "type": "name"},
			{"name": "tpid", "type": "string"}
		]
	}, {
		"name": "trnsfiopubky", "base": "",
		"fields": [
			{"name": "payee_public_key", "type": "string"},
			{"name": "amount", "type": "int64"},
			{"name": "max_fee", "type": "int64"},
			{"name": "actor", "type": "name"},
			{"name": "tpid", "type": "string"}
		]
	}, {
		"name": "newfundsreq", "base": "",
		"fields": [
			{"name": "payer_fio_address", "type": "string"},
			{"name": "payee_fio_address", "type": "string"},
			{"name": "content", "type": "string"},
			{"name": "max_fee", "type": "int64"},
			{"name": "actor", "type": "name"},
			{"name": "tpid", "type": "string"}
		]
	}, {
		"name": "rejectfndreq", "base": "",
		"fields": [
			{"name": "fio_request_id", "type": "string"},
			{"name": "max_fee", "type": "int64"},
			{"name": "actor", "type": "name"},
			{"name": "tpid", "type": "string"}
		]
	}, {
		"name": "recordobt", "base": "",
		"fields": [
			{"name": "fio_request_id", "type": "string"},
			{"name": "payer_fio_address", "type": "string"},
			{"name": "payee_fio_address", "type": "string"},
			{"name": "content", "type": "string"},
			{"name": "max_fee", "type": "int64"},
			{"name": "actor", "type": "name"},
			{"name": "tpid", "type": "string"}
		]
	}],
	"actions": [
		{"name": "regaddress", "type": "regaddress", "ricardian_contract": ""},
		{"name": "regdomain", "type": "regdomain", "ricardian_contract": ""},
		{"name": "renewaddress", "type": "renewaddress", "ricardian_contract": ""},
		{"name": "renewdomain", "type": "renewdomain", "ricardian_contract": ""},
		{"name": "addaddress", "type": "addaddress", "ricardian_contract": ""},
		{"name": "setdomainpub", "type": "setdomainpub", "ricardian_contract": ""},
		{"name": "trnsfiopubky", "type": "trnsfiopubky", "ricardian_contract": ""},
		{"name": "newfundsreq", "type": "newfundsreq", "ricardian_contract": ""},
		{"name": "rejectfndreq", "type": "rejectfndreq", "ricardian_contract": ""},
		{"name": "recordobt", "type": "recordobt", "ricardian_contract": ""}
	]
}`)

// Pushed is an action decoded from a pushed transaction.
type Pushed struct {
	Account    string
	Name       string
	Actor      string
	Data       map[string]interface{}
	Signatures []fio.Signature
}

// Node is an in-memory FIO node. It decodes every pushed transaction
// and keeps funds requests so that they can be queried back.
type Node struct {
	mu sync.Mutex

	calls int
	pubs  map[string]string

	// Requests and Records hold the pushed newfundsreq and recordobt
	// actions. Pushed holds every decoded action.
	Requests []fio.Request
	Records  []fio.Request
	Pushed   []Pushed

	// Except, if set, is returned as the exception of every pushed
	// transaction.
	Except string
	// ABIErr, if set, is returned by GetRawABI.
	ABIErr error

	// LastFee is the endpoint and FIO address of the last GetFee call.
	LastFee [2]string
}

var _ sdk.Network = (*Node)(nil)

// NewNode returns a Node that maps "alice:brd" and "bob:brd" to AlicePub
// and BobPub.
func NewNode() *Node {
	return &Node{pubs: map[string]string{
		"alice:brd": AlicePub,
		"bob:brd":   BobPub,
	}}
}

func (n *Node) call() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
}

// Calls returns the number of requests made to n.
func (n *Node) Calls() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls
}

func (n *Node) GetInfo(context.Context) (*fio.Info, error) {
	n.call()
	var info fio.Info
	info.ChainID = *fio.NewBytes32FromString(ChainID)
	info.HeadBlockNum = 70000
	return &info, nil
}

func (n *Node) GetBlock(_ context.Context, num uint32) (*fio.Block, error) {
	n.call()
	return &fio.Block{BlockNum: num, ID: *fio.NewBytes32FromString(HeadID)}, nil
}

func (n *Node) GetRawABI(_ context.Context, account fio.Name) (*fio.RawABI, error) {
	n.call()
	if n.ABIErr != nil {
		return nil, n.ABIErr
	}
	data, err := abi.EncodeABIDef(ContractABI)
	if err != nil {
		return nil, err
	}
	return &fio.RawABI{AccountName: account.String(),
		ABI: base64.StdEncoding.EncodeToString(data)}, nil
}

// GetRequiredKeys returns the keys of available whose account authorizes
// an action of t, which must be a *trx.Transaction.
func (n *Node) GetRequiredKeys(_ context.Context, t interface{},
	available []fio.PublicKey) ([]fio.PublicKey, error) {
	n.call()
	tx, ok := t.(*trx.Transaction)
	if !ok {
		return nil, fmt.Errorf("unexpected transaction type %T", t)
	}
	actors := make(map[fio.Name]bool)
	for _, act := range tx.Actions {
		for _, auth := range act.Authorization {
			actors[auth.Actor] = true
		}
	}
	var required []fio.PublicKey
	for _, pub := range available {
		if actors[pub.Actor()] {
			required = append(required, pub)
		}
	}
	return required, nil
}

func (n *Node) PushTransaction(_ context.Context,
	packed *fio.PackedTransaction) (*fio.PushTransactionResult, error) {
	n.call()
	n.mu.Lock()
	defer n.mu.Unlock()

	t, err := abi.DeserializeTransaction(packed.PackedTrx)
	if err != nil {
		return nil, err
	}
	act := t["actions"].([]interface{})[0].(map[string]interface{})
	name := act["name"].(string)
	v, err := abi.ContractSerializer{}.Deserialize(ContractABI, name,
		act["data"].(fio.Bytes))
	if err != nil {
		return nil, err
	}
	data := v.(map[string]interface{})
	n.Pushed = append(n.Pushed, Pushed{
		Account:    act["account"].(string),
		Name:       name,
		Actor:      data["actor"].(string),
		Data:       data,
		Signatures: packed.Signatures,
	})

	var res fio.PushTransactionResult
	res.TransactionID = trx.ID(packed.PackedTrx)
	if len(n.Except) > 0 {
		res.Processed.Except = json.RawMessage(n.Except)
		return &res, nil
	}
	response := `{"status":"OK","fee_collected":400000000}`
	switch name {
	case "newfundsreq", "recordobt":
		r := fio.Request{
			PayerFIOAddress:   data["payer_fio_address"].(string),
			PayeeFIOAddress:   data["payee_fio_address"].(string),
			Content:           data["content"].(string),
			PayerFIOPublicKey: n.pubs[data["payer_fio_address"].(string)],
			PayeeFIOPublicKey: n.pubs[data["payee_fio_address"].(string)],
		}
		if name == "recordobt" {
			n.Records = append(n.Records, r)
			response = `{"status":"sent_to_blockchain","fee_collected":0}`
			break
		}
		r.FIORequestID = uint64(len(n.Requests) + 1)
		n.Requests = append(n.Requests, r)
		response = fmt.Sprintf(
			`{"fio_request_id":%v,"status":"requested","fee_collected":800000000}`,
			r.FIORequestID)
	}
	res.Processed.Receipt.Status = "executed"
	res.Processed.ActionTraces = make([]fio.ActionTrace, 1)
	res.Processed.ActionTraces[0].Receipt.Response = response
	return &res, nil
}

func (n *Node) GetFIOBalance(_ context.Context, pub fio.PublicKey) (*fio.Balance, error) {
	n.call()
	if pub.String() == CarolPub {
		return nil, &fio.APIError{StatusCode: 404, Message: "Public key not found"}
	}
	return &fio.Balance{Balance: 5 * fio.SUFPerFIO}, nil
}

func (n *Node) GetFIONames(_ context.Context, pub fio.PublicKey) (*fio.Names, error) {
	n.call()
	var names fio.Names
	if err := json.Unmarshal([]byte(`{"fio_addresses":[{
		"fio_address": "alice:brd",
		"expiration": "2020-10-14T19:42:31"}]}`), &names); err != nil {
		return nil, err
	}
	return &names, nil
}

func (n *Node) GetPublicAddress(_ context.Context,
	fioAddress, tokenCode string) (*fio.PublicAddress, error) {
	n.call()
	pub, ok := n.pubs[fioAddress]
	if !ok || tokenCode != "FIO" {
		return nil, &fio.APIError{StatusCode: 404,
			Message: "Public address not found"}
	}
	return &fio.PublicAddress{PublicAddress: pub}, nil
}

func (n *Node) AvailCheck(_ context.Context, fioName string) (*fio.Availability, error) {
	n.call()
	_, ok := n.pubs[fioName]
	var res fio.Availability
	if ok {
		res.IsRegistered = 1
	}
	return &res, nil
}

func (n *Node) GetFee(_ context.Context,
	endpoint, fioAddress string) (*fio.Fee, error) {
	n.call()
	n.mu.Lock()
	defer n.mu.Unlock()
	n.LastFee = [2]string{endpoint, fioAddress}
	return &fio.Fee{Fee: 800000000}, nil
}

func (n *Node) filter(pub fio.PublicKey,
	key func(fio.Request) string) *fio.Requests {
	n.mu.Lock()
	defer n.mu.Unlock()
	res := &fio.Requests{Requests: []fio.Request{}}
	for _, r := range n.Requests {
		if key(r) == pub.String() {
			res.Requests = append(res.Requests, r)
		}
	}
	return res
}

func (n *Node) GetPendingFIORequests(_ context.Context,
	pub fio.PublicKey, _, _ *int) (*fio.Requests, error) {
	n.call()
	return n.filter(pub, func(r fio.Request) string {
		return r.PayerFIOPublicKey
	}), nil
}

func (n *Node) GetSentFIORequests(_ context.Context,
	pub fio.PublicKey, _, _ *int) (*fio.Requests, error) {
	n.call()
	return n.filter(pub, func(r fio.Request) string {
		return r.PayeeFIOPublicKey
	}), nil
}

func (n *Node) RegisterFIONameForUser(_ context.Context,
	fioName string, owner fio.PublicKey) (*fio.Registration, error) {
	n.call()
	return &fio.Registration{Status: "OK", Account: owner.Actor().String()}, nil
}
