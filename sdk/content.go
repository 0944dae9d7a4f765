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

package sdk

import (
	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
)

// FundsRequestContent is the private content of a funds request. It is
// only readable by the payer and the payee.
type FundsRequestContent struct {
	PayeePublicAddress string `json:"payee_public_address"`
	Amount             string `json:"amount"`
	TokenCode          string `json:"token_code"`
	Memo               string `json:"memo,omitempty"`
	Hash               string `json:"hash,omitempty"`
	OfflineURL         string `json:"offline_url,omitempty"`
}

// RecordSendContent is the private content of a record of funds sent on
// another blockchain.
type RecordSendContent struct {
	PayerPublicAddress string `json:"payer_public_address"`
	PayeePublicAddress string `json:"payee_public_address"`
	Amount             string `json:"amount"`
	TokenCode          string `json:"token_code"`
	Status             string `json:"status"`
	OBTID              string `json:"obt_id"`
	Memo               string `json:"memo,omitempty"`
	Hash               string `json:"hash,omitempty"`
	OfflineURL         string `json:"offline_url,omitempty"`
}

// StatusSentToBlockchain is the RecordSendContent Status used when none is
// given.
const StatusSentToBlockchain = "sent_to_blockchain"

// Request is a funds request with its content decrypted. Content is nil if
// the content could not be decrypted or deserialized. The encrypted
// content remains in Request.Request.Content.
type Request struct {
	fio.Request
	Content *FundsRequestContent `json:"content"`
}

type Requests struct {
	Requests []Request `json:"requests"`
	More     int       `json:"more"`
}

// encrypt serializes content as typeName and encrypts it for the holder of
// the private key of counterparty.
func (s *SDK) encrypt(typeName string, content interface{},
	counterparty fio.PublicKey) (string, error) {
	if err := s.requirePrivateKey(); err != nil {
		return "", err
	}
	data, err := s.serializer.Serialize(abi.ContentABI, typeName, content)
	if err != nil {
		return "", err
	}
	secret, err := fio.NewSharedSecret(s.priv, counterparty)
	if err != nil {
		return "", err
	}
	return fio.EncryptString(data, secret[:])
}

func (s *SDK) decrypt(typeName string, content string,
	counterparty fio.PublicKey, dst interface{}) error {
	if err := s.requirePrivateKey(); err != nil {
		return err
	}
	secret, err := fio.NewSharedSecret(s.priv, counterparty)
	if err != nil {
		return err
	}
	data, err := fio.DecryptString(content, secret[:])
	if err != nil {
		return err
	}
	v, err := s.serializer.Deserialize(abi.ContentABI, typeName, data)
	if err != nil {
		return err
	}
	if err := abi.Convert(v, dst); err != nil {
		return &abi.SerializationError{Op: "deserialize", Type: typeName, Err: err}
	}
	return nil
}

// decryptRequests decrypts the content of each request using the key of
// the counterparty selected by key. Failures are logged and leave Content
// nil.
func (s *SDK) decryptRequests(res *fio.Requests,
	key func(fio.Request) string) *Requests {
	reqs := &Requests{Requests: make([]Request, len(res.Requests)), More: res.More}
	for i, r := range res.Requests {
		reqs.Requests[i].Request = r
		counterparty, err := fio.NewPublicKey(key(r))
		if err != nil {
			s.log.Debugf("request %v: %v", r.FIORequestID, err)
			continue
		}
		var content FundsRequestContent
		if err := s.decrypt(abi.TypeNewFundsContent,
			r.Content, counterparty, &content); err != nil {
			s.log.Debugf("request %v: %v", r.FIORequestID, err)
			continue
		}
		reqs.Requests[i].Content = &content
	}
	return reqs
}
