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

package api

import (
	jrpc "github.com/AdamSLevy/jsonrpc2/v14"

	"github.com/Factom-Asset-Tokens/fiod/fio/validate"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

// Params is implemented by every params type. IsValid may fill in default
// values and so is called on a pointer.
type Params interface {
	IsValid() error
}

// ParamsPublicKey selects the account of PublicKey, or of the daemon's key
// if empty.
type ParamsPublicKey struct {
	PublicKey string `json:"publickey,omitempty"`
}

func (p *ParamsPublicKey) IsValid() error {
	if len(p.PublicKey) > 0 && !validate.IsFIOPublicKey(p.PublicKey) {
		return jrpc.ErrorInvalidParams(`invalid "publickey"`)
	}
	return nil
}

type ParamsGetPublicAddress struct {
	FIOAddress string `json:"fioaddress"`
	TokenCode  string `json:"tokencode,omitempty"`
}

// IsValid defaults TokenCode to "FIO".
func (p *ParamsGetPublicAddress) IsValid() error {
	if len(p.FIOAddress) == 0 {
		return jrpc.ErrorInvalidParams(`required: "fioaddress"`)
	}
	if len(p.TokenCode) == 0 {
		p.TokenCode = sdk.TokenCodeFIO
	}
	return nil
}

type ParamsIsAvailable struct {
	FIOName string `json:"fioname"`
}

func (p *ParamsIsAvailable) IsValid() error {
	if len(p.FIOName) == 0 {
		return jrpc.ErrorInvalidParams(`required: "fioname"`)
	}
	return nil
}

type ParamsGetFee struct {
	EndPoint   string `json:"endpoint"`
	FIOAddress string `json:"fioaddress,omitempty"`
}

func (p *ParamsGetFee) IsValid() error {
	if len(p.EndPoint) == 0 {
		return jrpc.ErrorInvalidParams(`required: "endpoint"`)
	}
	return nil
}

type ParamsPagination struct {
	Limit  *int `json:"limit,omitempty"`
	Offset *int `json:"offset,omitempty"`
}

func (p *ParamsPagination) IsValid() error {
	if p.Limit != nil && *p.Limit <= 0 {
		return jrpc.ErrorInvalidParams(`"limit" must be greater than 0`)
	}
	if p.Offset != nil && *p.Offset < 0 {
		return jrpc.ErrorInvalidParams(`"offset" may not be negative`)
	}
	return nil
}

// ParamsTransaction holds the fields common to every method that
// broadcasts a transaction. An empty TPID selects the daemon's -tpid.
type ParamsTransaction struct {
	MaxFee uint64 `json:"maxfee"`
	TPID   string `json:"tpid,omitempty"`
}

func (p *ParamsTransaction) IsValid() error {
	if len(p.TPID) > 0 && !validate.IsFIOAddress(p.TPID) {
		return jrpc.ErrorInvalidParams(`invalid "tpid"`)
	}
	return nil
}

type ParamsRegisterAddress struct {
	ParamsTransaction
	FIOAddress     string `json:"fioaddress"`
	OwnerPublicKey string `json:"ownerpublickey,omitempty"`
}

func (p *ParamsRegisterAddress) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if len(p.FIOAddress) == 0 {
		return jrpc.ErrorInvalidParams(`required: "fioaddress"`)
	}
	return nil
}

type ParamsRegisterDomain struct {
	ParamsTransaction
	FIODomain      string `json:"fiodomain"`
	OwnerPublicKey string `json:"ownerpublickey,omitempty"`
}

func (p *ParamsRegisterDomain) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if len(p.FIODomain) == 0 {
		return jrpc.ErrorInvalidParams(`required: "fiodomain"`)
	}
	return nil
}

type ParamsRenewAddress struct {
	ParamsTransaction
	FIOAddress string `json:"fioaddress"`
}

func (p *ParamsRenewAddress) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if len(p.FIOAddress) == 0 {
		return jrpc.ErrorInvalidParams(`required: "fioaddress"`)
	}
	return nil
}

type ParamsRenewDomain struct {
	ParamsTransaction
	FIODomain string `json:"fiodomain"`
}

func (p *ParamsRenewDomain) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if len(p.FIODomain) == 0 {
		return jrpc.ErrorInvalidParams(`required: "fiodomain"`)
	}
	return nil
}

type ParamsTransferTokens struct {
	ParamsTransaction
	PayeePublicKey string `json:"payeepublickey"`
	Amount         uint64 `json:"amount"`
}

func (p *ParamsTransferTokens) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if len(p.PayeePublicKey) == 0 {
		return jrpc.ErrorInvalidParams(`required: "payeepublickey"`)
	}
	if p.Amount == 0 {
		return jrpc.ErrorInvalidParams(`"amount" must be greater than 0`)
	}
	return nil
}

type ParamsRequestFunds struct {
	ParamsTransaction
	PayerFIOAddress string                  `json:"payerfioaddress"`
	PayeeFIOAddress string                  `json:"payeefioaddress"`
	Content         sdk.FundsRequestContent `json:"content"`
}

func (p *ParamsRequestFunds) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if len(p.PayerFIOAddress) == 0 || len(p.PayeeFIOAddress) == 0 {
		return jrpc.ErrorInvalidParams(
			`required: "payerfioaddress" and "payeefioaddress"`)
	}
	if len(p.Content.Amount) == 0 || len(p.Content.TokenCode) == 0 {
		return jrpc.ErrorInvalidParams(
			`required: "content.amount" and "content.token_code"`)
	}
	return nil
}

type ParamsRejectRequest struct {
	ParamsTransaction
	FIORequestID uint64 `json:"fiorequestid"`
}

func (p *ParamsRejectRequest) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if p.FIORequestID == 0 {
		return jrpc.ErrorInvalidParams(`required: "fiorequestid"`)
	}
	return nil
}

type ParamsRecordSend struct {
	ParamsTransaction
	FIORequestID    uint64                `json:"fiorequestid"`
	PayerFIOAddress string                `json:"payerfioaddress"`
	PayeeFIOAddress string                `json:"payeefioaddress"`
	Content         sdk.RecordSendContent `json:"content"`
}

func (p *ParamsRecordSend) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if p.FIORequestID == 0 {
		return jrpc.ErrorInvalidParams(`required: "fiorequestid"`)
	}
	if len(p.PayerFIOAddress) == 0 || len(p.PayeeFIOAddress) == 0 {
		return jrpc.ErrorInvalidParams(
			`required: "payerfioaddress" and "payeefioaddress"`)
	}
	if len(p.Content.OBTID) == 0 {
		return jrpc.ErrorInvalidParams(`required: "content.obt_id"`)
	}
	return nil
}

type ParamsAddPublicAddress struct {
	ParamsTransaction
	FIOAddress    string `json:"fioaddress"`
	TokenCode     string `json:"tokencode"`
	PublicAddress string `json:"publicaddress"`
}

func (p *ParamsAddPublicAddress) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if len(p.FIOAddress) == 0 || len(p.TokenCode) == 0 ||
		len(p.PublicAddress) == 0 {
		return jrpc.ErrorInvalidParams(
			`required: "fioaddress", "tokencode" and "publicaddress"`)
	}
	return nil
}

type ParamsSetDomainVisibility struct {
	ParamsTransaction
	FIODomain string `json:"fiodomain"`
	IsPublic  bool   `json:"ispublic"`
}

func (p *ParamsSetDomainVisibility) IsValid() error {
	if err := p.ParamsTransaction.IsValid(); err != nil {
		return err
	}
	if len(p.FIODomain) == 0 {
		return jrpc.ErrorInvalidParams(`required: "fiodomain"`)
	}
	return nil
}

type ParamsRegisterNameForUser struct {
	FIOName        string `json:"fioname"`
	OwnerPublicKey string `json:"ownerpublickey,omitempty"`
}

func (p *ParamsRegisterNameForUser) IsValid() error {
	if len(p.FIOName) == 0 {
		return jrpc.ErrorInvalidParams(`required: "fioname"`)
	}
	return nil
}
