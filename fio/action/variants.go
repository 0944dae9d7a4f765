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

package action

import (
	"strconv"

	"github.com/Factom-Asset-Tokens/fiod/fio"
)

// Action names.
var (
	NameRegAddress   = fio.MustName("regaddress")
	NameRegDomain    = fio.MustName("regdomain")
	NameRenewAddress = fio.MustName("renewaddress")
	NameRenewDomain  = fio.MustName("renewdomain")
	NameAddAddress   = fio.MustName("addaddress")
	NameSetDomainPub = fio.MustName("setdomainpub")
	NameTrnsFIOPubKy = fio.MustName("trnsfiopubky")
	NameNewFundsReq  = fio.MustName("newfundsreq")
	NameRejectFndReq = fio.MustName("rejectfndreq")
	NameRecordOBT    = fio.MustName("recordobt")
)

// RegisterAddress registers FIOAddress to OwnerPublicKey.
type RegisterAddress struct {
	FIOAddress     string
	OwnerPublicKey fio.PublicKey
	MaxFee         uint64
	TPID           string
}

func (RegisterAddress) Account() fio.Name    { return fio.ContractAddress }
func (RegisterAddress) ActionName() fio.Name { return NameRegAddress }
func (r RegisterAddress) Payload() Payload {
	return Payload{
		"fio_address":          r.FIOAddress,
		"owner_fio_public_key": r.OwnerPublicKey.String(),
		"max_fee":              r.MaxFee,
		"tpid":                 r.TPID,
	}
}

// RegisterDomain registers FIODomain to OwnerPublicKey.
type RegisterDomain struct {
	FIODomain      string
	OwnerPublicKey fio.PublicKey
	MaxFee         uint64
	TPID           string
}

func (RegisterDomain) Account() fio.Name    { return fio.ContractAddress }
func (RegisterDomain) ActionName() fio.Name { return NameRegDomain }
func (r RegisterDomain) Payload() Payload {
	return Payload{
		"fio_domain":           r.FIODomain,
		"owner_fio_public_key": r.OwnerPublicKey.String(),
		"max_fee":              r.MaxFee,
		"tpid":                 r.TPID,
	}
}

type RenewAddress struct {
	FIOAddress string
	MaxFee     uint64
	TPID       string
}

func (RenewAddress) Account() fio.Name    { return fio.ContractAddress }
func (RenewAddress) ActionName() fio.Name { return NameRenewAddress }
func (r RenewAddress) Payload() Payload {
	return Payload{
		"fio_address": r.FIOAddress,
		"max_fee":     r.MaxFee,
		"tpid":        r.TPID,
	}
}

type RenewDomain struct {
	FIODomain string
	MaxFee    uint64
	TPID      string
}

func (RenewDomain) Account() fio.Name    { return fio.ContractAddress }
func (RenewDomain) ActionName() fio.Name { return NameRenewDomain }
func (r RenewDomain) Payload() Payload {
	return Payload{
		"fio_domain": r.FIODomain,
		"max_fee":    r.MaxFee,
		"tpid":       r.TPID,
	}
}

// TransferTokensToPublicKey transfers Amount SUF to the account of
// PayeePublicKey, creating it if needed.
type TransferTokensToPublicKey struct {
	PayeePublicKey fio.PublicKey
	Amount         uint64
	MaxFee         uint64
	TPID           string
}

func (TransferTokensToPublicKey) Account() fio.Name    { return fio.ContractToken }
func (TransferTokensToPublicKey) ActionName() fio.Name { return NameTrnsFIOPubKy }
func (t TransferTokensToPublicKey) Payload() Payload {
	return Payload{
		"payee_public_key": t.PayeePublicKey.String(),
		"amount":           t.Amount,
		"max_fee":          t.MaxFee,
		"tpid":             t.TPID,
	}
}

// NewFundsRequest requests funds from PayerFIOAddress. Content is the
// encrypted, base64 encoded request content.
type NewFundsRequest struct {
	PayerFIOAddress string
	PayeeFIOAddress string
	Content         string
	MaxFee          uint64
	TPID            string
}

func (NewFundsRequest) Account() fio.Name    { return fio.ContractReqObt }
func (NewFundsRequest) ActionName() fio.Name { return NameNewFundsReq }
func (r NewFundsRequest) Payload() Payload {
	return Payload{
		"payer_fio_address": r.PayerFIOAddress,
		"payee_fio_address": r.PayeeFIOAddress,
		"content":           r.Content,
		"max_fee":           r.MaxFee,
		"tpid":              r.TPID,
	}
}

type RejectFundsRequest struct {
	FIORequestID uint64
	MaxFee       uint64
	TPID         string
}

func (RejectFundsRequest) Account() fio.Name    { return fio.ContractReqObt }
func (RejectFundsRequest) ActionName() fio.Name { return NameRejectFndReq }
func (r RejectFundsRequest) Payload() Payload {
	return Payload{
		"fio_request_id": strconv.FormatUint(r.FIORequestID, 10),
		"max_fee":        r.MaxFee,
		"tpid":           r.TPID,
	}
}

// RecordSend records that funds were sent in response to the request
// FIORequestID. Content is the encrypted, base64 encoded record.
type RecordSend struct {
	FIORequestID    uint64
	PayerFIOAddress string
	PayeeFIOAddress string
	Content         string
	MaxFee          uint64
	TPID            string
}

func (RecordSend) Account() fio.Name    { return fio.ContractReqObt }
func (RecordSend) ActionName() fio.Name { return NameRecordOBT }
func (r RecordSend) Payload() Payload {
	return Payload{
		"fio_request_id":    strconv.FormatUint(r.FIORequestID, 10),
		"payer_fio_address": r.PayerFIOAddress,
		"payee_fio_address": r.PayeeFIOAddress,
		"content":           r.Content,
		"max_fee":           r.MaxFee,
		"tpid":              r.TPID,
	}
}

// AddPublicAddress maps TokenCode to PublicAddress for FIOAddress.
type AddPublicAddress struct {
	FIOAddress    string
	TokenCode     string
	PublicAddress string
	MaxFee        uint64
	TPID          string
}

func (AddPublicAddress) Account() fio.Name    { return fio.ContractAddress }
func (AddPublicAddress) ActionName() fio.Name { return NameAddAddress }
func (a AddPublicAddress) Payload() Payload {
	return Payload{
		"fio_address":    a.FIOAddress,
		"token_code":     a.TokenCode,
		"public_address": a.PublicAddress,
		"max_fee":        a.MaxFee,
		"tpid":           a.TPID,
	}
}

// SetDomainVisibility makes FIODomain open, or closed, to registrations by
// anyone.
type SetDomainVisibility struct {
	FIODomain string
	IsPublic  bool
	MaxFee    uint64
	TPID      string
}

func (SetDomainVisibility) Account() fio.Name    { return fio.ContractAddress }
func (SetDomainVisibility) ActionName() fio.Name { return NameSetDomainPub }
func (s SetDomainVisibility) Payload() Payload {
	var isPublic int8
	if s.IsPublic {
		isPublic = 1
	}
	return Payload{
		"fio_domain": s.FIODomain,
		"is_public":  isPublic,
		"max_fee":    s.MaxFee,
		"tpid":       s.TPID,
	}
}
