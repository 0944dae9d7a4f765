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

package validate

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Result is the outcome of validating the parameters of one request.
// ErrorMessage is empty when IsValid. Err holds the per field errors.
type Result struct {
	IsValid      bool
	ErrorMessage string
	Err          error
}

func result(msg string, errs validation.Errors) Result {
	if err := errs.Filter(); err != nil {
		return Result{ErrorMessage: msg, Err: err}
	}
	return Result{IsValid: true}
}

func required(s string, rule validation.Rule) error {
	return validation.Validate(s, validation.Required, rule)
}

// tpid checks the wallet FIO address. An empty address is not checked.
func tpid(walletFIOAddress string) error {
	return validation.Validate(walletFIOAddress, FIOAddress)
}

func NewFundsRequest(payerFIOAddress, payeeFIOAddress,
	tokenCode, walletFIOAddress string) Result {
	return result("Invalid New Funds Request", validation.Errors{
		"payer_fio_address": required(payerFIOAddress, FIOAddress),
		"payee_fio_address": required(payeeFIOAddress, FIOAddress),
		"token_code":        required(tokenCode, TokenCode),
		"tpid":              tpid(walletFIOAddress),
	})
}

func AddPublicAddress(fioAddress, tokenCode,
	publicAddress, walletFIOAddress string) Result {
	return result("Invalid AddPublicAddress Request", validation.Errors{
		"fio_address":    required(fioAddress, FIOAddress),
		"token_code":     required(tokenCode, TokenCode),
		"public_address": required(publicAddress, NativeChainAddress),
		"tpid":           tpid(walletFIOAddress),
	})
}

// RegisterFIOAddress validates a registration. An empty ownerPublicKey
// means the signer's own key.
func RegisterFIOAddress(fioAddress, ownerPublicKey,
	walletFIOAddress string) Result {
	return result("Invalid Register FIO Address Request", validation.Errors{
		"fio_address":          required(fioAddress, FIOAddress),
		"owner_fio_public_key": validation.Validate(ownerPublicKey, FIOPublicKey),
		"tpid":                 tpid(walletFIOAddress),
	})
}

// RegisterFIODomain validates a registration. An empty ownerPublicKey
// means the signer's own key.
func RegisterFIODomain(fioDomain, ownerPublicKey,
	walletFIOAddress string) Result {
	return result("Invalid Register FIO Domain Request", validation.Errors{
		"fio_domain":           required(fioDomain, FIODomain),
		"owner_fio_public_key": validation.Validate(ownerPublicKey, FIOPublicKey),
		"tpid":                 tpid(walletFIOAddress),
	})
}

func RenewFIOAddress(fioAddress, walletFIOAddress string) Result {
	return RegisterFIOAddress(fioAddress, "", walletFIOAddress)
}

func RenewFIODomain(fioDomain, walletFIOAddress string) Result {
	return RegisterFIODomain(fioDomain, "", walletFIOAddress)
}

func SetFIODomainVisibility(fioDomain, walletFIOAddress string) Result {
	return result("Invalid Set FIO Domain Visibility Request", validation.Errors{
		"fio_domain": required(fioDomain, FIODomain),
		"tpid":       tpid(walletFIOAddress),
	})
}

func RejectFundsRequest(fioRequestID uint64, walletFIOAddress string) Result {
	return result("Invalid Reject Funds Request", validation.Errors{
		"fio_request_id": validation.Validate(fioRequestID, validation.Required),
		"tpid":           tpid(walletFIOAddress),
	})
}

func RecordSend(fioRequestID uint64, payerFIOAddress, payeeFIOAddress,
	tokenCode, walletFIOAddress string) Result {
	return result("Invalid Send Record Request", validation.Errors{
		"fio_request_id":    validation.Validate(fioRequestID, validation.Required),
		"payer_fio_address": required(payerFIOAddress, FIOAddress),
		"payee_fio_address": required(payeeFIOAddress, FIOAddress),
		"token_code":        required(tokenCode, TokenCode),
		"tpid":              tpid(walletFIOAddress),
	})
}

func TransferPublicTokens(payeePublicKey, walletFIOAddress string) Result {
	return result("Invalid Transfer Public Tokens Request", validation.Errors{
		"payee_public_key": required(payeePublicKey, FIOPublicKey),
		"tpid":             tpid(walletFIOAddress),
	})
}

// FeeForNewFundsRequest validates the payee address whose bundled
// transactions pay for a new funds request.
func FeeForNewFundsRequest(payeeFIOAddress string) Result {
	return result("Invalid New Funds Request Fee Request", validation.Errors{
		"payee_fio_address": required(payeeFIOAddress, FIOAddress),
	})
}

func FeeForRejectFundsRequest(payerFIOAddress string) Result {
	return result("Invalid Reject Funds Request Fee Request", validation.Errors{
		"payer_fio_address": required(payerFIOAddress, FIOAddress),
	})
}

func FeeForRecordSend(payerFIOAddress string) Result {
	return result("Invalid Send Record Fee Request", validation.Errors{
		"payer_fio_address": required(payerFIOAddress, FIOAddress),
	})
}
