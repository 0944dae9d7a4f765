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

package validate_test

import (
	"strings"
	"testing"

	"github.com/Factom-Asset-Tokens/fiod/fio/validate"
	"github.com/stretchr/testify/assert"
)

const (
	pub    = "FIO7c8SVyAyu6cACCaUjmPFEUyW9p2owWHeqq2WSEZ18FFTgErE1K"
	wallet = "rewards:wallet"
)

func TestPredicates(t *testing.T) {
	tests := []struct {
		Name  string
		Fn    func(string) bool
		Valid []string
		Bad   []string
	}{{
		Name: "FIOAddress",
		Fn:   validate.IsFIOAddress,
		Valid: []string{"alice:brd", "a:b1", "a-b:c-d", "bob@brd",
			strings.Repeat("a", 31) + ":" + strings.Repeat("b", 32)},
		Bad: []string{"not-an-address", "", "a:", ":b", "-a:brd",
			"a-:brd", "a--b:brd", "alice:brd:x", "al ice:brd", "a_b:brd",
			strings.Repeat("a", 32) + ":" + strings.Repeat("b", 32)},
	}, {
		Name:  "FIODomain",
		Fn:    validate.IsFIODomain,
		Valid: []string{"brd", "b", "my-domain", strings.Repeat("d", 62)},
		Bad: []string{"", "-brd", "brd-", "b--rd", "brd:x",
			strings.Repeat("d", 63)},
	}, {
		Name:  "FIOPublicKey",
		Fn:    validate.IsFIOPublicKey,
		Valid: []string{pub},
		Bad:   []string{"", "FIO", pub[:len(pub)-1] + "L", "EOS" + pub[3:]},
	}, {
		Name:  "TokenCode",
		Fn:    validate.IsTokenCode,
		Valid: []string{"FIO", "btc", "A1", "ABCDEFGHIJ"},
		Bad:   []string{"", "ABCDEFGHIJK", "BT-C", "BT C"},
	}, {
		Name:  "NativeChainAddress",
		Fn:    validate.IsNativeChainAddress,
		Valid: []string{"1AkZGXsnyDfp4faMmVfTWsN1nNRRvEZJk8", "x", strings.Repeat("x", 128)},
		Bad:   []string{"", "a b", "a\tb", strings.Repeat("x", 129)},
	}}
	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			for _, s := range test.Valid {
				assert.Truef(t, test.Fn(s), "%q", s)
			}
			for _, s := range test.Bad {
				assert.Falsef(t, test.Fn(s), "%q", s)
			}
		})
	}
}

func TestRequests(t *testing.T) {
	tests := []struct {
		Name   string
		Result validate.Result
		Valid  bool
		Msg    string
	}{{
		Name:   "new funds",
		Result: validate.NewFundsRequest("bob:brd", "alice:brd", "BTC", wallet),
		Valid:  true,
	}, {
		Name:   "new funds empty wallet",
		Result: validate.NewFundsRequest("bob:brd", "alice:brd", "BTC", ""),
		Valid:  true,
	}, {
		Name:   "new funds invalid wallet",
		Result: validate.NewFundsRequest("bob:brd", "alice:brd", "BTC", "wallet"),
		Msg:    "Invalid New Funds Request",
	}, {
		Name:   "new funds invalid token",
		Result: validate.NewFundsRequest("bob:brd", "alice:brd", "", wallet),
		Msg:    "Invalid New Funds Request",
	}, {
		Name: "add public address",
		Result: validate.AddPublicAddress("alice:brd", "BTC",
			"1AkZGXsnyDfp4faMmVfTWsN1nNRRvEZJk8", ""),
		Valid: true,
	}, {
		Name:   "add public address invalid address",
		Result: validate.AddPublicAddress("alice:brd", "BTC", "a b", ""),
		Msg:    "Invalid AddPublicAddress Request",
	}, {
		Name:   "register address",
		Result: validate.RegisterFIOAddress("alice:brd", pub, wallet),
		Valid:  true,
	}, {
		Name:   "register address own key",
		Result: validate.RegisterFIOAddress("alice:brd", "", ""),
		Valid:  true,
	}, {
		Name:   "register address invalid key",
		Result: validate.RegisterFIOAddress("alice:brd", "FIOx", ""),
		Msg:    "Invalid Register FIO Address Request",
	}, {
		Name:   "register domain",
		Result: validate.RegisterFIODomain("brd", pub, wallet),
		Valid:  true,
	}, {
		Name:   "register domain invalid",
		Result: validate.RegisterFIODomain("alice:brd", pub, wallet),
		Msg:    "Invalid Register FIO Domain Request",
	}, {
		Name:   "renew address",
		Result: validate.RenewFIOAddress("alice:brd", wallet),
		Valid:  true,
	}, {
		Name:   "renew address invalid",
		Result: validate.RenewFIOAddress("brd", wallet),
		Msg:    "Invalid Register FIO Address Request",
	}, {
		Name:   "renew domain invalid",
		Result: validate.RenewFIODomain("brd", "bad"),
		Msg:    "Invalid Register FIO Domain Request",
	}, {
		Name:   "set visibility",
		Result: validate.SetFIODomainVisibility("brd", ""),
		Valid:  true,
	}, {
		Name:   "set visibility invalid",
		Result: validate.SetFIODomainVisibility("", ""),
		Msg:    "Invalid Set FIO Domain Visibility Request",
	}, {
		Name:   "reject",
		Result: validate.RejectFundsRequest(1, wallet),
		Valid:  true,
	}, {
		Name:   "reject zero id",
		Result: validate.RejectFundsRequest(0, wallet),
		Msg:    "Invalid Reject Funds Request",
	}, {
		Name:   "record send",
		Result: validate.RecordSend(3, "bob:brd", "alice:brd", "BTC", ""),
		Valid:  true,
	}, {
		Name:   "record send zero id",
		Result: validate.RecordSend(0, "bob:brd", "alice:brd", "BTC", ""),
		Msg:    "Invalid Send Record Request",
	}, {
		Name:   "transfer",
		Result: validate.TransferPublicTokens(pub, wallet),
		Valid:  true,
	}, {
		Name:   "transfer missing key",
		Result: validate.TransferPublicTokens("", wallet),
		Msg:    "Invalid Transfer Public Tokens Request",
	}, {
		Name:   "fee for record send",
		Result: validate.FeeForRecordSend("bob:brd"),
		Valid:  true,
	}, {
		Name:   "fee for record send invalid",
		Result: validate.FeeForRecordSend("bob"),
		Msg:    "Invalid Send Record Fee Request",
	}, {
		Name:   "fee for new funds invalid",
		Result: validate.FeeForNewFundsRequest(""),
		Msg:    "Invalid New Funds Request Fee Request",
	}, {
		Name:   "fee for reject",
		Result: validate.FeeForRejectFundsRequest("bob:brd"),
		Valid:  true,
	}}
	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			assert := assert.New(t)
			assert.Equal(test.Valid, test.Result.IsValid)
			assert.Equal(test.Msg, test.Result.ErrorMessage)
			if test.Valid {
				assert.NoError(test.Result.Err)
			} else {
				assert.Error(test.Result.Err)
			}
		})
	}
}
