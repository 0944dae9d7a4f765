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
	"fmt"
	"strconv"
	"strings"
)

// SUFPerFIO is the number of smallest units of FIO in one FIO.
const SUFPerFIO = 1000000000

// FormatSUF formats suf in whole FIO with all 9 decimal places.
func FormatSUF(suf uint64) string {
	return fmt.Sprintf("%d.%09d", suf/SUFPerFIO, suf%SUFPerFIO)
}

// ParseFIO parses an amount of FIO with at most 9 decimal places, such as
// "12" or "0.5", and returns it in SUF.
func ParseFIO(amount string) (uint64, error) {
	whole, frac := amount, ""
	if i := strings.IndexByte(amount, '.'); i >= 0 {
		whole, frac = amount[:i], amount[i+1:]
	}
	if len(whole) == 0 && len(frac) == 0 {
		return 0, fmt.Errorf("invalid FIO amount: %q", amount)
	}
	if len(frac) > 9 {
		return 0, fmt.Errorf("invalid FIO amount: %q: more than 9 decimal places",
			amount)
	}
	var w, f uint64
	var err error
	if len(whole) > 0 {
		if w, err = strconv.ParseUint(whole, 10, 64); err != nil {
			return 0, fmt.Errorf("invalid FIO amount: %q", amount)
		}
	}
	if len(frac) > 0 {
		frac += strings.Repeat("0", 9-len(frac))
		if f, err = strconv.ParseUint(frac, 10, 64); err != nil {
			return 0, fmt.Errorf("invalid FIO amount: %q", amount)
		}
	}
	if w > (^uint64(0)-f)/SUFPerFIO {
		return 0, fmt.Errorf("invalid FIO amount: %q: overflow", amount)
	}
	return w*SUFPerFIO + f, nil
}

// Endpoint names accepted by chain/get_fee.
const (
	EndpointRegisterFIODomain   = "register_fio_domain"
	EndpointRegisterFIOAddress  = "register_fio_address"
	EndpointRenewFIODomain      = "renew_fio_domain"
	EndpointRenewFIOAddress     = "renew_fio_address"
	EndpointTransferTokensPub   = "transfer_tokens_pub_key"
	EndpointAddPublicAddress    = "add_pub_address"
	EndpointNewFundsRequest     = "new_funds_request"
	EndpointRejectFundsRequest  = "reject_funds_request"
	EndpointRecordSend          = "record_send"
	EndpointSetDomainVisibility = "set_fio_domain_public"
)

// EndpointsWithFees lists every endpoint that charges a fee.
var EndpointsWithFees = []string{
	EndpointRegisterFIODomain,
	EndpointRegisterFIOAddress,
	EndpointRenewFIODomain,
	EndpointRenewFIOAddress,
	EndpointTransferTokensPub,
	EndpointAddPublicAddress,
	EndpointNewFundsRequest,
	EndpointRejectFundsRequest,
	EndpointRecordSend,
	EndpointSetDomainVisibility,
}

// Balance is the result of chain/get_fio_balance, in SUF.
type Balance struct {
	Balance uint64 `json:"balance"`
}

// GetFIOBalance returns the FIO balance of pub.
func (c *Client) GetFIOBalance(ctx context.Context, pub PublicKey) (*Balance, error) {
	params := struct {
		FIOPublicKey PublicKey `json:"fio_public_key"`
	}{pub}
	var res Balance
	if err := c.NodeRequest(ctx, "chain/get_fio_balance", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Names is the result of chain/get_fio_names.
type Names struct {
	FIODomains []struct {
		FIODomain  string `json:"fio_domain"`
		Expiration string `json:"expiration"`
		IsPublic   int    `json:"is_public"`
	} `json:"fio_domains"`
	FIOAddresses []struct {
		FIOAddress string `json:"fio_address"`
		Expiration string `json:"expiration"`
	} `json:"fio_addresses"`
}

// GetFIONames returns the domains and addresses owned by pub.
func (c *Client) GetFIONames(ctx context.Context, pub PublicKey) (*Names, error) {
	params := struct {
		FIOPublicKey PublicKey `json:"fio_public_key"`
	}{pub}
	var res Names
	if err := c.NodeRequest(ctx, "chain/get_fio_names", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PublicAddress is the result of chain/get_pub_address.
type PublicAddress struct {
	PublicAddress string `json:"public_address"`
}

// GetPublicAddress returns the address mapped to tokenCode by fioAddress.
// The "FIO" token code returns the FIO public key of the address owner.
func (c *Client) GetPublicAddress(ctx context.Context,
	fioAddress, tokenCode string) (*PublicAddress, error) {
	params := struct {
		FIOAddress string `json:"fio_address"`
		TokenCode  string `json:"token_code"`
	}{fioAddress, tokenCode}
	var res PublicAddress
	if err := c.NodeRequest(ctx, "chain/get_pub_address", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Availability is the result of chain/avail_check.
type Availability struct {
	IsRegistered int `json:"is_registered"`
}

// AvailCheck reports whether fioName, an address or a domain, is
// registered.
func (c *Client) AvailCheck(ctx context.Context, fioName string) (*Availability, error) {
	params := struct {
		FIOName string `json:"fio_name"`
	}{fioName}
	var res Availability
	if err := c.NodeRequest(ctx, "chain/avail_check", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Fee is the result of chain/get_fee, in SUF.
type Fee struct {
	Fee uint64 `json:"fee"`
}

// GetFee returns the fee of endpoint. Bundled endpoints need fioAddress to
// account for remaining free transactions; it may be empty otherwise.
func (c *Client) GetFee(ctx context.Context, endpoint, fioAddress string) (*Fee, error) {
	params := struct {
		EndPoint   string `json:"end_point"`
		FIOAddress string `json:"fio_address"`
	}{endpoint, fioAddress}
	var res Fee
	if err := c.NodeRequest(ctx, "chain/get_fee", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Request is a funds request as returned by the pending and sent request
// queries. Content holds the encrypted, serialized request content.
type Request struct {
	FIORequestID      uint64 `json:"fio_request_id"`
	PayerFIOAddress   string `json:"payer_fio_address"`
	PayeeFIOAddress   string `json:"payee_fio_address"`
	PayerFIOPublicKey string `json:"payer_fio_public_key"`
	PayeeFIOPublicKey string `json:"payee_fio_public_key"`
	Content           string `json:"content"`
	TimeStamp         Time   `json:"time_stamp"`
}

// Requests is the result of the pending and sent request queries.
type Requests struct {
	Requests []Request `json:"requests"`
	More     int       `json:"more"`
}

type requestsParams struct {
	FIOPublicKey PublicKey `json:"fio_public_key"`
	Limit        *int      `json:"limit,omitempty"`
	Offset       *int      `json:"offset,omitempty"`
}

// GetPendingFIORequests returns requests awaiting payment by pub.
func (c *Client) GetPendingFIORequests(ctx context.Context,
	pub PublicKey, limit, offset *int) (*Requests, error) {
	var res Requests
	if err := c.NodeRequest(ctx, "chain/get_pending_fio_requests",
		requestsParams{pub, limit, offset}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetSentFIORequests returns requests sent by pub.
func (c *Client) GetSentFIORequests(ctx context.Context,
	pub PublicKey, limit, offset *int) (*Requests, error) {
	var res Requests
	if err := c.NodeRequest(ctx, "chain/get_sent_fio_requests",
		requestsParams{pub, limit, offset}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Registration is the result of a registration server request.
type Registration struct {
	Status  string `json:"status"`
	Account string `json:"account,omitempty"`
}

// RegisterFIONameForUser asks the registration server to register fioName
// to owner, paying the fee on the user's behalf.
func (c *Client) RegisterFIONameForUser(ctx context.Context,
	fioName string, owner PublicKey) (*Registration, error) {
	params := struct {
		Address   string    `json:"address"`
		PublicKey PublicKey `json:"public_key"`
	}{fioName, owner}
	var res Registration
	if err := c.RegistrationRequest(ctx, "register_fio_name", params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
