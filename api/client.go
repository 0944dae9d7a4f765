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
	"context"
	"fmt"
	"time"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

// Method names of the fiod JSON-RPC 2.0 API.
const (
	MethodGetDaemonProperties = "get-daemon-properties"

	MethodGetBalance         = "get-balance"
	MethodGetNames           = "get-names"
	MethodGetPublicAddress   = "get-public-address"
	MethodIsAvailable        = "is-available"
	MethodGetFee             = "get-fee"
	MethodGetPendingRequests = "get-pending-requests"
	MethodGetSentRequests    = "get-sent-requests"

	MethodRegisterAddress     = "register-address"
	MethodRegisterDomain      = "register-domain"
	MethodRegisterNameForUser = "register-name-for-user"
	MethodRenewAddress        = "renew-address"
	MethodRenewDomain         = "renew-domain"
	MethodTransferTokens      = "transfer-tokens"
	MethodRequestFunds        = "request-funds"
	MethodRejectRequest       = "reject-request"
	MethodRecordSend          = "record-send"
	MethodAddPublicAddress    = "add-public-address"
	MethodSetDomainVisibility = "set-domain-visibility"
)

// Client makes RPC requests to fiod's APIs. Client embeds a jsonrpc2.Client,
// and thus also the http.Client. Use jsonrpc2.Client's BasicAuth settings to
// set up BasicAuth and http.Client's transport settings to configure TLS.
type Client struct {
	FiodServer string
	jrpc.Client
}

// Defaults for the fiod endpoint.
const (
	FiodDefault = "http://localhost:8078"
)

// NewClient returns a pointer to a Client initialized with the default
// localhost endpoint for fiod and a 15 second timeout.
func NewClient() *Client {
	c := &Client{FiodServer: FiodDefault}
	c.Timeout = 15 * time.Second
	return c
}

// Request makes a request to fiod's v1 API. Use the typed methods of Client
// where possible.
func (c *Client) Request(ctx context.Context,
	method string, params, result interface{}) error {

	if c.DebugRequest {
		fmt.Println("fiod:", c.FiodServer)
	}
	return c.Client.Request(ctx, c.FiodServer, method, params, result)
}

// request checks params with IsValid before sending them, so that invalid
// params fail without a round trip.
func (c *Client) request(ctx context.Context,
	method string, params Params, result interface{}) error {
	if params != nil {
		if err := params.IsValid(); err != nil {
			return err
		}
	}
	return c.Request(ctx, method, params, result)
}

// GetDaemonProperties returns the version, FIO node and signing identity of
// the daemon.
func (c *Client) GetDaemonProperties(
	ctx context.Context) (*ResultGetDaemonProperties, error) {
	var res ResultGetDaemonProperties
	if err := c.Request(ctx, MethodGetDaemonProperties, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetBalance returns the FIO balance of publicKey, or of the daemon's key
// if empty.
func (c *Client) GetBalance(ctx context.Context,
	publicKey string) (*ResultGetBalance, error) {
	var res ResultGetBalance
	if err := c.request(ctx, MethodGetBalance,
		&ParamsPublicKey{PublicKey: publicKey}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetNames returns the FIO addresses and domains owned by publicKey, or by
// the daemon's key if empty.
func (c *Client) GetNames(ctx context.Context,
	publicKey string) (*fio.Names, error) {
	var res fio.Names
	if err := c.request(ctx, MethodGetNames,
		&ParamsPublicKey{PublicKey: publicKey}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetPublicAddress returns the address of fioAddress on the chain of
// tokenCode, which defaults to FIO.
func (c *Client) GetPublicAddress(ctx context.Context,
	fioAddress, tokenCode string) (*fio.PublicAddress, error) {
	var res fio.PublicAddress
	if err := c.request(ctx, MethodGetPublicAddress, &ParamsGetPublicAddress{
		FIOAddress: fioAddress, TokenCode: tokenCode}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// IsAvailable reports whether fioName is free to register.
func (c *Client) IsAvailable(ctx context.Context, fioName string) (bool, error) {
	var res ResultIsAvailable
	if err := c.request(ctx, MethodIsAvailable,
		&ParamsIsAvailable{FIOName: fioName}, &res); err != nil {
		return false, err
	}
	return !res.IsRegistered, nil
}

// GetFee returns the fee of endPoint, paid by fioAddress if the endpoint
// uses bundled transactions.
func (c *Client) GetFee(ctx context.Context,
	endPoint, fioAddress string) (*fio.Fee, error) {
	var res fio.Fee
	if err := c.request(ctx, MethodGetFee, &ParamsGetFee{
		EndPoint: endPoint, FIOAddress: fioAddress}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetPendingRequests returns the funds requests awaiting a response from the
// daemon's key, with decrypted content where possible.
func (c *Client) GetPendingRequests(ctx context.Context,
	page ParamsPagination) (*sdk.Requests, error) {
	var res sdk.Requests
	if err := c.request(ctx, MethodGetPendingRequests, &page, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// GetSentRequests returns the funds requests sent by the daemon's key.
func (c *Client) GetSentRequests(ctx context.Context,
	page ParamsPagination) (*sdk.Requests, error) {
	var res sdk.Requests
	if err := c.request(ctx, MethodGetSentRequests, &page, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Transact calls one of the methods that broadcast a transaction, such as
// MethodTransferTokens with *ParamsTransferTokens.
func (c *Client) Transact(ctx context.Context,
	method string, params Params) (*sdk.Response, error) {
	var res sdk.Response
	if err := c.request(ctx, method, params, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
