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

package srv_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Factom-Asset-Tokens/fiod/api"
	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/internal/flag"
	"github.com/Factom-Asset-Tokens/fiod/internal/srv"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
	"github.com/Factom-Asset-Tokens/fiod/sdk/sdktest"
)

type daemon struct {
	*api.Client
	Metrics *srv.Metrics
	URL     string
}

func newDaemon(t *testing.T, wif string, node *sdktest.Node) daemon {
	key, err := fio.NewPrivateKeyFromWIF(wif)
	require.NoError(t, err)
	s, err := sdk.New(key, fio.PublicKey{}, sdk.WithNetwork(node))
	require.NoError(t, err)

	m := srv.NewMetrics()
	ts := httptest.NewServer(srv.NewHandler(s, m))
	t.Cleanup(ts.Close)

	c := api.NewClient()
	c.FiodServer = ts.URL
	return daemon{Client: c, Metrics: m, URL: ts.URL}
}

func requireCode(t *testing.T, code jrpc.ErrorCode, err error) jrpc.Error {
	t.Helper()
	require.Error(t, err)
	var jErr jrpc.Error
	if !errors.As(err, &jErr) {
		var pErr *jrpc.Error
		require.True(t, errors.As(err, &pErr), "%T: %v", err, err)
		jErr = *pErr
	}
	require.Equal(t, code, jErr.Code, jErr.Error())
	return jErr
}

func TestGetDaemonProperties(t *testing.T) {
	d := newDaemon(t, sdktest.AliceWIF, sdktest.NewNode())
	ctx := context.Background()

	var props api.ResultGetDaemonProperties
	require.NoError(t, d.Request(ctx, "get-daemon-properties", nil, &props))
	assert.Equal(t, api.APIVersion, props.APIVersion)
	assert.Equal(t, sdktest.AlicePub, props.PublicKey.String())
	assert.Equal(t, "5keniyy2gu4v", props.Actor.String())
	assert.Nil(t, props.ChainID)

	err := d.Request(ctx, "get-daemon-properties",
		api.ParamsPublicKey{PublicKey: sdktest.BobPub}, &props)
	requireCode(t, jrpc.ErrorCodeInvalidParams, err)
}

func TestHeaders(t *testing.T) {
	d := newDaemon(t, sdktest.AliceWIF, sdktest.NewNode())
	for _, path := range []string{"/", "/v1"} {
		t.Run(path, func(t *testing.T) {
			res, err := http.Post(d.URL+path, "application/json",
				strings.NewReader(
					`{"jsonrpc":"2.0","method":"get-daemon-properties","id":1}`))
			require.NoError(t, err)
			defer res.Body.Close()
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, api.APIVersion, res.Header.Get("Fiod-Api-Version"))
			_, ok := res.Header["Fiod-Version"]
			assert.True(t, ok)
		})
	}
}

func TestBasicAuth(t *testing.T) {
	d := newDaemon(t, sdktest.AliceWIF, sdktest.NewNode())
	flag.HasAuth, flag.Username, flag.Password = true, "user", "pass"
	defer func() { flag.HasAuth, flag.Username, flag.Password = false, "", "" }()

	ctx := context.Background()
	var props api.ResultGetDaemonProperties
	assert.Error(t, d.Request(ctx, "get-daemon-properties", nil, &props))

	d.BasicAuth = true
	d.User, d.Password = "user", "pass"
	assert.NoError(t, d.Request(ctx, "get-daemon-properties", nil, &props))
}

func TestQueries(t *testing.T) {
	node := sdktest.NewNode()
	d := newDaemon(t, sdktest.AliceWIF, node)
	ctx := context.Background()

	t.Run("get-balance", func(t *testing.T) {
		var balance api.ResultGetBalance
		require.NoError(t, d.Request(ctx, "get-balance", nil, &balance))
		assert.Equal(t, uint64(5*fio.SUFPerFIO), balance.Balance)
		assert.Equal(t, "5.000000000", balance.FIO)
	})
	t.Run("get-balance/unknown key", func(t *testing.T) {
		var balance api.ResultGetBalance
		err := d.Request(ctx, "get-balance",
			api.ParamsPublicKey{PublicKey: sdktest.CarolPub}, &balance)
		requireCode(t, api.ErrorFIONode.Code, err)
	})
	t.Run("get-balance/invalid key", func(t *testing.T) {
		var balance api.ResultGetBalance
		err := d.Request(ctx, "get-balance",
			api.ParamsPublicKey{PublicKey: "EOS123"}, &balance)
		requireCode(t, jrpc.ErrorCodeInvalidParams, err)
	})
	t.Run("get-balance/unknown field", func(t *testing.T) {
		var balance api.ResultGetBalance
		err := d.Request(ctx, "get-balance",
			map[string]string{"pubkey": sdktest.BobPub}, &balance)
		requireCode(t, jrpc.ErrorCodeInvalidParams, err)
	})
	t.Run("get-names", func(t *testing.T) {
		var names fio.Names
		require.NoError(t, d.Request(ctx, "get-names", nil, &names))
		require.Len(t, names.FIOAddresses, 1)
		assert.Equal(t, "alice:brd", names.FIOAddresses[0].FIOAddress)
	})
	t.Run("get-public-address", func(t *testing.T) {
		var addr fio.PublicAddress
		require.NoError(t, d.Request(ctx, "get-public-address",
			api.ParamsGetPublicAddress{FIOAddress: "bob:brd"}, &addr))
		assert.Equal(t, sdktest.BobPub, addr.PublicAddress)
	})
	t.Run("is-available", func(t *testing.T) {
		var avail api.ResultIsAvailable
		require.NoError(t, d.Request(ctx, "is-available",
			api.ParamsIsAvailable{FIOName: "alice:brd"}, &avail))
		assert.True(t, avail.IsRegistered)
		require.NoError(t, d.Request(ctx, "is-available",
			api.ParamsIsAvailable{FIOName: "carol:brd"}, &avail))
		assert.False(t, avail.IsRegistered)
	})
	t.Run("get-fee", func(t *testing.T) {
		var fee fio.Fee
		require.NoError(t, d.Request(ctx, "get-fee", api.ParamsGetFee{
			EndPoint: fio.EndpointRecordSend, FIOAddress: "bob:brd"}, &fee))
		assert.Equal(t, uint64(800000000), fee.Fee)
		assert.Equal(t, [2]string{"record_send", "bob:brd"}, node.LastFee)

		err := d.Request(ctx, "get-fee",
			api.ParamsGetFee{EndPoint: "get_balance"}, &fee)
		requireCode(t, jrpc.ErrorCodeInvalidParams, err)
	})
	t.Run("register-name-for-user", func(t *testing.T) {
		var reg fio.Registration
		require.NoError(t, d.Request(ctx, "register-name-for-user",
			api.ParamsRegisterNameForUser{FIOName: "alice:brd"}, &reg))
		assert.Equal(t, "OK", reg.Status)
		assert.Equal(t, "5keniyy2gu4v", reg.Account)
	})
}

func TestTransactions(t *testing.T) {
	ctx := context.Background()
	tx := api.ParamsTransaction{MaxFee: 40000000000}
	tests := []struct {
		Method string
		Params interface{}
		Action string
	}{{
		Method: "register-address",
		Params: api.ParamsRegisterAddress{ParamsTransaction: tx,
			FIOAddress: "carol:brd"},
		Action: "regaddress",
	}, {
		Method: "register-domain",
		Params: api.ParamsRegisterDomain{ParamsTransaction: tx,
			FIODomain: "brd", OwnerPublicKey: sdktest.BobPub},
		Action: "regdomain",
	}, {
		Method: "renew-address",
		Params: api.ParamsRenewAddress{ParamsTransaction: tx,
			FIOAddress: "alice:brd"},
		Action: "renewaddress",
	}, {
		Method: "renew-domain",
		Params: api.ParamsRenewDomain{ParamsTransaction: tx,
			FIODomain: "brd"},
		Action: "renewdomain",
	}, {
		Method: "transfer-tokens",
		Params: api.ParamsTransferTokens{ParamsTransaction: tx,
			PayeePublicKey: sdktest.BobPub, Amount: fio.SUFPerFIO},
		Action: "trnsfiopubky",
	}, {
		Method: "reject-request",
		Params: api.ParamsRejectRequest{ParamsTransaction: tx,
			FIORequestID: 7},
		Action: "rejectfndreq",
	}, {
		Method: "add-public-address",
		Params: api.ParamsAddPublicAddress{ParamsTransaction: tx,
			FIOAddress: "alice:brd", TokenCode: "BTC",
			PublicAddress: "bc1qalice"},
		Action: "addaddress",
	}, {
		Method: "set-domain-visibility",
		Params: api.ParamsSetDomainVisibility{ParamsTransaction: tx,
			FIODomain: "brd", IsPublic: true},
		Action: "setdomainpub",
	}}
	for _, test := range tests {
		t.Run(test.Method, func(t *testing.T) {
			node := sdktest.NewNode()
			d := newDaemon(t, sdktest.AliceWIF, node)

			var res sdk.Response
			require.NoError(t, d.Request(ctx, test.Method, test.Params, &res))
			assert.Equal(t, "OK", res.Status)
			assert.False(t, res.TransactionID.IsZero())

			require.Len(t, node.Pushed, 1)
			assert.Equal(t, test.Action, node.Pushed[0].Name)
			assert.Equal(t, "5keniyy2gu4v", node.Pushed[0].Actor)
		})
	}

	t.Run("invalid params", func(t *testing.T) {
		node := sdktest.NewNode()
		d := newDaemon(t, sdktest.AliceWIF, node)
		var res sdk.Response
		err := d.Request(ctx, "transfer-tokens", api.ParamsTransferTokens{
			PayeePublicKey: sdktest.BobPub}, &res)
		requireCode(t, jrpc.ErrorCodeInvalidParams, err)
		err = d.Request(ctx, "register-address", api.ParamsRegisterAddress{
			FIOAddress: "not an address"}, &res)
		requireCode(t, jrpc.ErrorCodeInvalidParams, err)
		assert.Zero(t, node.Calls())
	})
	t.Run("broadcast error", func(t *testing.T) {
		node := sdktest.NewNode()
		node.Except = `{"code":3050003,"name":"eosio_assert_message_exception"}`
		d := newDaemon(t, sdktest.AliceWIF, node)
		var res sdk.Response
		err := d.Request(ctx, "renew-domain", api.ParamsRenewDomain{
			ParamsTransaction: tx, FIODomain: "brd"}, &res)
		requireCode(t, api.ErrorTransactionBroadcast.Code, err)
	})
}

func TestFundsRequest(t *testing.T) {
	node := sdktest.NewNode()
	alice := newDaemon(t, sdktest.AliceWIF, node)
	bob := newDaemon(t, sdktest.BobWIF, node)
	ctx := context.Background()

	content := sdk.FundsRequestContent{
		PayeePublicAddress: "bc1qalice",
		Amount:             "0.1",
		TokenCode:          "BTC",
		Memo:               "coffee",
	}
	var res sdk.Response
	require.NoError(t, alice.Request(ctx, "request-funds", api.ParamsRequestFunds{
		PayerFIOAddress: "bob:brd",
		PayeeFIOAddress: "alice:brd",
		Content:         content,
	}, &res))
	assert.Equal(t, "requested", res.Status)
	assert.Equal(t, uint64(1), res.FIORequestID)

	var pending sdk.Requests
	require.NoError(t, bob.Request(ctx, "get-pending-requests",
		api.ParamsPagination{}, &pending))
	require.Len(t, pending.Requests, 1)
	require.NotNil(t, pending.Requests[0].Content)
	assert.Equal(t, content, *pending.Requests[0].Content)

	limit := 0
	err := bob.Request(ctx, "get-pending-requests",
		api.ParamsPagination{Limit: &limit}, &pending)
	requireCode(t, jrpc.ErrorCodeInvalidParams, err)

	var sent sdk.Requests
	require.NoError(t, alice.Request(ctx, "get-sent-requests", nil, &sent))
	require.Len(t, sent.Requests, 1)
	require.NotNil(t, sent.Requests[0].Content)
	assert.Equal(t, "coffee", sent.Requests[0].Content.Memo)

	require.NoError(t, bob.Request(ctx, "record-send", api.ParamsRecordSend{
		FIORequestID:    res.FIORequestID,
		PayerFIOAddress: "bob:brd",
		PayeeFIOAddress: "alice:brd",
		Content: sdk.RecordSendContent{
			PayerPublicAddress: "bc1qbob",
			PayeePublicAddress: "bc1qalice",
			Amount:             "0.1",
			TokenCode:          "BTC",
			OBTID:              "0xdeadbeef",
		},
	}, &res))
	assert.Equal(t, sdk.StatusSentToBlockchain, res.Status)
	require.Len(t, node.Records, 1)
}

func TestClient(t *testing.T) {
	node := sdktest.NewNode()
	alice := newDaemon(t, sdktest.AliceWIF, node)
	bob := newDaemon(t, sdktest.BobWIF, node)
	ctx := context.Background()

	t.Run("daemon properties", func(t *testing.T) {
		props, err := alice.GetDaemonProperties(ctx)
		require.NoError(t, err)
		assert.Equal(t, api.APIVersion, props.APIVersion)
		assert.Equal(t, sdktest.AlicePub, props.PublicKey.String())
		assert.Equal(t, "5keniyy2gu4v", props.Actor.String())
	})
	t.Run("queries", func(t *testing.T) {
		assert := assert.New(t)
		require := require.New(t)
		balance, err := alice.GetBalance(ctx, "")
		require.NoError(err)
		assert.Equal("5.000000000", balance.FIO)

		names, err := alice.GetNames(ctx, sdktest.BobPub)
		require.NoError(err)
		require.Len(names.FIOAddresses, 1)

		addr, err := alice.GetPublicAddress(ctx, "bob:brd", "")
		require.NoError(err)
		assert.Equal(sdktest.BobPub, addr.PublicAddress)

		free, err := alice.IsAvailable(ctx, "carol:brd")
		require.NoError(err)
		assert.True(free)
		free, err = alice.IsAvailable(ctx, "alice:brd")
		require.NoError(err)
		assert.False(free)

		fee, err := alice.GetFee(ctx, fio.EndpointRecordSend, "bob:brd")
		require.NoError(err)
		assert.Equal(uint64(800000000), fee.Fee)
	})
	t.Run("transactions", func(t *testing.T) {
		assert := assert.New(t)
		require := require.New(t)
		res, err := alice.Transact(ctx, api.MethodRequestFunds,
			&api.ParamsRequestFunds{
				PayerFIOAddress: "bob:brd",
				PayeeFIOAddress: "alice:brd",
				Content: sdk.FundsRequestContent{
					Amount: "1", TokenCode: "BTC", Memo: "rent"},
			})
		require.NoError(err)
		assert.Equal("requested", res.Status)

		pending, err := bob.GetPendingRequests(ctx, api.ParamsPagination{})
		require.NoError(err)
		require.Len(pending.Requests, 1)
		require.NotNil(pending.Requests[0].Content)
		assert.Equal("rent", pending.Requests[0].Content.Memo)

		sent, err := alice.GetSentRequests(ctx, api.ParamsPagination{})
		require.NoError(err)
		assert.Len(sent.Requests, 1)
	})
	t.Run("invalid params", func(t *testing.T) {
		calls := node.Calls()
		_, err := alice.GetBalance(ctx, "EOS123")
		requireCode(t, jrpc.ErrorCodeInvalidParams, err)
		_, err = alice.Transact(ctx, api.MethodTransferTokens,
			&api.ParamsTransferTokens{PayeePublicKey: sdktest.BobPub})
		requireCode(t, jrpc.ErrorCodeInvalidParams, err)
		limit := 0
		_, err = bob.GetPendingRequests(ctx, api.ParamsPagination{Limit: &limit})
		requireCode(t, jrpc.ErrorCodeInvalidParams, err)
		assert.Equal(t, calls, node.Calls())
	})
}

func TestMetrics(t *testing.T) {
	d := newDaemon(t, sdktest.AliceWIF, sdktest.NewNode())
	ctx := context.Background()

	var balance api.ResultGetBalance
	require.NoError(t, d.Request(ctx, "get-balance", nil, &balance))
	require.Error(t, d.Request(ctx, "get-balance",
		api.ParamsPublicKey{PublicKey: sdktest.CarolPub}, &balance))
	var res sdk.Response
	require.NoError(t, d.Request(ctx, "renew-address", api.ParamsRenewAddress{
		FIOAddress: "alice:brd"}, &res))

	counters := map[string]float64{}
	families, err := d.Metrics.Registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			method := metric.GetLabel()[0].GetValue()
			counters[family.GetName()+"/"+method] = metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{
		"fiod_rpc_total/get-balance":                    2,
		"fiod_rpc_total/renew-address":                  1,
		"fiod_rpc_errors_total/get-balance":             1,
		"fiod_transactions_broadcast_total/renew-address": 1,
	}, counters)

	res2, err := http.Get(d.URL + "/metrics")
	require.NoError(t, err)
	defer res2.Body.Close()
	assert.Equal(t, http.StatusOK, res2.StatusCode)
}
