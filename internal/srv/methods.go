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

package srv

import (
	"bytes"
	"context"
	"encoding/json"

	jrpc "github.com/AdamSLevy/jsonrpc2/v14"

	"github.com/Factom-Asset-Tokens/fiod/api"
	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/internal/flag"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

func methods(s *sdk.SDK, m *Metrics) jrpc.MethodMap {
	methods := jrpc.MethodMap{
		api.MethodGetDaemonProperties: getDaemonProperties(s),

		api.MethodGetBalance:         getBalance(s),
		api.MethodGetNames:           getNames(s),
		api.MethodGetPublicAddress:   getPublicAddress(s),
		api.MethodIsAvailable:        isAvailable(s),
		api.MethodGetFee:             getFee(s),
		api.MethodGetPendingRequests: getRequests(s.GetPendingFIORequests),
		api.MethodGetSentRequests:    getRequests(s.GetSentFIORequests),

		api.MethodRegisterAddress:     registerAddress(s),
		api.MethodRegisterDomain:      registerDomain(s),
		api.MethodRegisterNameForUser: registerNameForUser(s),
		api.MethodRenewAddress:        renewAddress(s),
		api.MethodRenewDomain:         renewDomain(s),
		api.MethodTransferTokens:      transferTokens(s),
		api.MethodRequestFunds:        requestFunds(s),
		api.MethodRejectRequest:       rejectRequest(s),
		api.MethodRecordSend:          recordSend(s),
		api.MethodAddPublicAddress:    addPublicAddress(s),
		api.MethodSetDomainVisibility: setDomainVisibility(s),
	}
	for name, f := range methods {
		methods[name] = instrument(name, f, m)
	}
	return methods
}

func instrument(name string, f jrpc.MethodFunc, m *Metrics) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		if flag.APITimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, flag.APITimeout)
			defer cancel()
		}
		res := f(ctx, data)
		m.observe(name, res)
		return res
	}
}

func getDaemonProperties(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		if err := validate(data, nil); err != nil {
			return err
		}
		res := api.ResultGetDaemonProperties{
			FiodVersion: flag.Revision,
			APIVersion:  api.APIVersion,
			FIONode:     flag.FIOClient.NodeServer,
			PublicKey:   s.PublicKey(),
			Actor:       s.Actor(),
			TPID:        s.TPID(),
		}
		if flag.HasChainID() {
			chainID := flag.ChainID
			res.ChainID = &chainID
		}
		return res
	}
}

func getBalance(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsPublicKey
		if err := validate(data, &params); err != nil {
			return err
		}
		balance, err := s.GetFIOBalance(ctx, params.PublicKey)
		if err != nil {
			return apiError(err)
		}
		return api.ResultGetBalance{
			Balance: balance.Balance,
			FIO:     fio.FormatSUF(balance.Balance),
		}
	}
}

func getNames(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsPublicKey
		if err := validate(data, &params); err != nil {
			return err
		}
		names, err := s.GetFIONames(ctx, params.PublicKey)
		if err != nil {
			return apiError(err)
		}
		return names
	}
}

func getPublicAddress(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsGetPublicAddress
		if err := validate(data, &params); err != nil {
			return err
		}
		addr, err := s.GetPublicAddress(ctx, params.FIOAddress, params.TokenCode)
		if err != nil {
			return apiError(err)
		}
		return addr
	}
}

func isAvailable(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsIsAvailable
		if err := validate(data, &params); err != nil {
			return err
		}
		avail, err := s.IsAvailable(ctx, params.FIOName)
		if err != nil {
			return apiError(err)
		}
		return api.ResultIsAvailable{IsRegistered: avail.IsRegistered != 0}
	}
}

func getFee(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsGetFee
		if err := validate(data, &params); err != nil {
			return err
		}
		fee, err := s.GetFee(ctx, params.EndPoint, params.FIOAddress)
		if err != nil {
			return apiError(err)
		}
		return fee
	}
}

func getRequests(get func(context.Context, *int, *int) (*sdk.Requests, error)) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsPagination
		if err := validate(data, &params); err != nil {
			return err
		}
		requests, err := get(ctx, params.Limit, params.Offset)
		if err != nil {
			return apiError(err)
		}
		return requests
	}
}

func registerAddress(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsRegisterAddress
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.RegisterFIOAddress(ctx,
			params.FIOAddress, params.OwnerPublicKey,
			params.MaxFee, params.TPID))
	}
}

func registerDomain(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsRegisterDomain
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.RegisterFIODomain(ctx,
			params.FIODomain, params.OwnerPublicKey,
			params.MaxFee, params.TPID))
	}
}

func registerNameForUser(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsRegisterNameForUser
		if err := validate(data, &params); err != nil {
			return err
		}
		reg, err := s.RegisterFIONameOnBehalfOfUser(ctx,
			params.FIOName, params.OwnerPublicKey)
		if err != nil {
			return apiError(err)
		}
		return reg
	}
}

func renewAddress(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsRenewAddress
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.RenewFIOAddress(ctx, params.FIOAddress,
			params.MaxFee, params.TPID))
	}
}

func renewDomain(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsRenewDomain
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.RenewFIODomain(ctx, params.FIODomain,
			params.MaxFee, params.TPID))
	}
}

func transferTokens(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsTransferTokens
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.TransferTokens(ctx, params.PayeePublicKey,
			params.Amount, params.MaxFee, params.TPID))
	}
}

func requestFunds(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsRequestFunds
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.RequestNewFunds(ctx,
			params.PayerFIOAddress, params.PayeeFIOAddress, params.Content,
			params.MaxFee, params.TPID))
	}
}

func rejectRequest(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsRejectRequest
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.RejectFundsRequest(ctx, params.FIORequestID,
			params.MaxFee, params.TPID))
	}
}

func recordSend(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsRecordSend
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.RecordSend(ctx, params.FIORequestID,
			params.PayerFIOAddress, params.PayeeFIOAddress, params.Content,
			params.MaxFee, params.TPID))
	}
}

func addPublicAddress(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsAddPublicAddress
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.AddPublicAddress(ctx,
			params.FIOAddress, params.TokenCode, params.PublicAddress,
			params.MaxFee, params.TPID))
	}
}

func setDomainVisibility(s *sdk.SDK) jrpc.MethodFunc {
	return func(ctx context.Context, data json.RawMessage) interface{} {
		var params api.ParamsSetDomainVisibility
		if err := validate(data, &params); err != nil {
			return err
		}
		return response(s.SetFIODomainVisibility(ctx, params.FIODomain,
			params.IsPublic, params.MaxFee, params.TPID))
	}
}

func response(res *sdk.Response, err error) interface{} {
	if err != nil {
		return apiError(err)
	}
	return res
}

func validate(data json.RawMessage, params api.Params) error {
	if params == nil {
		if len(data) > 0 {
			return jrpc.ErrorInvalidParams(`no "params" accepted`)
		}
		return nil
	}
	if len(data) == 0 {
		return params.IsValid()
	}
	if err := unmarshalStrict(data, params); err != nil {
		return jrpc.ErrorInvalidParams(err.Error())
	}
	return params.IsValid()
}

func unmarshalStrict(data []byte, v interface{}) error {
	b := bytes.NewBuffer(data)
	d := json.NewDecoder(b)
	d.DisallowUnknownFields()
	return d.Decode(v)
}
