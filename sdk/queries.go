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
	"context"
	"fmt"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/validate"
)

// TokenCodeFIO is the token code under which every FIO address maps its
// owner's FIO public key.
const TokenCodeFIO = "FIO"

func query[T any](res T, err error) (T, error) {
	if err != nil {
		return res, wrap(KindNetworkQuery, err)
	}
	return res, nil
}

// GetFIOBalance returns the balance of pub, or of the user if pub is empty.
func (s *SDK) GetFIOBalance(ctx context.Context, pub string) (*fio.Balance, error) {
	key, err := s.ownerKey(pub)
	if err != nil {
		return nil, err
	}
	return query(s.network.GetFIOBalance(ctx, key))
}

// GetFIONames returns the names owned by pub, or by the user if pub is
// empty.
func (s *SDK) GetFIONames(ctx context.Context, pub string) (*fio.Names, error) {
	key, err := s.ownerKey(pub)
	if err != nil {
		return nil, err
	}
	return query(s.network.GetFIONames(ctx, key))
}

// GetPublicAddress returns the address that fioAddress maps tokenCode to.
func (s *SDK) GetPublicAddress(ctx context.Context,
	fioAddress, tokenCode string) (*fio.PublicAddress, error) {
	if !validate.IsFIOAddress(fioAddress) || !validate.IsTokenCode(tokenCode) {
		return nil, validationError("Invalid Get Public Address Request", nil)
	}
	return query(s.network.GetPublicAddress(ctx, fioAddress, tokenCode))
}

// GetFIOPublicAddress returns the FIO public key of the owner of
// fioAddress.
func (s *SDK) GetFIOPublicAddress(ctx context.Context,
	fioAddress string) (*fio.PublicAddress, error) {
	return s.GetPublicAddress(ctx, fioAddress, TokenCodeFIO)
}

func (s *SDK) lookupFIOPublicKey(ctx context.Context,
	fioAddress string) (fio.PublicKey, error) {
	res, err := s.GetFIOPublicAddress(ctx, fioAddress)
	if err != nil {
		return fio.PublicKey{}, err
	}
	pub, err := fio.NewPublicKey(res.PublicAddress)
	if err != nil {
		return pub, wrap(KindKeyFormat, fmt.Errorf("%v: %w", fioAddress, err))
	}
	return pub, nil
}

// IsAvailable reports whether the FIO address or domain fioName is
// registered.
func (s *SDK) IsAvailable(ctx context.Context,
	fioName string) (*fio.Availability, error) {
	if !validate.IsFIOAddress(fioName) && !validate.IsFIODomain(fioName) {
		return nil, validationError("Invalid FIO Name", nil)
	}
	return query(s.network.AvailCheck(ctx, fioName))
}

// GetFee returns the fee of endpoint, one of fio.EndpointsWithFees.
// fioAddress may be empty for endpoints without bundled transactions.
func (s *SDK) GetFee(ctx context.Context,
	endpoint, fioAddress string) (*fio.Fee, error) {
	if !isEndpointWithFee(endpoint) {
		return nil, validationError(
			fmt.Sprintf("Invalid Fee Request: unknown endpoint %q", endpoint), nil)
	}
	if len(fioAddress) > 0 && !validate.IsFIOAddress(fioAddress) {
		return nil, validationError("Invalid Fee Request: invalid FIO address", nil)
	}
	return query(s.network.GetFee(ctx, endpoint, fioAddress))
}

func isEndpointWithFee(endpoint string) bool {
	for _, e := range fio.EndpointsWithFees {
		if e == endpoint {
			return true
		}
	}
	return false
}

// GetFeeForNewFundsRequest returns the fee charged to payeeFIOAddress for
// requesting funds.
func (s *SDK) GetFeeForNewFundsRequest(ctx context.Context,
	payeeFIOAddress string) (*fio.Fee, error) {
	if err := check(validate.FeeForNewFundsRequest(payeeFIOAddress)); err != nil {
		return nil, err
	}
	return query(s.network.GetFee(ctx, fio.EndpointNewFundsRequest, payeeFIOAddress))
}

// GetFeeForRejectFundsRequest returns the fee charged to payerFIOAddress
// for rejecting a request.
func (s *SDK) GetFeeForRejectFundsRequest(ctx context.Context,
	payerFIOAddress string) (*fio.Fee, error) {
	if err := check(validate.FeeForRejectFundsRequest(payerFIOAddress)); err != nil {
		return nil, err
	}
	return query(s.network.GetFee(ctx, fio.EndpointRejectFundsRequest, payerFIOAddress))
}

// GetFeeForRecordSend returns the fee charged to payerFIOAddress for
// recording a send.
func (s *SDK) GetFeeForRecordSend(ctx context.Context,
	payerFIOAddress string) (*fio.Fee, error) {
	if err := check(validate.FeeForRecordSend(payerFIOAddress)); err != nil {
		return nil, err
	}
	return query(s.network.GetFee(ctx, fio.EndpointRecordSend, payerFIOAddress))
}

// GetPendingFIORequests returns the requests awaiting payment by the user,
// decrypted with the key of each payee.
func (s *SDK) GetPendingFIORequests(ctx context.Context,
	limit, offset *int) (*Requests, error) {
	res, err := s.network.GetPendingFIORequests(ctx, s.pub, limit, offset)
	if err != nil {
		return nil, wrap(KindNetworkQuery, err)
	}
	return s.decryptRequests(res, func(r fio.Request) string {
		return r.PayeeFIOPublicKey
	}), nil
}

// GetSentFIORequests returns the requests sent by the user, decrypted with
// the key of each payer.
func (s *SDK) GetSentFIORequests(ctx context.Context,
	limit, offset *int) (*Requests, error) {
	res, err := s.network.GetSentFIORequests(ctx, s.pub, limit, offset)
	if err != nil {
		return nil, wrap(KindNetworkQuery, err)
	}
	return s.decryptRequests(res, func(r fio.Request) string {
		return r.PayerFIOPublicKey
	}), nil
}

// RegisterFIONameOnBehalfOfUser asks the registration server to register
// fioName to ownerPublicKey, or to the user if ownerPublicKey is empty.
func (s *SDK) RegisterFIONameOnBehalfOfUser(ctx context.Context,
	fioName, ownerPublicKey string) (*fio.Registration, error) {
	if !validate.IsFIOAddress(fioName) && !validate.IsFIODomain(fioName) {
		return nil, validationError("Invalid FIO Name", nil)
	}
	owner, err := s.ownerKey(ownerPublicKey)
	if err != nil {
		return nil, err
	}
	return query(s.network.RegisterFIONameForUser(ctx, fioName, owner))
}
