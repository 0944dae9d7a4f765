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

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/Factom-Asset-Tokens/fiod/fio/action"
	"github.com/Factom-Asset-Tokens/fiod/fio/validate"
)

func check(res validate.Result) error {
	if res.IsValid {
		return nil
	}
	return validationError(res.ErrorMessage, res.Err)
}

// ownerKey parses pub, returning the user's key if pub is empty.
func (s *SDK) ownerKey(pub string) (fio.PublicKey, error) {
	if len(pub) == 0 {
		return s.pub, nil
	}
	key, err := fio.NewPublicKey(pub)
	if err != nil {
		return key, wrap(KindKeyFormat, err)
	}
	return key, nil
}

// RegisterFIOAddress registers fioAddress to ownerPublicKey, or to the
// user if ownerPublicKey is empty.
func (s *SDK) RegisterFIOAddress(ctx context.Context,
	fioAddress, ownerPublicKey string,
	maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.RegisterFIOAddress(
		fioAddress, ownerPublicKey, tpid)); err != nil {
		return nil, err
	}
	owner, err := s.ownerKey(ownerPublicKey)
	if err != nil {
		return nil, err
	}
	return s.transact(ctx, action.RegisterAddress{
		FIOAddress:     fioAddress,
		OwnerPublicKey: owner,
		MaxFee:         maxFee,
		TPID:           tpid,
	})
}

// RegisterFIODomain registers fioDomain to ownerPublicKey, or to the user
// if ownerPublicKey is empty.
func (s *SDK) RegisterFIODomain(ctx context.Context,
	fioDomain, ownerPublicKey string,
	maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.RegisterFIODomain(
		fioDomain, ownerPublicKey, tpid)); err != nil {
		return nil, err
	}
	owner, err := s.ownerKey(ownerPublicKey)
	if err != nil {
		return nil, err
	}
	return s.transact(ctx, action.RegisterDomain{
		FIODomain:      fioDomain,
		OwnerPublicKey: owner,
		MaxFee:         maxFee,
		TPID:           tpid,
	})
}

func (s *SDK) RenewFIOAddress(ctx context.Context, fioAddress string,
	maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.RenewFIOAddress(fioAddress, tpid)); err != nil {
		return nil, err
	}
	return s.transact(ctx, action.RenewAddress{
		FIOAddress: fioAddress,
		MaxFee:     maxFee,
		TPID:       tpid,
	})
}

func (s *SDK) RenewFIODomain(ctx context.Context, fioDomain string,
	maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.RenewFIODomain(fioDomain, tpid)); err != nil {
		return nil, err
	}
	return s.transact(ctx, action.RenewDomain{
		FIODomain: fioDomain,
		MaxFee:    maxFee,
		TPID:      tpid,
	})
}

// TransferTokens transfers amount SUF to the account of payeePublicKey.
func (s *SDK) TransferTokens(ctx context.Context, payeePublicKey string,
	amount, maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.TransferPublicTokens(
		payeePublicKey, tpid)); err != nil {
		return nil, err
	}
	payee, err := fio.NewPublicKey(payeePublicKey)
	if err != nil {
		return nil, wrap(KindKeyFormat, err)
	}
	return s.transact(ctx, action.TransferTokensToPublicKey{
		PayeePublicKey: payee,
		Amount:         amount,
		MaxFee:         maxFee,
		TPID:           tpid,
	})
}

// RequestNewFunds requests funds from payerFIOAddress on behalf of
// payeeFIOAddress. The content is encrypted for the FIO public key of
// payerFIOAddress, which is looked up first.
func (s *SDK) RequestNewFunds(ctx context.Context,
	payerFIOAddress, payeeFIOAddress string, content FundsRequestContent,
	maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.NewFundsRequest(payerFIOAddress,
		payeeFIOAddress, content.TokenCode, tpid)); err != nil {
		return nil, err
	}
	if err := s.requirePrivateKey(); err != nil {
		return nil, err
	}
	payer, err := s.lookupFIOPublicKey(ctx, payerFIOAddress)
	if err != nil {
		return nil, err
	}
	encrypted, err := s.encrypt(abi.TypeNewFundsContent, content, payer)
	if err != nil {
		return nil, wrap(KindSerialization, err)
	}
	return s.transact(ctx, action.NewFundsRequest{
		PayerFIOAddress: payerFIOAddress,
		PayeeFIOAddress: payeeFIOAddress,
		Content:         encrypted,
		MaxFee:          maxFee,
		TPID:            tpid,
	})
}

// RejectFundsRequest rejects the pending request fioRequestID.
func (s *SDK) RejectFundsRequest(ctx context.Context, fioRequestID uint64,
	maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.RejectFundsRequest(fioRequestID, tpid)); err != nil {
		return nil, err
	}
	return s.transact(ctx, action.RejectFundsRequest{
		FIORequestID: fioRequestID,
		MaxFee:       maxFee,
		TPID:         tpid,
	})
}

// RecordSend records funds sent on another blockchain in response to
// fioRequestID. An empty content Status is recorded as
// StatusSentToBlockchain. The content is encrypted for the FIO public key
// of payeeFIOAddress.
func (s *SDK) RecordSend(ctx context.Context, fioRequestID uint64,
	payerFIOAddress, payeeFIOAddress string, content RecordSendContent,
	maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.RecordSend(fioRequestID, payerFIOAddress,
		payeeFIOAddress, content.TokenCode, tpid)); err != nil {
		return nil, err
	}
	if len(content.Status) == 0 {
		content.Status = StatusSentToBlockchain
	}
	if err := s.requirePrivateKey(); err != nil {
		return nil, err
	}
	payee, err := s.lookupFIOPublicKey(ctx, payeeFIOAddress)
	if err != nil {
		return nil, err
	}
	encrypted, err := s.encrypt(abi.TypeRecordSendContent, content, payee)
	if err != nil {
		return nil, wrap(KindSerialization, err)
	}
	return s.transact(ctx, action.RecordSend{
		FIORequestID:    fioRequestID,
		PayerFIOAddress: payerFIOAddress,
		PayeeFIOAddress: payeeFIOAddress,
		Content:         encrypted,
		MaxFee:          maxFee,
		TPID:            tpid,
	})
}

// AddPublicAddress maps tokenCode to publicAddress for fioAddress.
func (s *SDK) AddPublicAddress(ctx context.Context,
	fioAddress, tokenCode, publicAddress string,
	maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.AddPublicAddress(
		fioAddress, tokenCode, publicAddress, tpid)); err != nil {
		return nil, err
	}
	return s.transact(ctx, action.AddPublicAddress{
		FIOAddress:    fioAddress,
		TokenCode:     tokenCode,
		PublicAddress: publicAddress,
		MaxFee:        maxFee,
		TPID:          tpid,
	})
}

// SetFIODomainVisibility sets whether anyone may register addresses on
// fioDomain.
func (s *SDK) SetFIODomainVisibility(ctx context.Context, fioDomain string,
	isPublic bool, maxFee uint64, walletFIOAddress string) (*Response, error) {
	tpid := s.walletFIOAddress(walletFIOAddress)
	if err := check(validate.SetFIODomainVisibility(fioDomain, tpid)); err != nil {
		return nil, err
	}
	return s.transact(ctx, action.SetDomainVisibility{
		FIODomain: fioDomain,
		IsPublic:  isPublic,
		MaxFee:    maxFee,
		TPID:      tpid,
	})
}
