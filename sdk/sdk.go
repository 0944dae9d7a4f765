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

// Package sdk is the high level interface to the FIO chain.
//
// An SDK holds the credentials of one user and the collaborators used to
// reach a FIO node. Each mutating method validates its arguments, resolves
// and encrypts any private content, builds exactly one action and drives a
// new trx.Processor through Prepare, Sign and Broadcast. Query methods call
// the node directly. All methods return errors of type *Error.
//
// An SDK is immutable after New and safe for concurrent use.
package sdk

import (
	"context"
	"fmt"
	"time"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/Factom-Asset-Tokens/fiod/fio/action"
	"github.com/Factom-Asset-Tokens/fiod/fio/trx"
	_log "github.com/Factom-Asset-Tokens/fiod/log"
)

// Network is the FIO node API used by an SDK. *fio.Client is a Network.
type Network interface {
	trx.ChainClient
	abi.ABIGetter

	GetFIOBalance(ctx context.Context, pub fio.PublicKey) (*fio.Balance, error)
	GetFIONames(ctx context.Context, pub fio.PublicKey) (*fio.Names, error)
	GetPublicAddress(ctx context.Context,
		fioAddress, tokenCode string) (*fio.PublicAddress, error)
	AvailCheck(ctx context.Context, fioName string) (*fio.Availability, error)
	GetFee(ctx context.Context, endpoint, fioAddress string) (*fio.Fee, error)
	GetPendingFIORequests(ctx context.Context,
		pub fio.PublicKey, limit, offset *int) (*fio.Requests, error)
	GetSentFIORequests(ctx context.Context,
		pub fio.PublicKey, limit, offset *int) (*fio.Requests, error)
	RegisterFIONameForUser(ctx context.Context,
		fioName string, owner fio.PublicKey) (*fio.Registration, error)
}

var _ Network = (*fio.Client)(nil)

type Option func(*SDK)

// WithNetwork sets the node client. The default is fio.NewClient().
func WithNetwork(n Network) Option {
	return func(s *SDK) { s.network = n }
}

// WithABIProvider sets the ABI provider. The default is an
// abi.CachingProvider backed by the Network.
func WithABIProvider(p abi.Provider) Option {
	return func(s *SDK) { s.abis = p }
}

// WithSigner sets the transaction signer. The default is a trx.KeySigner
// holding the private key passed to New.
func WithSigner(signer trx.Signer) Option {
	return func(s *SDK) { s.signer = signer }
}

func WithSerializer(ser abi.Serializer) Option {
	return func(s *SDK) { s.serializer = ser }
}

// WithTPID sets the technology provider FIO address used when a method is
// called with an empty walletFIOAddress.
func WithTPID(tpid string) Option {
	return func(s *SDK) { s.tpid = tpid }
}

// WithLifetime sets the lifetime of each transaction. See
// trx.WithLifetime.
func WithLifetime(d time.Duration) Option {
	return func(s *SDK) { s.lifetime = d }
}

// WithProcessorOptions appends options passed to every trx.Processor.
func WithProcessorOptions(opts ...trx.Option) Option {
	return func(s *SDK) { s.trxOpts = append(s.trxOpts, opts...) }
}

type SDK struct {
	priv fio.PrivateKey
	pub  fio.PublicKey

	network    Network
	abis       abi.Provider
	signer     trx.Signer
	serializer abi.Serializer

	tpid     string
	lifetime time.Duration
	trxOpts  []trx.Option

	log _log.Log
}

// New returns an SDK for the user holding priv. If pub is zero it is
// derived from priv, otherwise it must match priv. A zero priv yields an
// SDK that can only query.
func New(priv fio.PrivateKey, pub fio.PublicKey, opts ...Option) (*SDK, error) {
	switch {
	case priv.IsZero() && pub.IsZero():
		return nil, &Error{Kind: KindKeyFormat,
			Message: "a private or public key is required"}
	case priv.IsZero():
	case pub.IsZero():
		pub = priv.PublicKey()
	case pub != priv.PublicKey():
		return nil, &Error{Kind: KindKeyFormat,
			Message: fmt.Sprintf("public key %v does not match private key", pub)}
	}

	s := &SDK{priv: priv, pub: pub, lifetime: trx.DefaultLifetime}
	for _, opt := range opts {
		opt(s)
	}
	if s.network == nil {
		s.network = fio.NewClient()
	}
	if s.abis == nil {
		s.abis = abi.NewCachingProvider(s.network)
	}
	if s.signer == nil {
		if priv.IsZero() {
			s.signer = trx.NewKeySigner()
		} else {
			s.signer = trx.NewKeySigner(priv)
		}
	}
	if s.serializer == nil {
		s.serializer = abi.ContractSerializer{}
	}
	s.log = _log.New("sdk").With("actor", s.pub.Actor())
	return s, nil
}

// PublicKey returns the FIO public key of the user.
func (s *SDK) PublicKey() fio.PublicKey { return s.pub }

// Actor returns the account name of the user.
func (s *SDK) Actor() fio.Name { return s.pub.Actor() }

// TPID returns the default technology provider FIO address.
func (s *SDK) TPID() string { return s.tpid }

// GetMultiplier returns the number of SUF in one FIO.
func (s *SDK) GetMultiplier() uint64 { return fio.SUFPerFIO }

// Response is the result of a broadcast transaction. The embedded
// ActionTraceResponse is decoded from the contract response of the first
// action and is zero if the contract returned none.
type Response struct {
	TransactionID fio.Bytes32 `json:"transaction_id"`
	fio.ActionTraceResponse
	Result *fio.PushTransactionResult `json:"-"`
}

func (s *SDK) walletFIOAddress(walletFIOAddress string) string {
	if len(walletFIOAddress) > 0 {
		return walletFIOAddress
	}
	return s.tpid
}

// requireSigner returns a KindKeyFormat error if no key is available to
// sign transactions for the user.
func (s *SDK) requireSigner() error {
	if !s.priv.IsZero() {
		return nil
	}
	for _, pub := range s.signer.PublicKeys() {
		if pub.Actor() == s.Actor() {
			return nil
		}
	}
	return &Error{Kind: KindKeyFormat,
		Message: fmt.Sprintf("no signing key for %v", s.Actor())}
}

// requirePrivateKey returns a KindKeyFormat error if the SDK was created
// without a private key. Private content cannot be encrypted or decrypted
// without one.
func (s *SDK) requirePrivateKey() error {
	if s.priv.IsZero() {
		return &Error{Kind: KindKeyFormat,
			Message: "a private key is required for private content"}
	}
	return nil
}

// transact drives a new Processor through every stage for a single
// action built from v.
func (s *SDK) transact(ctx context.Context, v action.Variant) (*Response, error) {
	if err := s.requireSigner(); err != nil {
		return nil, err
	}
	opts := append([]trx.Option{
		trx.WithLifetime(s.lifetime),
		trx.WithSerializer(s.serializer),
	}, s.trxOpts...)
	p := trx.New(s.network, s.abis, s.signer, opts...)
	act := action.New(v, s.Actor())
	log := s.log.With("attempt", p.Attempt()).
		With("action", fmt.Sprintf("%v::%v", act.Account, act.Name))

	if err := p.Prepare(ctx, []*action.Action{act}); err != nil {
		log.Debug(err)
		return nil, wrap(KindTransactionPrepare, err)
	}
	if err := p.Sign(ctx); err != nil {
		log.Debug(err)
		return nil, wrap(KindTransactionSign, err)
	}
	res, err := p.Broadcast(ctx)
	if err != nil {
		log.Debug(err)
		return nil, wrap(KindTransactionBroadcast, err)
	}

	r := &Response{TransactionID: res.TransactionID, Result: res}
	if trace, err := res.ActionTraceResponse(); err == nil {
		r.ActionTraceResponse = *trace
	} else {
		log.Debugf("no contract response: %v", err)
	}
	log.WithField("trx_id", res.TransactionID).Info("transaction broadcast")
	return r, nil
}
