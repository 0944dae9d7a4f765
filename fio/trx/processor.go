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

// Package trx builds, signs and broadcasts FIO transactions.
//
// A Processor drives one transaction through Prepare, Sign and Broadcast, in
// that order, exactly once. Any error, including calling a stage out of
// order, moves the Processor to the terminal Failed state. A new attempt
// requires a new Processor.
package trx

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/Factom-Asset-Tokens/fiod/fio/action"
	_log "github.com/Factom-Asset-Tokens/fiod/log"
)

// ChainClient is the subset of *fio.Client used by a Processor.
type ChainClient interface {
	GetInfo(ctx context.Context) (*fio.Info, error)
	GetBlock(ctx context.Context, blockNum uint32) (*fio.Block, error)
	// GetRequiredKeys returns the subset of available needed to satisfy
	// the authorizations of trx.
	GetRequiredKeys(ctx context.Context, trx interface{},
		available []fio.PublicKey) ([]fio.PublicKey, error)
	PushTransaction(ctx context.Context,
		trx *fio.PackedTransaction) (*fio.PushTransactionResult, error)
}

var _ ChainClient = (*fio.Client)(nil)

type State int

const (
	Created State = iota
	Prepared
	Signed
	Broadcast
	Failed
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Prepared:
		return "prepared"
	case Signed:
		return "signed"
	case Broadcast:
		return "broadcast"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Transaction lifetimes. The lifetime is the time from Prepare until the
// transaction expires.
const (
	DefaultLifetime = time.Hour
	MaxLifetime     = time.Hour
)

type Option func(*Processor)

// WithLifetime sets the transaction lifetime, capped at MaxLifetime.
// Lifetimes shorter than one second select DefaultLifetime.
func WithLifetime(d time.Duration) Option {
	return func(p *Processor) {
		switch {
		case d < time.Second:
			d = DefaultLifetime
		case d > MaxLifetime:
			d = MaxLifetime
		}
		p.lifetime = d
	}
}

// WithLastIrreversible references the last irreversible block instead of
// the head block.
func WithLastIrreversible() Option {
	return func(p *Processor) { p.useLastIrreversible = true }
}

func WithSerializer(s abi.Serializer) Option {
	return func(p *Processor) { p.serializer = s }
}

// WithClock replaces time.Now when computing the expiration.
func WithClock(now func() time.Time) Option {
	return func(p *Processor) { p.now = now }
}

// Processor is not safe for concurrent use.
type Processor struct {
	chain  ChainClient
	abis   abi.Provider
	signer Signer

	lifetime            time.Duration
	useLastIrreversible bool
	serializer          abi.Serializer
	now                 func() time.Time

	attempt uuid.UUID
	log     _log.Log

	state   State
	chainID fio.Bytes32
	trx     *Transaction
	packed  *fio.PackedTransaction
}

func New(chain ChainClient, abis abi.Provider, signer Signer,
	opts ...Option) *Processor {
	p := &Processor{
		chain:      chain,
		abis:       abis,
		signer:     signer,
		lifetime:   DefaultLifetime,
		serializer: abi.ContractSerializer{},
		now:        time.Now,
		attempt:    uuid.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = _log.New("trx").With("attempt", p.attempt)
	return p
}

func (p *Processor) State() State { return p.state }

// Attempt identifies this Processor in logs.
func (p *Processor) Attempt() uuid.UUID { return p.attempt }

// Transaction returns the prepared transaction, or nil before Prepare.
func (p *Processor) Transaction() *Transaction { return p.trx }

// PackedTransaction returns the packed transaction, or nil before Prepare.
// Its signatures are set by Sign.
func (p *Processor) PackedTransaction() *fio.PackedTransaction { return p.packed }

// ChainID returns the chain id reported by the node during Prepare.
func (p *Processor) ChainID() fio.Bytes32 { return p.chainID }

func (p *Processor) fail(err error) error {
	p.log.WithError(err).Debugf("%v failed", p.state)
	p.state = Failed
	return err
}

func (p *Processor) expect(state State) error {
	if p.state != state {
		return fmt.Errorf("processor is %v, expected %v", p.state, state)
	}
	return nil
}

// Prepare serializes copies of actions, which must all share the same
// authorization, into a transaction referencing a recent block. actions are
// not modified.
func (p *Processor) Prepare(ctx context.Context, actions []*action.Action) error {
	if err := p.expect(Created); err != nil {
		return p.fail(&PrepareError{err})
	}
	if len(actions) == 0 {
		return p.fail(&PrepareError{fmt.Errorf("no actions")})
	}

	info, err := p.chain.GetInfo(ctx)
	if err != nil {
		return p.fail(&PrepareError{err})
	}
	refBlockNum := info.HeadBlockNum
	if p.useLastIrreversible {
		refBlockNum = info.LastIrreversibleBlockNum
	}
	block, err := p.chain.GetBlock(ctx, refBlockNum)
	if err != nil {
		return p.fail(&PrepareError{err})
	}

	serialized := make([]*action.Action, len(actions))
	for i, act := range actions {
		contract, err := p.abis.GetABI(ctx, act.Account)
		if err != nil {
			return p.fail(&PrepareError{err})
		}
		if serialized[i], err = act.Serialized(p.serializer, contract); err != nil {
			return p.fail(&PrepareError{err})
		}
	}

	trx := &Transaction{
		TransactionHeader: TransactionHeader{
			Expiration:     fio.NewTimePointSec(p.now().Add(p.lifetime)),
			RefBlockNum:    block.RefBlockNum(),
			RefBlockPrefix: block.RefBlockPrefix(),
		},
		Actions: serialized,
	}
	packed, err := trx.Pack(p.serializer)
	if err != nil {
		return p.fail(&PrepareError{err})
	}

	p.chainID = info.ChainID
	p.trx = trx
	p.packed = packed
	p.state = Prepared
	p.log.WithField("ref_block_num", refBlockNum).
		Debugf("prepared %v actions, expires %v", len(actions), trx.Expiration)
	return nil
}

// Sign signs the prepared transaction with each key of the Signer that the
// node reports as required by the transaction's authorizations.
func (p *Processor) Sign(ctx context.Context) error {
	if err := p.expect(Prepared); err != nil {
		return p.fail(&SignError{err})
	}
	if err := ctx.Err(); err != nil {
		return p.fail(&SignError{err})
	}
	available := p.signer.PublicKeys()
	if len(available) == 0 {
		return p.fail(&SignError{fmt.Errorf("no signing keys")})
	}
	required, err := p.chain.GetRequiredKeys(ctx, p.trx, available)
	if err != nil {
		return p.fail(&SignError{err})
	}
	want := make(map[fio.PublicKey]struct{}, len(required))
	for _, pub := range required {
		want[pub] = struct{}{}
	}

	digest := Digest(p.chainID, p.packed.PackedTrx)
	sigs := make([]fio.Signature, 0, len(want))
	for _, pub := range available {
		if _, ok := want[pub]; !ok {
			continue
		}
		delete(want, pub)
		sig, err := p.signer.SignDigest(pub, digest)
		if err != nil {
			return p.fail(&SignError{err})
		}
		sigs = append(sigs, sig)
	}
	if len(sigs) == 0 {
		return p.fail(&SignError{
			fmt.Errorf("no signing key satisfies the authorizations")})
	}
	p.packed.Signatures = sigs
	p.state = Signed
	p.log.Debugf("signed with %v of %v keys", len(sigs), len(available))
	return nil
}

// Broadcast pushes the signed transaction. It is not idempotent.
func (p *Processor) Broadcast(
	ctx context.Context) (*fio.PushTransactionResult, error) {
	if err := p.expect(Signed); err != nil {
		return nil, p.fail(&BroadcastError{err})
	}
	res, err := p.chain.PushTransaction(ctx, p.packed)
	if err != nil {
		return nil, p.fail(&BroadcastError{err})
	}
	if except := res.Processed.Except; len(except) > 0 && string(except) != "null" {
		return nil, p.fail(&BroadcastError{
			fmt.Errorf("transaction %v: %s", res.TransactionID, except)})
	}
	p.state = Broadcast
	p.log.WithField("trx_id", res.TransactionID).Debug("broadcast")
	return res, nil
}
