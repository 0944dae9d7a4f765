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

package trx_test

import (
	"context"
	"crypto/sha256"
	"fmt"
	"testing"
	"time"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/Factom-Asset-Tokens/fiod/fio/action"
	"github.com/Factom-Asset-Tokens/fiod/fio/trx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	aliceWIF = "5JbcPK6qTpYxMXtfpGXagYbo3KFE3qqxv2tLXLMPR8dTWWeYCp9"
	alicePub = "FIO7c8SVyAyu6cACCaUjmPFEUyW9p2owWHeqq2WSEZ18FFTgErE1K"
	bobWIF   = "5JAExdhmQw8F1siD7uzLrhmzfjW97hubw7ZNxjAiAu6p7Xq9wqG"
	chainID  = "cf057bbfb72640471fd910bcb67639c22df9f92470936cddc1ade0e2f2e7dc4f"
	headID   = "00011170aabbccdd0102030405060708090a0b0c0d0e0f101112131415161718"
	libID    = "00011166aabbccdd1112131405060708090a0b0c0d0e0f101112131415161718"
)

var reqobtABI = abi.MustParse(`{
	"version": "eosio::abi/1.1",
	"structs": [{
		"name": "rejectfndreq", "base": "",
		"fields": [
			{"name": "fio_request_id", "type": "string"},
			{"name": "max_fee", "type": "int64"},
			{"name": "actor", "type": "string"},
			{"name": "tpid", "type": "string"}
		]
	}],
	"actions": [{"name": "rejectfndreq", "type": "rejectfndreq", "ricardian_contract": ""}]
}`)

type fakeChain struct {
	info        fio.Info
	blocks      map[uint32]string
	pushErr     error
	requiredErr error
	except      string
	pushed      []*fio.PackedTransaction
	available   [][]fio.PublicKey
}

func newFakeChain() *fakeChain {
	c := &fakeChain{blocks: map[uint32]string{70000: headID, 69990: libID}}
	c.info.ChainID = *fio.NewBytes32FromString(chainID)
	c.info.HeadBlockNum = 70000
	c.info.LastIrreversibleBlockNum = 69990
	return c
}

func (c *fakeChain) GetInfo(context.Context) (*fio.Info, error) {
	info := c.info
	return &info, nil
}

func (c *fakeChain) GetBlock(_ context.Context, num uint32) (*fio.Block, error) {
	id, ok := c.blocks[num]
	if !ok {
		return nil, fmt.Errorf("unknown block %v", num)
	}
	return &fio.Block{BlockNum: num, ID: *fio.NewBytes32FromString(id)}, nil
}

// GetRequiredKeys returns the keys of available whose account authorizes
// an action of t.
func (c *fakeChain) GetRequiredKeys(_ context.Context, t interface{},
	available []fio.PublicKey) ([]fio.PublicKey, error) {
	c.available = append(c.available, available)
	if c.requiredErr != nil {
		return nil, c.requiredErr
	}
	actors := make(map[fio.Name]bool)
	for _, act := range t.(*trx.Transaction).Actions {
		for _, auth := range act.Authorization {
			actors[auth.Actor] = true
		}
	}
	var required []fio.PublicKey
	for _, pub := range available {
		if actors[pub.Actor()] {
			required = append(required, pub)
		}
	}
	return required, nil
}

func (c *fakeChain) PushTransaction(_ context.Context,
	packed *fio.PackedTransaction) (*fio.PushTransactionResult, error) {
	c.pushed = append(c.pushed, packed)
	if c.pushErr != nil {
		return nil, c.pushErr
	}
	var res fio.PushTransactionResult
	res.TransactionID = trx.ID(packed.PackedTrx)
	res.Processed.Receipt.Status = "executed"
	if len(c.except) > 0 {
		res.Processed.Except = []byte(c.except)
	}
	return &res, nil
}

type fakeProvider struct{}

func (fakeProvider) GetABI(_ context.Context, account fio.Name) (*abi.ABI, error) {
	if account != fio.ContractReqObt {
		return nil, &abi.ProviderError{Account: account,
			Err: fmt.Errorf("not found")}
	}
	return reqobtABI, nil
}

var now = time.Date(2019, 10, 14, 19, 42, 31, 500, time.UTC)

func newProcessor(t *testing.T, chain *fakeChain, opts ...trx.Option) *trx.Processor {
	key, err := fio.NewPrivateKeyFromWIF(aliceWIF)
	require.NoError(t, err)
	return newProcessorWithSigner(chain, trx.NewKeySigner(key, key), opts...)
}

func newProcessorWithSigner(chain *fakeChain, signer trx.Signer,
	opts ...trx.Option) *trx.Processor {
	opts = append([]trx.Option{trx.WithClock(func() time.Time { return now })}, opts...)
	return trx.New(chain, fakeProvider{}, signer, opts...)
}

func rejectAction(t *testing.T) *action.Action {
	pub, err := fio.NewPublicKey(alicePub)
	require.NoError(t, err)
	return action.New(action.RejectFundsRequest{
		FIORequestID: 7, MaxFee: 400000000, TPID: "rewards:wallet",
	}, pub.Actor())
}

func TestProcessor(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	chain := newFakeChain()
	p := newProcessor(t, chain)
	ctx := context.Background()
	assert.Equal(trx.Created, p.State())

	require.NoError(p.Prepare(ctx, []*action.Action{rejectAction(t)}))
	assert.Equal(trx.Prepared, p.State())
	header := p.Transaction().TransactionHeader
	assert.Equal(uint16(70000&0xffff), header.RefBlockNum)
	assert.Equal(uint32(0x04030201), header.RefBlockPrefix)
	assert.Equal(now.Add(time.Hour).Unix(), header.Expiration.Time().Unix())
	assert.True(header.Expiration.Time().After(now))
	assert.Equal(chainID, p.ChainID().String())

	packed := p.PackedTransaction()
	decoded, err := abi.DeserializeTransaction(packed.PackedTrx)
	require.NoError(err)
	acts := decoded["actions"].([]interface{})
	require.Len(acts, 1)
	act := acts[0].(map[string]interface{})
	assert.Equal("fio.reqobt", act["account"])
	assert.Equal("rejectfndreq", act["name"])
	data, err := abi.Deserialize(reqobtABI, "rejectfndreq", act["data"].(fio.Bytes))
	require.NoError(err)
	assert.Equal("7", data.(map[string]interface{})["fio_request_id"])
	assert.Equal("5keniyy2gu4v", data.(map[string]interface{})["actor"])

	require.NoError(p.Sign(ctx))
	assert.Equal(trx.Signed, p.State())
	require.Len(packed.Signatures, 1, "duplicate keys sign once")
	digest := trx.Digest(p.ChainID(), packed.PackedTrx)
	pub, err := packed.Signatures[0].PublicKey(digest[:])
	require.NoError(err)
	assert.Equal(alicePub, pub.String())

	res, err := p.Broadcast(ctx)
	require.NoError(err)
	assert.Equal(trx.Broadcast, p.State())
	assert.Equal(trx.ID(packed.PackedTrx), res.TransactionID)
	require.Len(chain.pushed, 1)
	assert.Same(packed, chain.pushed[0])

	// Every stage may only run once.
	_, err = p.Broadcast(ctx)
	var berr *trx.BroadcastError
	assert.ErrorAs(err, &berr)
	assert.Equal(trx.Failed, p.State())
	assert.Len(chain.pushed, 1)
}

func TestProcessorRequiredKeys(t *testing.T) {
	ctx := context.Background()
	alice, err := fio.NewPrivateKeyFromWIF(aliceWIF)
	require.NoError(t, err)
	bob, err := fio.NewPrivateKeyFromWIF(bobWIF)
	require.NoError(t, err)

	t.Run("extra keys are not used", func(t *testing.T) {
		assert := assert.New(t)
		require := require.New(t)
		chain := newFakeChain()
		p := newProcessorWithSigner(chain, trx.NewKeySigner(bob, alice))
		require.NoError(p.Prepare(ctx, []*action.Action{rejectAction(t)}))
		require.NoError(p.Sign(ctx))

		require.Len(chain.available, 1)
		assert.ElementsMatch([]fio.PublicKey{alice.PublicKey(), bob.PublicKey()},
			chain.available[0])
		packed := p.PackedTransaction()
		require.Len(packed.Signatures, 1)
		digest := trx.Digest(p.ChainID(), packed.PackedTrx)
		pub, err := packed.Signatures[0].PublicKey(digest[:])
		require.NoError(err)
		assert.Equal(alicePub, pub.String())
	})
	t.Run("no authorizing key", func(t *testing.T) {
		chain := newFakeChain()
		p := newProcessorWithSigner(chain, trx.NewKeySigner(bob))
		require.NoError(t, p.Prepare(ctx, []*action.Action{rejectAction(t)}))
		err := p.Sign(ctx)
		var serr *trx.SignError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, trx.Failed, p.State())
		assert.Empty(t, p.PackedTransaction().Signatures)
	})
	t.Run("node error", func(t *testing.T) {
		chain := newFakeChain()
		chain.requiredErr = &fio.APIError{StatusCode: 500, Message: "Internal Service Error"}
		p := newProcessorWithSigner(chain, trx.NewKeySigner(alice))
		require.NoError(t, p.Prepare(ctx, []*action.Action{rejectAction(t)}))
		err := p.Sign(ctx)
		var serr *trx.SignError
		require.ErrorAs(t, err, &serr)
		var apiErr *fio.APIError
		assert.ErrorAs(t, err, &apiErr)
	})
	t.Run("no keys", func(t *testing.T) {
		chain := newFakeChain()
		p := newProcessorWithSigner(chain, trx.NewKeySigner())
		require.NoError(t, p.Prepare(ctx, []*action.Action{rejectAction(t)}))
		assert.EqualError(t, p.Sign(ctx), "sign transaction: no signing keys")
		assert.Empty(t, chain.available)
	})
}

func TestPrepareLeavesActionsUnchanged(t *testing.T) {
	ctx := context.Background()
	first := rejectAction(t)
	payload := first.Data.(action.Payload)

	t.Run("failure", func(t *testing.T) {
		p := newProcessor(t, newFakeChain())
		second := action.New(action.RenewDomain{FIODomain: "brd"},
			fio.MustName("5keniyy2gu4v"))
		err := p.Prepare(ctx, []*action.Action{first, second})
		var perr *trx.PrepareError
		require.ErrorAs(t, err, &perr)
		assert.False(t, first.IsSerialized())
		assert.False(t, second.IsSerialized())
		assert.Equal(t, payload, first.Data)
		assert.Nil(t, p.Transaction())
		assert.Nil(t, p.PackedTransaction())
	})
	t.Run("success", func(t *testing.T) {
		p := newProcessor(t, newFakeChain())
		require.NoError(t, p.Prepare(ctx, []*action.Action{first}))
		assert.False(t, first.IsSerialized())
		require.Len(t, p.Transaction().Actions, 1)
		prepared := p.Transaction().Actions[0]
		assert.NotSame(t, first, prepared)
		assert.True(t, prepared.IsSerialized())
		assert.Equal(t, first.Authorization, prepared.Authorization)
	})
}

func TestDigest(t *testing.T) {
	id := fio.NewBytes32FromString(chainID)
	packed := []byte{1, 2, 3}
	buf := append(append(id[:], packed...), make([]byte, 32)...)
	expected := sha256.Sum256(buf)
	assert.Equal(t, expected, trx.Digest(*id, packed))
	assert.Equal(t, "039058c6f2c0cb492c533b0a4d14ef77cc0f78abccced5287d84a1a2011cfb81",
		trx.ID(packed).String())
}

func TestProcessorOutOfOrder(t *testing.T) {
	ctx := context.Background()
	t.Run("sign before prepare", func(t *testing.T) {
		p := newProcessor(t, newFakeChain())
		err := p.Sign(ctx)
		var serr *trx.SignError
		require.ErrorAs(t, err, &serr)
		assert.EqualError(t, err,
			"sign transaction: processor is created, expected prepared")
		assert.Equal(t, trx.Failed, p.State())

		err = p.Prepare(ctx, []*action.Action{rejectAction(t)})
		var perr *trx.PrepareError
		assert.ErrorAs(t, err, &perr)
		assert.Equal(t, trx.Failed, p.State())
	})
	t.Run("broadcast before sign", func(t *testing.T) {
		chain := newFakeChain()
		p := newProcessor(t, chain)
		require.NoError(t, p.Prepare(ctx, []*action.Action{rejectAction(t)}))
		_, err := p.Broadcast(ctx)
		var berr *trx.BroadcastError
		require.ErrorAs(t, err, &berr)
		assert.Equal(t, trx.Failed, p.State())
		assert.Empty(t, chain.pushed)
	})
	t.Run("re-prepare", func(t *testing.T) {
		p := newProcessor(t, newFakeChain())
		require.NoError(t, p.Prepare(ctx, []*action.Action{rejectAction(t)}))
		err := p.Prepare(ctx, []*action.Action{rejectAction(t)})
		var perr *trx.PrepareError
		require.ErrorAs(t, err, &perr)
		assert.EqualError(t, err,
			"prepare transaction: processor is prepared, expected created")
		assert.Equal(t, trx.Failed, p.State())
	})
}

func TestProcessorErrors(t *testing.T) {
	ctx := context.Background()
	t.Run("no actions", func(t *testing.T) {
		p := newProcessor(t, newFakeChain())
		assert.EqualError(t, p.Prepare(ctx, nil),
			"prepare transaction: no actions")
	})
	t.Run("abi provider", func(t *testing.T) {
		p := newProcessor(t, newFakeChain())
		act := action.New(action.RenewDomain{FIODomain: "brd"},
			fio.MustName("5keniyy2gu4v"))
		err := p.Prepare(ctx, []*action.Action{act})
		var perr *trx.PrepareError
		require.ErrorAs(t, err, &perr)
		var aerr *abi.ProviderError
		assert.ErrorAs(t, err, &aerr)
		assert.Equal(t, trx.Failed, p.State())
	})
	t.Run("unknown block", func(t *testing.T) {
		chain := newFakeChain()
		delete(chain.blocks, 70000)
		p := newProcessor(t, chain)
		err := p.Prepare(ctx, []*action.Action{rejectAction(t)})
		assert.EqualError(t, err, "prepare transaction: unknown block 70000")
	})
	t.Run("node rejects", func(t *testing.T) {
		chain := newFakeChain()
		chain.pushErr = &fio.APIError{StatusCode: 500, Message: "Internal Service Error"}
		p := newProcessor(t, chain)
		require.NoError(t, p.Prepare(ctx, []*action.Action{rejectAction(t)}))
		require.NoError(t, p.Sign(ctx))
		_, err := p.Broadcast(ctx)
		var berr *trx.BroadcastError
		require.ErrorAs(t, err, &berr)
		var apiErr *fio.APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, trx.Failed, p.State())
	})
	t.Run("exception", func(t *testing.T) {
		chain := newFakeChain()
		chain.except = `{"code":3080004}`
		p := newProcessor(t, chain)
		require.NoError(t, p.Prepare(ctx, []*action.Action{rejectAction(t)}))
		require.NoError(t, p.Sign(ctx))
		_, err := p.Broadcast(ctx)
		var berr *trx.BroadcastError
		assert.ErrorAs(t, err, &berr)
	})
}

func TestProcessorOptions(t *testing.T) {
	ctx := context.Background()
	chain := newFakeChain()
	p := newProcessor(t, chain, trx.WithLastIrreversible(),
		trx.WithLifetime(10*time.Minute))
	require.NoError(t, p.Prepare(ctx, []*action.Action{rejectAction(t)}))
	header := p.Transaction().TransactionHeader
	assert.Equal(t, uint16(69990&0xffff), header.RefBlockNum)
	assert.Equal(t, uint32(0x14131211), header.RefBlockPrefix)
	assert.Equal(t, now.Add(10*time.Minute).Unix(),
		header.Expiration.Time().Unix())

	p = newProcessor(t, chain, trx.WithLifetime(24*time.Hour))
	require.NoError(t, p.Prepare(ctx, []*action.Action{rejectAction(t)}))
	assert.Equal(t, now.Add(trx.MaxLifetime).Unix(),
		p.Transaction().Expiration.Time().Unix())
}

func TestKeySigner(t *testing.T) {
	key, err := fio.NewPrivateKeyFromWIF(aliceWIF)
	require.NoError(t, err)
	s := trx.NewKeySigner(key)
	assert.Equal(t, []fio.PublicKey{key.PublicKey()}, s.PublicKeys())

	other, err := fio.NewPrivateKey()
	require.NoError(t, err)
	_, err = s.SignDigest(other.PublicKey(), [32]byte{})
	assert.Error(t, err)
}
