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

package abi_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/fio/abi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGetter struct {
	sync.Mutex
	calls map[fio.Name]int
	abis  map[fio.Name]string
}

func (g *fakeGetter) GetRawABI(_ context.Context,
	account fio.Name) (*fio.RawABI, error) {
	g.Lock()
	defer g.Unlock()
	g.calls[account]++
	b64, ok := g.abis[account]
	if !ok {
		return nil, fmt.Errorf("no abi for account %v", account)
	}
	return &fio.RawABI{AccountName: account.String(), ABI: b64}, nil
}

func TestCachingProvider(t *testing.T) {
	data, err := abi.EncodeABIDef(testABI)
	require.NoError(t, err)
	getter := &fakeGetter{
		calls: map[fio.Name]int{},
		abis: map[fio.Name]string{
			fio.ContractReqObt:  base64Std(data),
			fio.ContractAddress: "not base64!",
		},
	}
	p := abi.NewCachingProvider(getter)
	ctx := context.Background()

	t.Run("cached", func(t *testing.T) {
		assert := assert.New(t)
		a1, err := p.GetABI(ctx, fio.ContractReqObt)
		require.NoError(t, err)
		a2, err := p.GetABI(ctx, fio.ContractReqObt)
		require.NoError(t, err)
		assert.Same(a1, a2)
		assert.Equal(1, getter.calls[fio.ContractReqObt])
		typ, ok := a1.ActionType(fio.MustName("transfer"))
		assert.True(ok)
		assert.Equal("derived", typ)
	})

	t.Run("concurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := p.GetABI(ctx, fio.ContractReqObt)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, getter.calls[fio.ContractReqObt])
	})

	t.Run("fetch error", func(t *testing.T) {
		assert := assert.New(t)
		for i := 1; i <= 2; i++ {
			_, err := p.GetABI(ctx, fio.ContractToken)
			var perr *abi.ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(fio.ContractToken, perr.Account)
			assert.EqualError(err,
				"abi of fio.token: no abi for account fio.token")
			assert.Equal(i, getter.calls[fio.ContractToken])
		}
	})

	t.Run("decode error", func(t *testing.T) {
		_, err := p.GetABI(ctx, fio.ContractAddress)
		var perr *abi.ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, fio.ContractAddress, perr.Account)
	})
}

func TestCachingProviderNeverEvicts(t *testing.T) {
	data, err := abi.EncodeABIDef(testABI)
	require.NoError(t, err)
	getter := &fakeGetter{calls: map[fio.Name]int{}, abis: map[fio.Name]string{}}
	var accounts []fio.Name
	for i := 0; i < 100; i++ {
		account := fio.MustName(fmt.Sprintf("acct.%c%c", 'a'+i/26, 'a'+i%26))
		getter.abis[account] = base64Std(data)
		accounts = append(accounts, account)
	}
	p := abi.NewCachingProvider(getter)
	ctx := context.Background()

	for _, account := range append(accounts, accounts...) {
		_, err := p.GetABI(ctx, account)
		require.NoError(t, err)
	}
	for _, account := range accounts {
		assert.Equal(t, 1, getter.calls[account], account)
	}
}
