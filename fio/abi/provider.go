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

package abi

import (
	"context"

	cache "github.com/Code-Hex/go-generics-cache"

	"github.com/Factom-Asset-Tokens/fiod/fio"
)

// Provider returns the ABI of a contract account.
type Provider interface {
	GetABI(ctx context.Context, account fio.Name) (*ABI, error)
}

// ABIGetter fetches the raw binary ABI of an account. *fio.Client is an
// ABIGetter.
type ABIGetter interface {
	GetRawABI(ctx context.Context, account fio.Name) (*fio.RawABI, error)
}

// CachingProvider fetches ABIs from an ABIGetter and caches them by account
// for its lifetime. The cache is unbounded and entries are never evicted or
// invalidated, so a contract upgrade requires a new CachingProvider. It is
// safe for concurrent use.
type CachingProvider struct {
	getter ABIGetter
	cache  *cache.Cache[fio.Name, *ABI]
}

var _ Provider = (*CachingProvider)(nil)

// NewCachingProvider returns a CachingProvider backed by getter.
func NewCachingProvider(getter ABIGetter) *CachingProvider {
	return &CachingProvider{
		getter: getter,
		cache:  cache.New[fio.Name, *ABI](),
	}
}

// GetABI returns the cached ABI of account, fetching and decoding it on the
// first request. Failures are not cached.
func (p *CachingProvider) GetABI(ctx context.Context,
	account fio.Name) (*ABI, error) {
	if a, ok := p.cache.Get(account); ok {
		return a, nil
	}
	raw, err := p.getter.GetRawABI(ctx, account)
	if err != nil {
		return nil, &ProviderError{Account: account, Err: err}
	}
	a, err := DecodeABIDef(raw.ABI)
	if err != nil {
		return nil, &ProviderError{Account: account, Err: err}
	}
	a.index()
	p.cache.Set(account, a)
	return a, nil
}
