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

package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/posener/complete"

	"github.com/Factom-Asset-Tokens/fiod/fio"
)

// parseAPIFlags parses the flags needed to query the node from the command
// line being completed.
func parseAPIFlags() error {
	args := strings.Fields(os.Getenv("COMP_LINE"))[1:]
	if err := apiFlags.Parse(args); err != nil {
		return err
	}
	if err := keyFlags.Parse(args); err != nil {
		return err
	}
	FIOClient.Timeout = time.Second / 3
	return nil
}

func predictNames(addresses bool) complete.PredictFunc {
	return func(args complete.Args) []string {
		if err := parseAPIFlags(); err != nil {
			return nil
		}
		s, err := newSDK("")
		if err != nil {
			return nil
		}
		names, err := s.GetFIONames(context.Background(), "")
		if err != nil {
			return nil
		}
		completed := make(map[string]struct{}, len(args.Completed))
		for _, arg := range args.Completed {
			completed[arg] = struct{}{}
		}
		var predictions []string
		add := func(name string) {
			if _, ok := completed[name]; !ok {
				predictions = append(predictions, name)
			}
		}
		if addresses {
			for _, adr := range names.FIOAddresses {
				add(adr.FIOAddress)
			}
			return predictions
		}
		for _, domain := range names.FIODomains {
			add(domain.FIODomain)
		}
		return predictions
	}
}

// PredictFIOAddresses predicts the FIO addresses owned by the --key.
var PredictFIOAddresses = predictNames(true)

// PredictFIODomains predicts the FIO domains owned by the --key.
var PredictFIODomains = predictNames(false)

var PredictEndpoints = complete.PredictSet(fio.EndpointsWithFees...)

var PredictTokenCodes = complete.PredictSet("FIO", "BTC", "ETH", "BCH", "LTC",
	"XRP", "EOS", "USDT")
