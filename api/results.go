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

package api

import (
	"github.com/Factom-Asset-Tokens/fiod/fio"
)

const APIVersion = "1"

type ResultGetDaemonProperties struct {
	FiodVersion string        `json:"fiodversion"`
	APIVersion  string        `json:"apiversion"`
	FIONode     string        `json:"fionode"`
	ChainID     *fio.Bytes32  `json:"chainid,omitempty"`
	PublicKey   fio.PublicKey `json:"publickey"`
	Actor       fio.Name      `json:"actor"`
	TPID        string        `json:"tpid,omitempty"`
}

type ResultGetBalance struct {
	Balance uint64 `json:"balance"`
	// FIO is Balance formatted in whole FIO.
	FIO string `json:"fio"`
}

type ResultIsAvailable struct {
	IsRegistered bool `json:"isregistered"`
}
