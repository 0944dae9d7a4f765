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
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printField(w io.Writer, name string, value interface{}) {
	fmt.Fprintf(w, "%-16v%v\n", name+":", value)
}

func printResponse(w io.Writer, res *sdk.Response) {
	printField(w, "Transaction ID", color.HiCyanString(res.TransactionID.String()))
	printField(w, "Status", color.GreenString(res.Status))
	printField(w, "Fee Collected", fio.FormatSUF(res.FeeCollected)+" FIO")
	if res.FIORequestID > 0 {
		printField(w, "FIO Request ID", res.FIORequestID)
	}
	if len(res.Expiration) > 0 {
		printField(w, "Expiration", res.Expiration)
	}
}
