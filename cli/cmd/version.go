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
	"fmt"

	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/Factom-Asset-Tokens/fiod/api"
)

var Revision string

var versionCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the versions of fio-cli, the FIO node and fiod",
		Long: `
Print the version of fio-cli and of the FIO node given by --node.

If --fiod is set, the version and signing key of that fiod are also printed.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: version,
	}
	cmd.Flags().StringVar(&FiodClient.FiodServer, "fiod", "",
		"scheme://host:port of a fiod to query")
	rootCmd.AddCommand(cmd)
	cmplCmd := complete.Command{Flags: mergeFlags(apiCmplFlags)}
	generateCmplFlags(cmd, cmplCmd.Flags)
	rootCmplCmd.Sub["version"] = cmplCmd
	rootCmplCmd.Sub["help"].Sub["version"] = complete.Command{}
	return cmd
}()

// FiodClient queries the fiod given by --fiod.
var FiodClient = api.NewClient()

func version(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	printField(w, "fio-cli", Revision)

	info, err := FIOClient.GetInfo(cmd.Context())
	if err != nil {
		return fmt.Errorf("%v: %w", FIOClient.NodeServer, err)
	}
	printField(w, "FIO node", info.ServerVersion)
	printField(w, "Chain ID", info.ChainID)

	if len(FiodClient.FiodServer) == 0 {
		return nil
	}
	FiodClient.DebugRequest = Debug
	FiodClient.Timeout = FIOClient.Timeout
	properties, err := FiodClient.GetDaemonProperties(cmd.Context())
	if err != nil {
		return fmt.Errorf("%v: %w", FiodClient.FiodServer, err)
	}
	printField(w, "fiod", properties.FiodVersion)
	printField(w, "API", properties.APIVersion)
	printField(w, "Public Key", properties.PublicKey)
	printField(w, "Actor", properties.Actor)
	return nil
}
