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

	"github.com/fatih/color"
	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

var getCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Query the FIO blockchain",
		Long: `
Query balances, names, public addresses, fees and funds requests.

Queries about a public key use the public key of --key unless one is given.
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["get"] = getCmplCmd
	rootCmplCmd.Sub["help"].Sub["get"] = complete.Command{Sub: complete.Commands{}}
	return cmd
}()

var getCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{},
}

// newGetCmd adds a get sub command.
func newGetCmd(cmd *cobra.Command, args complete.Predictor) *cobra.Command {
	cmd.DisableFlagsInUseLine = true
	getCmd.AddCommand(cmd)
	cmplCmd := complete.Command{Flags: mergeFlags(apiCmplFlags), Args: args}
	generateCmplFlags(cmd, cmplCmd.Flags)
	getCmplCmd.Sub[cmd.Name()] = cmplCmd
	rootCmplCmd.Sub["help"].Sub["get"].Sub[cmd.Name()] = complete.Command{}
	return cmd
}

var getBalanceCmd = newGetCmd(&cobra.Command{
	Use: `
balance [PUBLIC_KEY]`[1:],
	Short: "Get the FIO balance of a public key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pub := optionalArg(args)
		s, err := newSDK(pub)
		if err != nil {
			return err
		}
		balance, err := s.GetFIOBalance(cmd.Context(), pub)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), fio.FormatSUF(balance.Balance), "FIO")
		return nil
	},
}, complete.PredictNothing)

var getNamesCmd = newGetCmd(&cobra.Command{
	Use: `
names [PUBLIC_KEY]`[1:],
	Short: "List the FIO addresses and domains owned by a public key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pub := optionalArg(args)
		s, err := newSDK(pub)
		if err != nil {
			return err
		}
		names, err := s.GetFIONames(cmd.Context(), pub)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, domain := range names.FIODomains {
			visibility := "private"
			if domain.IsPublic != 0 {
				visibility = "public"
			}
			fmt.Fprintf(w, "%v\t%v\texpires %v\n", color.HiCyanString(domain.FIODomain),
				visibility, domain.Expiration)
		}
		for _, adr := range names.FIOAddresses {
			fmt.Fprintf(w, "%v\texpires %v\n", color.HiCyanString(adr.FIOAddress),
				adr.Expiration)
		}
		return nil
	},
}, complete.PredictNothing)

var getAddressCmd = newGetCmd(&cobra.Command{
	Use: `
address FIO_ADDRESS [TOKEN_CODE]`[1:],
	Short: "Get the public address a FIO address maps to a token",
	Long: `
Get the public address that FIO_ADDRESS maps to TOKEN_CODE. The FIO token code
is used if none is given, which returns the FIO public key of the owner.
`[1:],
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newQuerySDK()
		if err != nil {
			return err
		}
		tokenCode := sdk.TokenCodeFIO
		if len(args) > 1 {
			tokenCode = args[1]
		}
		addr, err := s.GetPublicAddress(cmd.Context(), args[0], tokenCode)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), addr.PublicAddress)
		return nil
	},
}, PredictTokenCodes)

var getFeeCmd = newGetCmd(&cobra.Command{
	Use: `
fee ENDPOINT [FIO_ADDRESS]`[1:],
	Short: "Get the fee of a transaction endpoint",
	Long: `
Get the fee charged for ENDPOINT. Bundled endpoints need the FIO_ADDRESS that
pays to account for its remaining free transactions.
`[1:],
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newQuerySDK()
		if err != nil {
			return err
		}
		fee, err := s.GetFee(cmd.Context(), args[0], optionalArg(args[1:]))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), fio.FormatSUF(fee.Fee), "FIO")
		return nil
	},
}, PredictEndpoints)

var getAvailableCmd = newGetCmd(&cobra.Command{
	Use: `
available FIO_NAME`[1:],
	Aliases: []string{"avail"},
	Short:   "Check whether a FIO address or domain is registered",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newQuerySDK()
		if err != nil {
			return err
		}
		avail, err := s.IsAvailable(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if avail.IsRegistered != 0 {
			fmt.Fprintln(cmd.OutOrStdout(), args[0], color.YellowString("registered"))
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), args[0], color.GreenString("available"))
		return nil
	},
}, complete.PredictAnything)

var getPendingCmd = newRequestsCmd("pending",
	"List funds requests awaiting payment by --key",
	func(cmd *cobra.Command, s *sdk.SDK, limit, offset *int) (*sdk.Requests, error) {
		return s.GetPendingFIORequests(cmd.Context(), limit, offset)
	})

var getSentCmd = newRequestsCmd("sent",
	"List funds requests sent by --key",
	func(cmd *cobra.Command, s *sdk.SDK, limit, offset *int) (*sdk.Requests, error) {
		return s.GetSentFIORequests(cmd.Context(), limit, offset)
	})

func newRequestsCmd(use, short string, get func(*cobra.Command, *sdk.SDK,
	*int, *int) (*sdk.Requests, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long: short + `.

The content of each request is decrypted. Requests that cannot be decrypted
are listed with a null content.
`,
		Args: cobra.ExactArgs(0),
	}
	flags := cmd.Flags()
	flags.Int("limit", 0, "Maximum number of requests to list, 0 for no limit")
	flags.Int("offset", 0, "Number of requests to skip")
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		var limit, offset *int
		if flags.Changed("limit") {
			l, _ := flags.GetInt("limit")
			limit = &l
		}
		if flags.Changed("offset") {
			o, _ := flags.GetInt("offset")
			offset = &o
		}
		s, err := newSDK("")
		if err != nil {
			return err
		}
		requests, err := get(cmd, s, limit, offset)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), requests)
	}
	return newGetCmd(cmd, complete.PredictNothing)
}

// newQuerySDK returns an SDK for queries that do not depend on the user. An
// ephemeral key is used if no --key is set.
func newQuerySDK() (*sdk.SDK, error) {
	if len(keyWIF) > 0 {
		return newSDK("")
	}
	key, err := fio.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return newSDK(key.PublicKey().String())
}

func optionalArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
