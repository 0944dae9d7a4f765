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
	"strconv"

	"github.com/posener/complete"
	"github.com/spf13/cobra"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

type txFunc func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error)

// newTxCmd adds a transaction command to parent. Its completion is added to
// cmplSub and helpSub.
func newTxCmd(parent *cobra.Command, cmplSub, helpSub complete.Commands,
	cmd *cobra.Command, args complete.Predictor, run txFunc) *cobra.Command {
	cmd.DisableFlagsInUseLine = true
	cmd.Flags().String("max-fee", "",
		"Maximum fee in FIO (i.e. 2.5), the current fee if not set")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s, err := newSDK("")
		if err != nil {
			return err
		}
		res, err := run(cmd, s, args)
		if err != nil {
			return err
		}
		if res != nil {
			printResponse(cmd.OutOrStdout(), res)
		}
		return nil
	}
	parent.AddCommand(cmd)
	cmplCmd := complete.Command{Flags: mergeFlags(apiCmplFlags), Args: args}
	generateCmplFlags(cmd, cmplCmd.Flags)
	cmplSub[cmd.Name()] = cmplCmd
	helpSub[cmd.Name()] = complete.Command{}
	return cmd
}

// maxFee returns --max-fee, or the current fee of endpoint for fioAddress.
func maxFee(cmd *cobra.Command, s *sdk.SDK, endpoint, fioAddress string) (uint64, error) {
	flags := cmd.Flags()
	if flags.Changed("max-fee") {
		amount, _ := flags.GetString("max-fee")
		fee, err := fio.ParseFIO(amount)
		if err != nil {
			return 0, fmt.Errorf("--max-fee: %w", err)
		}
		return fee, nil
	}
	fee, err := s.GetFee(cmd.Context(), endpoint, fioAddress)
	if err != nil {
		return 0, err
	}
	log.Debugf("--max-fee: using the current %v fee: %v FIO",
		endpoint, fio.FormatSUF(fee.Fee))
	return fee.Fee, nil
}

var registerCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a FIO address or domain",
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["register"] = registerCmplCmd
	rootCmplCmd.Sub["help"].Sub["register"] = complete.Command{Sub: complete.Commands{}}
	return cmd
}()

var registerCmplCmd = complete.Command{Sub: complete.Commands{}}

var registerAddressCmd = func() *cobra.Command {
	cmd := newTxCmd(registerCmd, registerCmplCmd.Sub,
		rootCmplCmd.Sub["help"].Sub["register"].Sub, &cobra.Command{
			Use: `
address FIO_ADDRESS`[1:],
			Short: "Register a FIO address",
			Long: `
Register FIO_ADDRESS to the public key of --key, or to --owner.

With --on-behalf, the registration server set by --registration-server pays
for the registration instead and no transaction is signed.
`[1:],
			Args: cobra.ExactArgs(1),
		}, complete.PredictAnything,
		func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
			flags := cmd.Flags()
			owner, _ := flags.GetString("owner")
			if onBehalf, _ := flags.GetBool("on-behalf"); onBehalf {
				reg, err := s.RegisterFIONameOnBehalfOfUser(cmd.Context(),
					args[0], owner)
				if err != nil {
					return nil, err
				}
				return nil, printJSON(cmd.OutOrStdout(), reg)
			}
			fee, err := maxFee(cmd, s, fio.EndpointRegisterFIOAddress, "")
			if err != nil {
				return nil, err
			}
			return s.RegisterFIOAddress(cmd.Context(), args[0], owner, fee, "")
		})
	cmd.Flags().String("owner", "", "FIO public key of the owner, if not --key")
	cmd.Flags().Bool("on-behalf", false,
		"Ask the registration server to register the address")
	generateCmplFlags(cmd, registerCmplCmd.Sub["address"].Flags)
	return cmd
}()

var registerDomainCmd = func() *cobra.Command {
	cmd := newTxCmd(registerCmd, registerCmplCmd.Sub,
		rootCmplCmd.Sub["help"].Sub["register"].Sub, &cobra.Command{
			Use: `
domain FIO_DOMAIN`[1:],
			Short: "Register a FIO domain",
			Long: `
Register FIO_DOMAIN to the public key of --key, or to --owner.
`[1:],
			Args: cobra.ExactArgs(1),
		}, complete.PredictAnything,
		func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
			owner, _ := cmd.Flags().GetString("owner")
			fee, err := maxFee(cmd, s, fio.EndpointRegisterFIODomain, "")
			if err != nil {
				return nil, err
			}
			return s.RegisterFIODomain(cmd.Context(), args[0], owner, fee, "")
		})
	cmd.Flags().String("owner", "", "FIO public key of the owner, if not --key")
	generateCmplFlags(cmd, registerCmplCmd.Sub["domain"].Flags)
	return cmd
}()

var renewCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Renew a FIO address or domain",
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["renew"] = renewCmplCmd
	rootCmplCmd.Sub["help"].Sub["renew"] = complete.Command{Sub: complete.Commands{}}
	return cmd
}()

var renewCmplCmd = complete.Command{Sub: complete.Commands{}}

var renewAddressCmd = newTxCmd(renewCmd, renewCmplCmd.Sub,
	rootCmplCmd.Sub["help"].Sub["renew"].Sub, &cobra.Command{
		Use: `
address FIO_ADDRESS`[1:],
		Short: "Renew a FIO address for another year",
		Args:  cobra.ExactArgs(1),
	}, PredictFIOAddresses,
	func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
		fee, err := maxFee(cmd, s, fio.EndpointRenewFIOAddress, "")
		if err != nil {
			return nil, err
		}
		return s.RenewFIOAddress(cmd.Context(), args[0], fee, "")
	})

var renewDomainCmd = newTxCmd(renewCmd, renewCmplCmd.Sub,
	rootCmplCmd.Sub["help"].Sub["renew"].Sub, &cobra.Command{
		Use: `
domain FIO_DOMAIN`[1:],
		Short: "Renew a FIO domain for another year",
		Args:  cobra.ExactArgs(1),
	}, PredictFIODomains,
	func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
		fee, err := maxFee(cmd, s, fio.EndpointRenewFIODomain, "")
		if err != nil {
			return nil, err
		}
		return s.RenewFIODomain(cmd.Context(), args[0], fee, "")
	})

var transferCmd = newTxCmd(rootCmd, rootCmplCmd.Sub, rootCmplCmd.Sub["help"].Sub,
	&cobra.Command{
		Use: `
transfer PUBLIC_KEY AMOUNT`[1:],
		Aliases: []string{"send"},
		Short:   "Transfer FIO tokens to a public key",
		Long: `
Transfer AMOUNT FIO, with up to 9 decimal places, to the FIO PUBLIC_KEY.
`[1:],
		Args: cobra.ExactArgs(2),
	}, complete.PredictAnything,
	func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
		amount, err := fio.ParseFIO(args[1])
		if err != nil {
			return nil, err
		}
		fee, err := maxFee(cmd, s, fio.EndpointTransferTokensPub, "")
		if err != nil {
			return nil, err
		}
		return s.TransferTokens(cmd.Context(), args[0], amount, fee, "")
	})

var addAddressCmd = newTxCmd(rootCmd, rootCmplCmd.Sub, rootCmplCmd.Sub["help"].Sub,
	&cobra.Command{
		Use: `
add-address FIO_ADDRESS TOKEN_CODE PUBLIC_ADDRESS`[1:],
		Short: "Map a FIO address to a public address on another blockchain",
		Args:  cobra.ExactArgs(3),
	}, PredictFIOAddresses,
	func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
		fee, err := maxFee(cmd, s, fio.EndpointAddPublicAddress, args[0])
		if err != nil {
			return nil, err
		}
		return s.AddPublicAddress(cmd.Context(), args[0], args[1], args[2], fee, "")
	})

var domainVisibilityCmd = newTxCmd(rootCmd, rootCmplCmd.Sub, rootCmplCmd.Sub["help"].Sub,
	&cobra.Command{
		Use: `
domain-visibility FIO_DOMAIN public|private`[1:],
		Short: "Make a FIO domain public or private",
		Long: `
Anyone may register FIO addresses on a public FIO_DOMAIN. Only the owner of a
private FIO_DOMAIN may.
`[1:],
		Args: cobra.ExactArgs(2),
	}, PredictFIODomains,
	func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
		var isPublic bool
		switch args[1] {
		case "public":
			isPublic = true
		case "private":
		default:
			return nil, fmt.Errorf("invalid visibility: %q", args[1])
		}
		fee, err := maxFee(cmd, s, fio.EndpointSetDomainVisibility, "")
		if err != nil {
			return nil, err
		}
		return s.SetFIODomainVisibility(cmd.Context(), args[0], isPublic, fee, "")
	})

var requestCmd = func() *cobra.Command {
	cmd := newTxCmd(rootCmd, rootCmplCmd.Sub, rootCmplCmd.Sub["help"].Sub,
		&cobra.Command{
			Use: `
request PAYER_FIO_ADDRESS PAYEE_FIO_ADDRESS AMOUNT TOKEN_CODE`[1:],
			Short: "Request funds from a FIO address",
			Long: `
Request AMOUNT of TOKEN_CODE from PAYER_FIO_ADDRESS to be paid to the
--payee-address mapped to PAYEE_FIO_ADDRESS, which must be owned by --key.

The content of the request is encrypted so that only the payer and the payee
can read it.
`[1:],
			Args: cobra.ExactArgs(4),
		}, complete.PredictAnything,
		func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
			flags := cmd.Flags()
			content := sdk.FundsRequestContent{
				Amount:    args[2],
				TokenCode: args[3],
			}
			content.PayeePublicAddress, _ = flags.GetString("payee-address")
			content.Memo, _ = flags.GetString("memo")
			content.Hash, _ = flags.GetString("hash")
			content.OfflineURL, _ = flags.GetString("offline-url")
			if len(content.PayeePublicAddress) == 0 {
				if args[3] != sdk.TokenCodeFIO {
					return nil, fmt.Errorf(
						"--payee-address is required for %v", args[3])
				}
				content.PayeePublicAddress = s.PublicKey().String()
			}
			fee, err := maxFee(cmd, s, fio.EndpointNewFundsRequest, args[1])
			if err != nil {
				return nil, err
			}
			return s.RequestNewFunds(cmd.Context(), args[0], args[1], content, fee, "")
		})
	addContentFlags(cmd)
	cmd.Flags().String("payee-address", "",
		"Public address to be paid, the public key of --key for FIO")
	generateCmplFlags(cmd, rootCmplCmd.Sub["request"].Flags)
	return cmd
}()

var rejectCmd = newTxCmd(rootCmd, rootCmplCmd.Sub, rootCmplCmd.Sub["help"].Sub,
	&cobra.Command{
		Use: `
reject FIO_REQUEST_ID`[1:],
		Short: "Reject a pending funds request",
		Args:  cobra.ExactArgs(1),
	}, complete.PredictAnything,
	func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
		id, err := parseRequestID(args[0])
		if err != nil {
			return nil, err
		}
		fee, err := maxFee(cmd, s, fio.EndpointRejectFundsRequest, "")
		if err != nil {
			return nil, err
		}
		return s.RejectFundsRequest(cmd.Context(), id, fee, "")
	})

var recordCmd = func() *cobra.Command {
	cmd := newTxCmd(rootCmd, rootCmplCmd.Sub, rootCmplCmd.Sub["help"].Sub,
		&cobra.Command{
			Use: `
record FIO_REQUEST_ID PAYER_FIO_ADDRESS PAYEE_FIO_ADDRESS`[1:],
			Short: "Record a payment made on another blockchain",
			Long: `
Record that --amount of --token was sent from --payer-address to
--payee-address in the transaction --obt-id, in answer to FIO_REQUEST_ID.

The content of the record is encrypted so that only the payer and the payee
can read it.
`[1:],
			Args: cobra.ExactArgs(3),
		}, complete.PredictAnything,
		func(cmd *cobra.Command, s *sdk.SDK, args []string) (*sdk.Response, error) {
			id, err := parseRequestID(args[0])
			if err != nil {
				return nil, err
			}
			flags := cmd.Flags()
			var content sdk.RecordSendContent
			content.PayerPublicAddress, _ = flags.GetString("payer-address")
			content.PayeePublicAddress, _ = flags.GetString("payee-address")
			content.Amount, _ = flags.GetString("amount")
			content.TokenCode, _ = flags.GetString("token")
			content.OBTID, _ = flags.GetString("obt-id")
			content.Status, _ = flags.GetString("status")
			content.Memo, _ = flags.GetString("memo")
			content.Hash, _ = flags.GetString("hash")
			content.OfflineURL, _ = flags.GetString("offline-url")
			fee, err := maxFee(cmd, s, fio.EndpointRecordSend, args[1])
			if err != nil {
				return nil, err
			}
			return s.RecordSend(cmd.Context(), id, args[1], args[2], content, fee, "")
		})
	flags := cmd.Flags()
	addContentFlags(cmd)
	flags.String("payer-address", "", "Public address that sent the funds")
	flags.String("payee-address", "", "Public address that received the funds")
	flags.String("amount", "", "Amount sent")
	flags.String("token", "", "Token code of the amount sent")
	flags.String("obt-id", "", "Transaction ID on the other blockchain")
	flags.String("status", sdk.StatusSentToBlockchain, "Status of the payment")
	generateCmplFlags(cmd, rootCmplCmd.Sub["record"].Flags)
	return cmd
}()

func addContentFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("memo", "", "Memo for the counterparty")
	flags.String("hash", "", "Hash of the off-chain data")
	flags.String("offline-url", "", "URL of the off-chain data")
}

func parseRequestID(id string) (uint64, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid FIO_REQUEST_ID: %q", id)
	}
	return n, nil
}
