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
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/posener/complete"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Factom-Asset-Tokens/fiod/fio"
	_log "github.com/Factom-Asset-Tokens/fiod/log"
	"github.com/Factom-Asset-Tokens/fiod/sdk"
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen once
// to the rootCmd.
func Execute() {
	if Complete() {
		return
	}
	if err := Run(context.Background(), os.Args[1:],
		os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Run executes the command line args, writing results to out and errors to
// errOut. Flags set by a previous Run are reset first.
func Run(ctx context.Context, args []string, out, errOut io.Writer) error {
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.ExecuteContext(ctx)
}

var (
	cfgFile   string
	FIOClient = fio.NewClient()
	Debug     bool
	keyWIF    string
	tpid      string
	lifetime  time.Duration

	// SDKOptions are applied after the options derived from flags.
	SDKOptions []sdk.Option

	log _log.Log
)

func init() {
	cobra.OnInitialize(initConfig, initClients)
}

// initClients applies the debug settings.
func initClients() {
	FIOClient.DebugRequest = Debug
	_log.Debug = Debug
	log = _log.New("cli")
}

var apiFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.StringVarP(&FIOClient.NodeServer, "node", "n", fio.NodeDefault,
		"scheme://host:port of the FIO node API")
	flags.StringVar(&FIOClient.RegistrationServer, "registration-server", "",
		"scheme://host:port of the registration server")
	flags.DurationVar(&FIOClient.Timeout, "timeout", 15*time.Second,
		"Timeout for all API requests (i.e. 10s, 1m)")
	flags.BoolVar(&Debug, "debug", false,
		"Log debug messages and print all API requests")
	return flags
}()

var keyFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.StringVarP(&keyWIF, "key", "k", "",
		"FIO private key (WIF) used to sign transactions")
	flags.StringVar(&tpid, "tpid", "",
		"Technology provider FIO address credited for transactions")
	flags.DurationVar(&lifetime, "lifetime", time.Hour,
		"Time until a broadcast transaction expires")
	return flags
}()

// rootCmd represents the base command when called without any subcommands
var rootCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fio-cli",
		Short: "FIO Protocol CLI",
		Long: `
fio-cli allows users to query the FIO blockchain and sign and broadcast FIO
transactions: register and renew FIO addresses and domains, transfer FIO
tokens and send, reject and record funds requests.

API Settings

fio-cli queries the API of a FIO node. Use --node to specify the node, if not
on ` + fio.NodeDefault + `.

Keys

Transactions are signed with the private key given by --key. The key can also
be set with the FIO_KEY environment variable or the "key" setting of the
config file, ~/.fio-cli.yaml by default. Use 'fio-cli key generate' to create
a new key.
`[1:],
		Args:         cobra.ExactArgs(0),
		SilenceUsage: true,
		PreRunE:      validateRunCompletionFlags,
		RunE:         runCompletion,
	}

	cmd.Flags().AddFlagSet(installCompletionFlags)
	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.fio-cli.yaml)")
	flags.AddFlagSet(apiFlags)
	flags.AddFlagSet(keyFlags)

	generateCmplFlags(cmd, rootCmplCmd.Flags)
	return cmd
}()

var rootCmplCmd = complete.Command{
	Flags: mergeFlags(apiCmplFlags),
	Sub:   complete.Commands{"help": complete.Command{Sub: complete.Commands{}}},
}
var apiCmplFlags = complete.Flags{
	"--help":   complete.PredictNothing,
	"--debug":  complete.PredictNothing,
	"--config": complete.PredictFiles("*.yaml"),
}

// initConfig reads in config file and ENV variables if set. Settings only
// apply to persistent flags that were not given on the command line.
func initConfig() {
	v := viper.New()
	if cfgFile != "" {
		// Use config file from the flag.
		v.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err == nil {
			// Search config in home directory with name ".fio-cli"
			// (without extension).
			v.AddConfigPath(home)
			v.SetConfigName(".fio-cli")
		}
	}

	v.SetEnvPrefix("FIO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := v.ReadInConfig(); err == nil {
		rootCmd.PrintErrln("Using config file:", v.ConfigFileUsed())
	}

	rootCmd.PersistentFlags().VisitAll(func(flg *flag.Flag) {
		if flg.Changed || flg.Name == "config" || !v.IsSet(flg.Name) {
			return
		}
		if err := flg.Value.Set(v.GetString(flg.Name)); err != nil {
			rootCmd.PrintErrf("invalid setting %q: %v\n", flg.Name, err)
		}
	})
}

// resetFlags restores every changed flag of cmd and its children to its
// default value.
func resetFlags(cmd *cobra.Command) {
	reset := func(flg *flag.Flag) {
		if !flg.Changed {
			return
		}
		flg.Value.Set(flg.DefValue)
		flg.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// newSDK returns an SDK for the --key, or for pub if no key is set. A key is
// required if pub is empty.
func newSDK(pub string) (*sdk.SDK, error) {
	var priv fio.PrivateKey
	var pubKey fio.PublicKey
	switch {
	case len(keyWIF) > 0:
		var err error
		if priv, err = fio.NewPrivateKeyFromWIF(keyWIF); err != nil {
			return nil, fmt.Errorf("--key: %w", err)
		}
	case len(pub) > 0:
		var err error
		if pubKey, err = fio.NewPublicKey(pub); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("--key is required")
	}
	opts := append([]sdk.Option{
		sdk.WithNetwork(FIOClient),
		sdk.WithTPID(tpid),
		sdk.WithLifetime(lifetime),
	}, SDKOptions...)
	return sdk.New(priv, pubKey, opts...)
}
