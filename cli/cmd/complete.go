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
	"github.com/posener/complete/cmd/install"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

var installCompletionFlags = func() *flag.FlagSet {
	flags := flag.NewFlagSet("", flag.ContinueOnError)
	flags.Bool("install", false, "Install shell completion for fio-cli")
	flags.Bool("uninstall", false, "Uninstall shell completion for fio-cli")
	return flags
}()

// Complete runs the CLI completion.
func Complete() bool {
	comp := complete.New("fio-cli", rootCmplCmd)
	return comp.Complete()
}

// completionCmd installs or uninstalls shell completion.
var completionCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use:                   "completion install|uninstall",
		Short:                 "Manage shell completion for fio-cli",
		Long: `
Install or uninstall shell completion for bash, zsh and fish.
`[1:],
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"install", "uninstall"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return manageCompletion(cmd, args[0] == "install")
		},
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["completion"] = complete.Command{
		Args: complete.PredictSet("install", "uninstall")}
	rootCmplCmd.Sub["help"].Sub["completion"] = complete.Command{}
	return cmd
}()

func manageCompletion(cmd *cobra.Command, inst bool) error {
	if inst {
		if err := install.Install("fio-cli"); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Shell completion installed for fio-cli.")
		return nil
	}
	if err := install.Uninstall("fio-cli"); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Shell completion uninstalled for fio-cli.")
	return nil
}

func validateRunCompletionFlags(cmd *cobra.Command, _ []string) error {
	// Ensure that the install completion flags are not ever used with any
	// other flags.
	flags := cmd.Flags()
	installCompletionMode := false
	otherFlags := false
	flags.Visit(func(flg *flag.Flag) {
		switch flg.Name {
		case "install", "uninstall":
			installCompletionMode = true
		default:
			otherFlags = true
		}
	})
	if installCompletionMode && otherFlags {
		return fmt.Errorf(
			"--install and --uninstall may not be used with any other flags")
	}
	return nil
}

func runCompletion(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	switch {
	case flags.Changed("install"):
		return manageCompletion(cmd, true)
	case flags.Changed("uninstall"):
		return manageCompletion(cmd, false)
	}
	return cmd.Help()
}

// generateCmplFlags adds completion for all cmd.Flags() not already present in
// cmplFlags.
func generateCmplFlags(cmd *cobra.Command, cmplFlags complete.Flags) {
	// Due to a bug in cobra.Command.Flags(), we must call LocalFlags()
	// first to get any parent flags merged into cmd.Flags().
	// https://github.com/spf13/cobra/issues/412
	cmd.LocalFlags()
	cmd.Flags().VisitAll(func(flg *flag.Flag) {
		name := "--" + flg.Name
		// If the flag already has a custom completion, there is
		// nothing to do.
		if _, ok := cmplFlags[name]; ok {
			return
		}
		// Add a predictor
		var predict complete.Predictor = complete.PredictAnything
		if flg.Value.Type() == "bool" {
			predict = complete.PredictNothing
		}
		cmplFlags[name] = predict
		if len(flg.Shorthand) > 0 {
			cmplFlags["-"+flg.Shorthand] = predict
		}
	})
}

// mergeFlags returns a new complete.Flags that merges all flgs.
func mergeFlags(flgs ...complete.Flags) complete.Flags {
	var size int
	for _, flg := range flgs {
		size += len(flg)
	}
	f := make(complete.Flags, size)
	for _, flg := range flgs {
		for k, v := range flg {
			f[k] = v
		}
	}
	return f
}
