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
	"strings"

	"github.com/posener/complete"
	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"github.com/Factom-Asset-Tokens/fiod/fio"
)

var keyCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Generate and inspect FIO keys",
		Long: `
Generate new FIO private keys, derive them from mnemonic phrases and print the
public key and account name of a private key.

Keys are never sent to any server by these commands.
`[1:],
	}
	rootCmd.AddCommand(cmd)
	rootCmplCmd.Sub["key"] = keyCmplCmd
	rootCmplCmd.Sub["help"].Sub["key"] = complete.Command{Sub: complete.Commands{}}
	return cmd
}()

var keyCmplCmd = complete.Command{
	Flags: complete.Flags{},
	Sub:   complete.Commands{},
}

var keyGenerateCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a new random FIO private key",
		Long: `
Generate a new random FIO private key and print it with its public key and
account name.

Use --mnemonic to instead generate a new 24 word BIP39 mnemonic phrase and the
FIO key derived from it.
`[1:],
		Args: cobra.ExactArgs(0),
		RunE: keyGenerate,
	}
	cmd.Flags().Bool("mnemonic", false,
		"Generate a BIP39 mnemonic phrase and derive the key from it")
	keyCmd.AddCommand(cmd)
	keyCmplCmd.Sub["generate"] = complete.Command{Flags: complete.Flags{
		"--mnemonic": complete.PredictNothing}}
	rootCmplCmd.Sub["help"].Sub["key"].Sub["generate"] = complete.Command{}
	return cmd
}()

var keyPublicCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
public [PRIVATE_KEY]`[1:],
		Short: "Print the public key of a private key",
		Long: `
Print the FIO public key and account name of PRIVATE_KEY, or of --key if no
PRIVATE_KEY is given.
`[1:],
		Args: cobra.MaximumNArgs(1),
		RunE: keyPublic,
	}
	keyCmd.AddCommand(cmd)
	keyCmplCmd.Sub["public"] = complete.Command{}
	rootCmplCmd.Sub["help"].Sub["key"].Sub["public"] = complete.Command{}
	return cmd
}()

var keyMnemonicCmd = func() *cobra.Command {
	cmd := &cobra.Command{
		DisableFlagsInUseLine: true,
		Use: `
mnemonic WORD...`[1:],
		Short: "Derive a FIO private key from a mnemonic phrase",
		Long: `
Derive the FIO private key of a BIP39 mnemonic phrase at the BIP44 path
m/44'/235'/0'/0/0.

The phrase may be given as a single quoted argument or as separate words.
`[1:],
		Args: cobra.MinimumNArgs(1),
		RunE: keyMnemonic,
	}
	keyCmd.AddCommand(cmd)
	keyCmplCmd.Sub["mnemonic"] = complete.Command{}
	rootCmplCmd.Sub["help"].Sub["key"].Sub["mnemonic"] = complete.Command{}
	return cmd
}()

func keyGenerate(cmd *cobra.Command, _ []string) error {
	useMnemonic, _ := cmd.Flags().GetBool("mnemonic")
	if !useMnemonic {
		key, err := fio.NewPrivateKey()
		if err != nil {
			return err
		}
		printKey(cmd, key)
		return nil
	}
	entropy, err := bip39.NewEntropy(256)
	if err != nil {
		return err
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return err
	}
	key, err := fio.NewPrivateKeyFromMnemonic(mnemonic)
	if err != nil {
		return err
	}
	printField(cmd.OutOrStdout(), "Mnemonic", mnemonic)
	printKey(cmd, key)
	return nil
}

func keyPublic(cmd *cobra.Command, args []string) error {
	wif := keyWIF
	if len(args) > 0 {
		wif = args[0]
	}
	if len(wif) == 0 {
		return fmt.Errorf("a PRIVATE_KEY or --key is required")
	}
	key, err := fio.NewPrivateKeyFromWIF(wif)
	if err != nil {
		return err
	}
	pub := key.PublicKey()
	w := cmd.OutOrStdout()
	printField(w, "Public Key", pub)
	printField(w, "Actor", pub.Actor())
	return nil
}

func keyMnemonic(cmd *cobra.Command, args []string) error {
	mnemonic := strings.Join(strings.Fields(strings.Join(args, " ")), " ")
	key, err := fio.NewPrivateKeyFromMnemonic(mnemonic)
	if err != nil {
		return err
	}
	printKey(cmd, key)
	return nil
}

func printKey(cmd *cobra.Command, key fio.PrivateKey) {
	pub := key.PublicKey()
	w := cmd.OutOrStdout()
	printField(w, "Private Key", key)
	printField(w, "Public Key", pub)
	printField(w, "Actor", pub.Actor())
}
