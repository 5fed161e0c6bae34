// Command faucet-cli operates a token faucet node through its web API.
//
// Keys are stored as base58 encoded ed25519 seeds:
//
//	faucet-cli keygen --key-file admin.key
//	faucet-cli initialize --key-file admin.key --mint <mint>
//	faucet-cli deposit-native --key-file admin.key --amount 1000000000
//	faucet-cli claim --key-file user.key
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/iotaledger/tokenfaucet/client"
)

var (
	nodeURL   string
	keyFile   string
	assumeYes bool
)

var rootCmd = &cobra.Command{
	Use:           "faucet-cli",
	Short:         "Operate a token faucet node",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://127.0.0.1:8080", "the web API of the faucet node")
	rootCmd.PersistentFlags().StringVarP(&keyFile, "key-file", "k", "faucet.key", "the file holding the base58 encoded ed25519 seed")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "do not ask for confirmation")
}

func api() *client.FaucetAPI {
	return client.NewFaucetAPI(nodeURL)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
