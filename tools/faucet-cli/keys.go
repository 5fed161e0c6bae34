package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

var overwriteKey bool

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a new key",
	Long: `Generate a new ed25519 key and store its seed in the key file.

The address of the key is printed to STDOUT.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPair, err := generateKeyFile(keyFile, overwriteKey)
		if err != nil {
			return err
		}

		fmt.Println(ledger.AddressFromPublicKey(keyPair.PublicKey).Base58())
		return nil
	},
}

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the address of the key",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPair, err := loadKeyFile(keyFile)
		if err != nil {
			return err
		}

		fmt.Println(ledger.AddressFromPublicKey(keyPair.PublicKey).Base58())
		return nil
	},
}

func init() {
	keygenCmd.Flags().BoolVar(&overwriteKey, "force", false, "overwrite an existing key file")

	rootCmd.AddCommand(keygenCmd, addressCmd)
}

func generateKeyFile(path string, overwrite bool) (ed25519.KeyPair, error) {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return ed25519.KeyPair{}, errors.Errorf("%s already exists, use --force to replace it", path)
	}

	keyPair := ed25519.GenerateKeyPair()
	if err := os.WriteFile(path, []byte(base58.Encode(keyPair.PrivateKey.Seed().Bytes())+"\n"), 0o600); err != nil {
		return ed25519.KeyPair{}, errors.Wrapf(err, "failed to write %s", path)
	}

	return keyPair, nil
}

func loadKeyFile(path string) (ed25519.KeyPair, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return ed25519.KeyPair{}, errors.Wrapf(err, "failed to read key file %s", path)
	}

	seed, err := base58.Decode(strings.TrimSpace(string(content)))
	if err != nil {
		return ed25519.KeyPair{}, errors.Wrapf(err, "key file %s is not base58 encoded", path)
	}
	if len(seed) != ed25519.SeedSize {
		return ed25519.KeyPair{}, errors.Errorf("key file %s holds %d bytes instead of a %d byte seed", path, len(seed), ed25519.SeedSize)
	}

	privateKey := ed25519.PrivateKeyFromSeed(seed)
	return ed25519.KeyPair{PrivateKey: privateKey, PublicKey: privateKey.Public()}, nil
}

func parseAddress(name, value string) (ledger.Address, error) {
	if value == "" {
		return ledger.EmptyAddress, errors.Errorf("--%s is required", name)
	}

	address, err := ledger.AddressFromBase58(value)
	if err != nil {
		return ledger.EmptyAddress, errors.Wrapf(err, "invalid --%s", name)
	}

	return address, nil
}
