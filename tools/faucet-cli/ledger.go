package main

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/spf13/cobra"

	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

var (
	ledgerMint      string
	ledgerRecipient string
	ledgerAmount    uint64
	mintDecimals    uint
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Show the native balance and the token balance of an address",
	Long: `Show the native balance of an address, by default the one of the key.

With --mint the balance of the associated token account for that mint is shown as well.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := addressArgument(args)
		if err != nil {
			return err
		}
		mint := ledger.EmptyAddress
		if ledgerMint != "" {
			if mint, err = parseAddress("mint", ledgerMint); err != nil {
				return err
			}
		}

		account, err := api().Account(address, mint)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %d\n", account.Address, account.NativeBalance)
		if account.TokenAccount != "" {
			fmt.Printf("%s: %d of %s\n", account.TokenAccount, account.TokenBalance, account.Mint)
		} else if account.Mint != "" {
			fmt.Printf("no token account for %s\n", account.Mint)
		}
		return nil
	},
}

var airdropCmd = &cobra.Command{
	Use:   "airdrop [address]",
	Short: "Credit native coins to an address (development networks only)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := addressArgument(args)
		if err != nil {
			return err
		}

		res, err := api().Airdrop(address, ledgerAmount)
		if err != nil {
			return err
		}

		fmt.Printf("Airdropped %d to %s (tx %s)\n", ledgerAmount, address, res.TransactionID)
		return nil
	},
}

var createMintCmd = &cobra.Command{
	Use:   "create-mint",
	Short: "Create a new mint with the key as authority (development networks only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPair, err := loadKeyFile(keyFile)
		if err != nil {
			return err
		}
		if mintDecimals > math.MaxUint8 {
			return errors.Errorf("--decimals must not exceed %d", math.MaxUint8)
		}

		mint := ledger.AddressFromPublicKey(ed25519.GenerateKeyPair().PublicKey)
		if ledgerMint != "" {
			if mint, err = parseAddress("mint", ledgerMint); err != nil {
				return err
			}
		}

		res, err := api().CreateMint(keyPair, mint, uint8(mintDecimals))
		if err != nil {
			return err
		}

		fmt.Printf("Created mint %s (tx %s)\n", mint, res.TransactionID)
		return nil
	},
}

var mintToCmd = &cobra.Command{
	Use:   "mint-to",
	Short: "Mint tokens into the associated token account of a recipient (development networks only)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPair, err := loadKeyFile(keyFile)
		if err != nil {
			return err
		}
		mint, err := parseAddress("mint", ledgerMint)
		if err != nil {
			return err
		}
		recipient := ledger.AddressFromPublicKey(keyPair.PublicKey)
		if ledgerRecipient != "" {
			if recipient, err = parseAddress("recipient", ledgerRecipient); err != nil {
				return err
			}
		}

		res, err := api().MintTo(keyPair, mint, recipient, ledgerAmount)
		if err != nil {
			return err
		}

		fmt.Printf("Minted %d into %s (tx %s)\n", ledgerAmount, res.TokenAccount, res.TransactionID)
		return nil
	},
}

var createTokenAccountCmd = &cobra.Command{
	Use:   "create-token-account",
	Short: "Create the associated token account of the key for a mint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPair, err := loadKeyFile(keyFile)
		if err != nil {
			return err
		}
		mint, err := parseAddress("mint", ledgerMint)
		if err != nil {
			return err
		}

		res, err := api().CreateTokenAccount(keyPair, mint)
		if err != nil {
			return err
		}

		fmt.Printf("Token account %s (tx %s)\n", res.TokenAccount, res.TransactionID)
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{balanceCmd, createMintCmd, mintToCmd, createTokenAccountCmd} {
		cmd.Flags().StringVar(&ledgerMint, "mint", "", "the base58 encoded mint")
	}
	for _, cmd := range []*cobra.Command{airdropCmd, mintToCmd} {
		cmd.Flags().Uint64Var(&ledgerAmount, "amount", 0, "the amount in base units")
	}
	mintToCmd.Flags().StringVar(&ledgerRecipient, "recipient", "", "the base58 encoded recipient, the key by default")
	createMintCmd.Flags().UintVar(&mintDecimals, "decimals", 6, "the decimals of the token")

	rootCmd.AddCommand(balanceCmd, airdropCmd, createMintCmd, mintToCmd, createTokenAccountCmd)
}

// addressArgument returns the address given as the only argument, or the address of the key.
func addressArgument(args []string) (ledger.Address, error) {
	if len(args) == 1 {
		return parseAddress("address", args[0])
	}

	keyPair, err := loadKeyFile(keyFile)
	if err != nil {
		return ledger.EmptyAddress, err
	}

	return ledger.AddressFromPublicKey(keyPair.PublicKey), nil
}
