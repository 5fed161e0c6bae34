package main

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/iotaledger/tokenfaucet/packages/faucet"
	"github.com/iotaledger/tokenfaucet/packages/ledger"
)

var (
	initializeMint string
	depositAmount  uint64
)

var initializeCmd = &cobra.Command{
	Use:   "initialize",
	Short: "Initialize the faucet with the key as administrator",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPair, err := loadKeyFile(keyFile)
		if err != nil {
			return err
		}
		mint, err := parseAddress("mint", initializeMint)
		if err != nil {
			return err
		}

		res, err := api().Initialize(keyPair, mint)
		if err != nil {
			return err
		}

		fmt.Printf("Faucet initialized (tx %s)\n", res.TransactionID)
		fmt.Printf("  administrator: %s\n  token mint:    %s\n  native vault:  %s\n  token vault:   %s\n", res.Administrator, res.TokenMint, res.NativeVault, res.TokenVault)
		return nil
	},
}

var depositNativeCmd = &cobra.Command{
	Use:   "deposit-native",
	Short: "Move native coins of the administrator into the native vault",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return deposit(faucet.NativeVault)
	},
}

var depositTokenCmd = &cobra.Command{
	Use:   "deposit-token",
	Short: "Move tokens of the administrator into the token vault",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return deposit(faucet.TokenVault)
	},
}

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Claim native coins and tokens for the key",
	Long: `Claim native coins and tokens for the key.

Every identity can claim exactly once. The tokens are credited to the associated
token account of the key, create it with create-token-account first.

Every run signs a new request. If a claim times out, check the result with status
before claiming again.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		keyPair, err := loadKeyFile(keyFile)
		if err != nil {
			return err
		}

		res, err := api().Claim(keyPair)
		if err != nil {
			return err
		}

		fmt.Printf("Claimed %d native and %d tokens into %s (tx %s)\n", res.NativeAmount, res.TokenAmount, res.TokenAccount, res.TransactionID)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the state of the faucet and whether the key already claimed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state, err := api().State()
		if err != nil {
			return err
		}

		fmt.Printf("program:        %s\n", state.Program)
		fmt.Printf("config:         %s\n", state.ConfigAddress)
		fmt.Printf("native vault:   %s (%d)\n", state.NativeVault, state.NativeBalance)
		fmt.Printf("token vault:    %s (%d)\n", state.TokenVault, state.TokenBalance)
		if !state.Initialized {
			fmt.Println("the faucet is not initialized")
			return nil
		}
		fmt.Printf("administrator:  %s\n", state.Administrator)
		fmt.Printf("token mint:     %s\n", state.TokenMint)
		fmt.Printf("claims:         %d (%d failed, %d in the last minute)\n", state.Claims, state.FailedClaims, state.ClaimsPerMinute)

		keyPair, err := loadKeyFile(keyFile)
		if err != nil {
			// the key is optional for the status
			return nil
		}
		address := ledger.AddressFromPublicKey(keyPair.PublicKey)
		claimStatus, err := api().ClaimStatus(address)
		if err != nil {
			return err
		}
		fmt.Printf("%s claimed:     %t\n", address, claimStatus.HasClaimed)

		return nil
	},
}

func init() {
	initializeCmd.Flags().StringVar(&initializeMint, "mint", "", "the base58 encoded mint of the token the faucet hands out")
	for _, cmd := range []*cobra.Command{depositNativeCmd, depositTokenCmd} {
		cmd.Flags().Uint64Var(&depositAmount, "amount", 0, "the amount to deposit in base units")
	}

	rootCmd.AddCommand(initializeCmd, depositNativeCmd, depositTokenCmd, claimCmd, statusCmd)
}

func deposit(vault faucet.VaultKind) error {
	keyPair, err := loadKeyFile(keyFile)
	if err != nil {
		return err
	}
	if depositAmount == 0 {
		return errors.New("--amount is required")
	}

	confirmed, err := confirm(fmt.Sprintf("Deposit %d into the %s?", depositAmount, vault))
	if err != nil || !confirmed {
		return err
	}

	send := api().DepositNative
	if vault == faucet.TokenVault {
		send = api().DepositToken
	}

	res, err := send(keyPair, depositAmount)
	if err != nil {
		return err
	}

	fmt.Printf("Deposited %d into the %s (tx %s)\n", depositAmount, vault, res.TransactionID)
	return nil
}

func confirm(message string) (confirmed bool, err error) {
	if assumeYes {
		return true, nil
	}

	if err = survey.AskOne(&survey.Confirm{Message: message}, &confirmed); err != nil {
		return false, errors.Wrap(err, "failed to ask for confirmation")
	}

	return confirmed, nil
}
