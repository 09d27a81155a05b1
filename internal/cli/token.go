package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/erickherrera/CriptoGualet-sub001/internal/address"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Track ERC-20 token metadata",
	Long: `Track ERC-20 token metadata (contract address, symbol, decimals) per EVM
chain. This is pure metadata storage; balances and transfers go through the
configured EVM explorer.`,
}

var tokenAddCmd = &cobra.Command{
	Use:   "add <chainId> <contractAddress> <symbol> <decimals>",
	Short: "Register a token's metadata",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid chainId: %w", err)
		}
		contract := args[1]
		if err := address.ValidateEVM(contract); err != nil {
			return fmt.Errorf("invalid contract address: %w", err)
		}
		decimals, err := strconv.Atoi(args[3])
		if err != nil || decimals < 0 || decimals > 77 {
			return fmt.Errorf("invalid decimals: %s", args[3])
		}

		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		id, err := c.Vault.AddERC20Token(cmd.Context(), uint32(chainID), contract, args[2], decimals)
		if err != nil {
			return err
		}
		fmt.Printf("Token %s registered (id %d).\n", args[2], id)
		return nil
	},
}

var tokenListCmd = &cobra.Command{
	Use:   "list <chainId>",
	Short: "List tracked tokens for a chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chainID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid chainId: %w", err)
		}

		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		tokens, err := c.Vault.ListERC20Tokens(cmd.Context(), uint32(chainID))
		if err != nil {
			return err
		}
		if len(tokens) == 0 {
			fmt.Println("No tokens tracked for this chain.")
			return nil
		}
		for _, t := range tokens {
			fmt.Printf("%-8s decimals=%-3d %s\n", t.Symbol, t.Decimals, t.ContractAddress)
		}
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenAddCmd, tokenListCmd)
	rootCmd.AddCommand(tokenCmd)
}
