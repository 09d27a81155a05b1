package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/erickherrera/CriptoGualet-sub001/internal/address"
	"github.com/erickherrera/CriptoGualet-sub001/internal/bip39"
	"github.com/erickherrera/CriptoGualet-sub001/internal/chain"
	"github.com/erickherrera/CriptoGualet-sub001/internal/hdkey"
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive addresses from a mnemonic",
	Long: `Derive addresses from a BIP-39 mnemonic phrase using BIP-44 derivation paths,
without creating a vault account.

This operates on a mnemonic held only in this process's memory; it never
touches the vault. Use "register"/"login"/"derive-address" for addresses
backed by the password-protected, persisted wallet seed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		mnemonic, _ := cmd.Flags().GetString("mnemonic")
		chainKey, _ := cmd.Flags().GetString("chain")
		account, _ := cmd.Flags().GetUint32("account")
		change, _ := cmd.Flags().GetUint32("change")
		count, _ := cmd.Flags().GetInt("count")
		startIndex, _ := cmd.Flags().GetUint32("start")

		if mnemonic == "" {
			return fmt.Errorf("mnemonic phrase is required")
		}
		params, err := chain.Lookup(chainKey)
		if err != nil {
			return err
		}

		seed, err := bip39.SeedFromMnemonicChecked(mnemonic, "")
		if err != nil {
			return fmt.Errorf("invalid mnemonic: %w", err)
		}
		master, err := hdkey.NewMaster(seed)
		if err != nil {
			return fmt.Errorf("failed to build master key: %w", err)
		}

		fmt.Printf("Chain: %s\n", params.Name)
		fmt.Printf("Deriving %d address(es) from m/44'/%d'/%d'/%d/...\n\n", count, params.CoinType, account, change)

		for i := uint32(0); i < uint32(count); i++ {
			index := startIndex + i
			path := append(params.DerivationPath(account), change, index)
			child, err := master.DeriveAt(path)
			if err != nil {
				return fmt.Errorf("failed to derive index %d: %w", index, err)
			}

			var addr string
			switch params.Family {
			case chain.FamilyBitcoin:
				pub, err := child.CompressedPubKey()
				if err != nil {
					return err
				}
				addr, err = address.FromCompressedPubkey(params, pub)
				if err != nil {
					return err
				}
			case chain.FamilyEVM:
				pub, err := child.UncompressedPubKey()
				if err != nil {
					return err
				}
				addr, err = address.FromUncompressedPubkey(pub)
				if err != nil {
					return err
				}
			}

			fmt.Printf("Index %d:\n", index)
			fmt.Printf("  Path:    m/44'/%d'/%d'/%d/%d\n", params.CoinType, account, change, index)
			fmt.Printf("  Address: %s\n\n", addr)
		}

		return nil
	},
}

var chainsCmd = &cobra.Command{
	Use:   "chains",
	Short: "List supported chains",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]chain.ID, 0, len(chain.Table))
		for id := range chain.Table {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		for _, id := range ids {
			p := chain.Table[id]
			fmt.Printf("%-20s coin_type=%-4d family=%d\n", p.Name, p.CoinType, p.Family)
		}
		return nil
	},
}

func init() {
	deriveCmd.Flags().StringP("mnemonic", "m", "", "Mnemonic phrase (required)")
	deriveCmd.Flags().String("chain", "eth", "Chain key (btc, btc-test, ltc, ltc-test, eth)")
	deriveCmd.Flags().Uint32("account", 0, "BIP-44 account index")
	deriveCmd.Flags().Uint32("change", 0, "BIP-44 change (0=external, 1=internal)")
	deriveCmd.Flags().Uint32("start", 0, "Starting address index")
	deriveCmd.Flags().IntP("count", "c", 1, "Number of addresses to derive")

	deriveCmd.MarkFlagRequired("mnemonic")
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(chainsCmd)
}
