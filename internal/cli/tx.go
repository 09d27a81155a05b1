package cli

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/spf13/cobra"

	"github.com/erickherrera/CriptoGualet-sub001/internal/btctx"
	"github.com/erickherrera/CriptoGualet-sub001/internal/encoding"
)

var txCmd = &cobra.Command{
	Use:   "tx",
	Short: "Build and sign transactions",
}

// utxoJSON is the on-disk shape accepted by "tx btc --utxos", since
// btctx.UTXO's chainhash.Hash/ScriptPubKey fields aren't JSON-friendly as-is.
type utxoJSON struct {
	TxID         string `json:"txid"`
	Vout         uint32 `json:"vout"`
	ValueSats    int64  `json:"value_sats"`
	ScriptPubKey string `json:"script_pubkey_hex"`
}

func loadUTXOs(path string) ([]btctx.UTXO, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read utxos file: %w", err)
	}
	var entries []utxoJSON
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse utxos file: %w", err)
	}

	utxos := make([]btctx.UTXO, 0, len(entries))
	for _, e := range entries {
		h, err := chainhash.NewHashFromStr(e.TxID)
		if err != nil {
			return nil, fmt.Errorf("invalid utxo txid %q: %w", e.TxID, err)
		}
		script, err := encoding.HexDecode(e.ScriptPubKey)
		if err != nil {
			return nil, fmt.Errorf("invalid utxo script_pubkey_hex: %w", err)
		}
		utxos = append(utxos, btctx.UTXO{
			TxHash:       *h,
			Vout:         e.Vout,
			Value:        e.ValueSats,
			ScriptPubKey: script,
		})
	}
	return utxos, nil
}

var txBTCCmd = &cobra.Command{
	Use:   "btc <sessionId> <password> <chain> <account> <change> <index> <toAddress> <amountSats>",
	Short: "Build and sign a Bitcoin-family P2PKH transaction",
	Long: `Builds and signs a legacy P2PKH transaction paying amountSats to toAddress,
spending from the UTXO set given by --utxos (a JSON file: [{"txid","vout",
"value_sats","script_pubkey_hex"}]), with change returned to the signing
key's own address. Prints the raw signed transaction hex and its txid;
does not broadcast it unless --broadcast is set.`,
	Args: cobra.ExactArgs(8),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		sessionID, password, chainKey := args[0], args[1], args[2]
		account, change, index, err := parseCoords(args[3], args[4], args[5])
		if err != nil {
			return err
		}
		toAddr := args[6]
		amountSats, err := strconv.ParseInt(args[7], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amountSats: %w", err)
		}

		utxosPath, _ := cmd.Flags().GetString("utxos")
		if utxosPath == "" {
			return fmt.Errorf("--utxos is required (a JSON file describing spendable outputs)")
		}
		utxos, err := loadUTXOs(utxosPath)
		if err != nil {
			return err
		}

		feePerByte, _ := cmd.Flags().GetInt64("fee-per-byte")
		if feePerByte <= 0 {
			feePerByte, err = c.EstimateBTCFeePerByte(cmd.Context())
			if err != nil {
				return fmt.Errorf("no --fee-per-byte given and fee estimation failed: %w", err)
			}
		}

		rawHex, txid, err := c.BuildAndSignBTCTx(cmd.Context(), sessionID, password, chainKey,
			account, change, index, utxos, toAddr, amountSats, feePerByte)
		if err != nil {
			return err
		}

		fmt.Printf("txid: %s\n", txid)
		fmt.Printf("raw:  %s\n", rawHex)

		if broadcast, _ := cmd.Flags().GetBool("broadcast"); broadcast {
			broadcastTxid, err := c.BroadcastBTCTx(cmd.Context(), rawHex)
			if err != nil {
				return err
			}
			fmt.Printf("broadcast txid: %s\n", broadcastTxid)
		}
		return nil
	},
}

var txEVMCmd = &cobra.Command{
	Use:   "evm <sessionId> <password> <account> <change> <index> <toAddressHex> <valueWei> <chainId>",
	Short: "Build and sign an EIP-155 legacy EVM transaction",
	Long: `Builds and signs a legacy (type-0) EIP-155 transaction. Nonce and gas limit
come from --nonce (default 0) and --gas-limit (default 21000) and are not
fetched from the explorer; gas price comes from --gas-price-wei, or from the
configured EVM explorer's proposed gas-oracle price when that flag is
empty. Prints the raw signed
transaction hex; does not broadcast it unless --broadcast is set.`,
	Args: cobra.ExactArgs(8),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		sessionID, password := args[0], args[1]
		account, change, index, err := parseCoords(args[2], args[3], args[4])
		if err != nil {
			return err
		}
		toHex := args[5]
		to, err := encoding.HexDecode(toHex)
		if err != nil || len(to) != 20 {
			return fmt.Errorf("invalid to address: %s", toHex)
		}
		valueWei, ok := new(big.Int).SetString(args[6], 10)
		if !ok {
			return fmt.Errorf("invalid valueWei: %s", args[6])
		}
		chainID, err := strconv.ParseUint(args[7], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid chainId: %w", err)
		}

		nonce, _ := cmd.Flags().GetUint64("nonce")
		gasPriceStr, _ := cmd.Flags().GetString("gas-price-wei")
		gasLimit, _ := cmd.Flags().GetUint64("gas-limit")
		dataHex, _ := cmd.Flags().GetString("data")

		gasPriceWei, ok := new(big.Int).SetString(gasPriceStr, 10)
		if !ok || gasPriceStr == "" {
			oracle, err := c.EVMGasOracle(cmd.Context())
			if err != nil {
				return fmt.Errorf("no --gas-price-wei given and gas oracle lookup failed: %w", err)
			}
			gasPriceWei = new(big.Int).Mul(big.NewInt(int64(oracle.Propose)), big.NewInt(1_000_000_000))
		}

		var data []byte
		if dataHex != "" {
			data, err = encoding.HexDecode(dataHex)
			if err != nil {
				return fmt.Errorf("invalid --data: %w", err)
			}
		}

		rawHex, err := c.BuildAndSignEVMTx(cmd.Context(), sessionID, password, account, change, index,
			nonce, to, valueWei, gasPriceWei, gasLimit, chainID, data)
		if err != nil {
			return err
		}

		fmt.Printf("raw: %s\n", rawHex)

		if broadcast, _ := cmd.Flags().GetBool("broadcast"); broadcast {
			txHash, err := c.BroadcastEVMTx(cmd.Context(), rawHex)
			if err != nil {
				return err
			}
			fmt.Printf("broadcast tx hash: %s\n", txHash)
		}
		return nil
	},
}

func init() {
	txBTCCmd.Flags().String("utxos", "", "Path to a JSON file of spendable UTXOs (required)")
	txBTCCmd.Flags().Int64("fee-per-byte", 0, "Satoshis per byte (0 = ask the configured explorer)")
	txBTCCmd.Flags().Bool("broadcast", false, "Broadcast the signed transaction after building it")

	txEVMCmd.Flags().Uint64("nonce", 0, "Transaction nonce")
	txEVMCmd.Flags().String("gas-price-wei", "", "Gas price in wei (empty = ask the configured explorer)")
	txEVMCmd.Flags().Uint64("gas-limit", 21000, "Gas limit")
	txEVMCmd.Flags().String("data", "", "Hex-encoded call data")
	txEVMCmd.Flags().Bool("broadcast", false, "Broadcast the signed transaction after building it")

	txCmd.AddCommand(txBTCCmd, txEVMCmd)
	rootCmd.AddCommand(txCmd)
}
