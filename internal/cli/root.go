package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/erickherrera/CriptoGualet-sub001/internal/bip39"
	"github.com/erickherrera/CriptoGualet-sub001/internal/core"
	"github.com/erickherrera/CriptoGualet-sub001/internal/explorer"
)

var (
	cfgFile string
	version = "1.0.0"
)

var rootCmd = &cobra.Command{
	Use:   "skms",
	Short: "Secure Key Management System",
	Long: `SKMS is a hierarchical deterministic (HD) multi-chain wallet and key
management system covering Bitcoin-family and EVM-family chains.

This application provides secure mnemonic generation, password-protected
vault storage, address derivation, and transaction signing following
BIP-32, BIP-39, and BIP-44 standards.`,
	Version: version,
}

func Execute() error {
	// Install an operator-provided wordlist override if one exists at a
	// known path; the embedded BIP-39 English list is the default.
	if err := bip39.LoadWordlistOverride(); err != nil {
		return err
	}
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.skms.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().String("vault", "", "path to the vault database file (default $HOME/.skms.db)")
	rootCmd.PersistentFlags().String("vault-key", "", "hex-encoded vault encryption key (or set SKMS_VAULT_KEY)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("vault", rootCmd.PersistentFlags().Lookup("vault"))
	viper.BindPFlag("vault_key", rootCmd.PersistentFlags().Lookup("vault-key"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".skms")
	}

	viper.SetEnvPrefix("SKMS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the sugared zap logger the core and vault log through,
// switched between development (human-readable, debug level) and production
// encoders by --verbose.
func newLogger() (*zap.SugaredLogger, error) {
	if viper.GetBool("verbose") {
		l, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		return l.Sugar(), nil
	}
	l, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return l.Sugar(), nil
}

// vaultPath resolves the --vault flag/config/env value, defaulting to
// $HOME/.skms.db.
func vaultPath() (string, error) {
	if p := viper.GetString("vault"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return home + "/.skms.db", nil
}

// vaultKey resolves the --vault-key flag/config/env value as raw bytes.
func vaultKey() ([]byte, error) {
	hexKey := viper.GetString("vault_key")
	if hexKey == "" {
		return nil, fmt.Errorf("no vault key configured: pass --vault-key, set vault_key in ~/.skms.yaml, or set SKMS_VAULT_KEY")
	}
	return decodeHexKey(hexKey)
}

// openCore resolves the vault path/key, wires up the ambient explorer/mailer
// collaborators, and returns a ready *core.Core. Callers must Close it.
func openCore(cmd *cobra.Command) (*core.Core, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}
	path, err := vaultPath()
	if err != nil {
		return nil, err
	}
	key, err := vaultKey()
	if err != nil {
		return nil, err
	}

	mailer := explorer.LogMailer{Log: log}
	return core.New(cmd.Context(), path, key, log,
		explorer.NoopBitcoinExplorer{}, explorer.NoopEVMExplorer{}, mailer)
}
