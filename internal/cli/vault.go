package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Inspect and maintain the encrypted vault",
}

var vaultIntegrityCmd = &cobra.Command{
	Use:   "integrity-check",
	Short: "Run the vault's integrity and foreign-key checks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Vault.IntegrityCheck(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Vault integrity: ok")
		return nil
	},
}

var vaultBackupCmd = &cobra.Command{
	Use:   "backup <destPath>",
	Short: "Copy the vault to a new integrity-checked store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		key, err := vaultKey()
		if err != nil {
			return err
		}
		log, err := newLogger()
		if err != nil {
			return err
		}
		if err := c.Vault.Backup(cmd.Context(), args[0], key, log); err != nil {
			return err
		}
		fmt.Printf("Backup written and verified: %s\n", args[0])
		return nil
	},
}

var vaultRotateKeyCmd = &cobra.Command{
	Use:   "rotate-key <newKeyHex>",
	Short: "Rotate the vault encryption key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		oldKey, err := vaultKey()
		if err != nil {
			return err
		}
		newKey, err := decodeHexKey(args[0])
		if err != nil {
			return err
		}
		if err := c.Vault.RotateKey(cmd.Context(), oldKey, newKey); err != nil {
			return err
		}
		fmt.Println("Vault key rotated. Update SKMS_VAULT_KEY / your config to the new key.")
		return nil
	},
}

var vaultAuditCmd = &cobra.Command{
	Use:   "audit [n]",
	Short: "Print the most recent audit-log entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n := 50
		if len(args) == 1 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed <= 0 {
				return fmt.Errorf("invalid entry count: %s", args[0])
			}
			n = parsed
		}

		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		entries := c.Vault.RecentAudit(n)
		if len(entries) == 0 {
			fmt.Println("No audit entries recorded this process.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-24s %s\n", e.Timestamp.Format("2006-01-02T15:04:05Z"), e.Operation, e.Detail)
		}
		return nil
	},
}

func init() {
	vaultCmd.AddCommand(vaultIntegrityCmd, vaultBackupCmd, vaultRotateKeyCmd, vaultAuditCmd)
	rootCmd.AddCommand(vaultCmd)
}
