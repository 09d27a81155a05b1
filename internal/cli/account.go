package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username> <email> <password>",
	Short: "Create a new vault account and wallet",
	Long: `Create a new user, generate a fresh 24-word mnemonic, and store its
seed encrypted under a key derived from password. The mnemonic is printed
once and never stored by the vault — write it down.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		mnemonic, err := c.Register(cmd.Context(), args[0], args[1], args[2])
		if err != nil {
			return err
		}

		fmt.Printf("Account %q created.\n\n", args[0])
		fmt.Printf("Mnemonic phrase (write this down, it will not be shown again):\n%s\n\n", mnemonic)
		fmt.Printf("A verification code has been sent to %s; run \"skms verify %s <code>\".\n", args[1], args[0])
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <username> <code>",
	Short: "Confirm an account's email verification code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.VerifyEmailCode(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Println("Email verified.")
		return nil
	},
}

var resendCmd = &cobra.Command{
	Use:   "resend <username>",
	Short: "Resend a verification code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.ResendCode(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Verification code resent.")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Log in and print a session id",
	Long: `Log in and print a session id. An account with 2FA enabled is emailed a
login code on the first attempt; repeat the command with --code to complete
the login.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		code, _ := cmd.Flags().GetString("code")
		var sessionID string
		if code != "" {
			sessionID, err = c.LoginWithCode(cmd.Context(), args[0], args[1], code)
		} else {
			sessionID, err = c.Login(cmd.Context(), args[0], args[1])
		}
		if err != nil {
			return err
		}
		fmt.Printf("Session: %s\n", sessionID)
		return nil
	},
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password <username> <oldPassword> <newPassword>",
	Short: "Change an account's password, re-encrypting the wallet seed under it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.ChangePassword(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("Password changed.")
		return nil
	},
}

var twoFactorCmd = &cobra.Command{
	Use:   "twofactor <username> <password> <on|off>",
	Short: "Require an emailed login code in addition to the password",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch args[2] {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			return fmt.Errorf("last argument must be \"on\" or \"off\", got %q", args[2])
		}

		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.SetTwoFactor(cmd.Context(), args[0], args[1], enabled); err != nil {
			return err
		}
		fmt.Printf("Two-factor login: %s\n", args[2])
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout <sessionId>",
	Short: "Revoke a session and wipe its cached key material",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.Logout(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var revealCmd = &cobra.Command{
	Use:   "reveal <username> <password>",
	Short: "Decrypt and print the account's wallet seed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		seedHex, err := c.RevealSeed(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Seed: %s\n", seedHex)
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <username> <mnemonic> <password>",
	Short: "Replace an account's wallet seed from a mnemonic, re-authenticating with the current password",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		passphrase, _ := cmd.Flags().GetString("passphrase")
		if err := c.RestoreFromSeed(cmd.Context(), args[0], args[1], passphrase, args[2]); err != nil {
			return err
		}
		fmt.Println("Wallet restored; existing sessions for this account keep their cached key until they expire or log out.")
		return nil
	},
}

var deriveAddressCmd = &cobra.Command{
	Use:   "derive-address <sessionId> <chain> <account> <change> <index>",
	Short: "Derive a single address for a logged-in session",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCore(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		account, change, index, err := parseCoords(args[2], args[3], args[4])
		if err != nil {
			return err
		}

		addr, err := c.DeriveAddress(cmd.Context(), args[0], args[1], account, change, index)
		if err != nil {
			return err
		}
		fmt.Println(addr)
		return nil
	},
}

func init() {
	restoreCmd.Flags().String("passphrase", "", "Optional BIP-39 25th-word passphrase")
	loginCmd.Flags().String("code", "", "Emailed login code, for accounts with 2FA enabled")

	rootCmd.AddCommand(registerCmd, verifyCmd, resendCmd, loginCmd, logoutCmd,
		revealCmd, restoreCmd, deriveAddressCmd, changePasswordCmd, twoFactorCmd)
}
