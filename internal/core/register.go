package core

import (
	"context"
	"fmt"

	"github.com/erickherrera/CriptoGualet-sub001/internal/auth"
	"github.com/erickherrera/CriptoGualet-sub001/internal/bip39"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
	"github.com/erickherrera/CriptoGualet-sub001/internal/vault"
)

// walletKeySaltLen and mnemonicEntropyBits fix the parameters Register
// uses for every new wallet.
const (
	walletKeySaltLen    = 16
	mnemonicEntropyBits = 256
)

// Register creates a user, generates and vault-encrypts a fresh 24-word
// mnemonic's seed under a key derived from password, and issues an email
// verification code. The mnemonic is returned once — the vault never
// stores it, only its derived seed.
func (c *Core) Register(ctx context.Context, username, email, password string) (mnemonic string, err error) {
	if err := auth.ValidateUsername(username); err != nil {
		return "", err
	}
	if err := auth.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	mnemonic, err = bip39.NewMnemonic(mnemonicEntropyBits)
	if err != nil {
		return "", err
	}

	seed, err := bip39.SeedFromMnemonic(mnemonic, "")
	if err != nil {
		return "", err
	}
	defer primitive.SecureZero(seed)

	keySalt, err := primitive.RandomBytes(walletKeySaltLen)
	if err != nil {
		return "", coreerr.Wrap(coreerr.SystemError, "key salt generation failed", err)
	}
	walletKey := primitive.PBKDF2SHA256([]byte(password), keySalt, primitive.IterWalletKey, 32)
	defer primitive.SecureZero(walletKey)

	encSeed, err := vault.EncryptBlob(walletKey, seed)
	if err != nil {
		return "", err
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	userID, err := c.Vault.InsertUserWithWallet(ctx, username, email, passwordHash, encSeed, keySalt)
	if err != nil {
		return "", err
	}

	code, err := c.verification.IssueCode(username)
	if err != nil {
		// Registration already succeeded; the caller can retry via ResendCode.
		c.log.Warnw("registration succeeded but initial verification code could not be issued", "username", username, "err", err)
		return mnemonic, nil
	}
	if err := c.mailer.SendMail(ctx, email, "Verify your account",
		fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)); err != nil {
		c.log.Warnw("verification email send failed", "username", username, "err", err)
	}

	c.Vault.Audit("register", fmt.Sprintf("user_id=%d username=%s", userID, username))
	return mnemonic, nil
}

// VerifyEmailCode checks code against the outstanding verification record
// for username and, on success, marks the user's email verified.
func (c *Core) VerifyEmailCode(ctx context.Context, username, code string) error {
	user, err := c.Vault.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}

	switch c.verification.Verify(username, code) {
	case auth.VerifyOK:
		if err := c.Vault.SetEmailVerified(ctx, user.ID); err != nil {
			return err
		}
		c.Vault.Audit("verify_email_code", fmt.Sprintf("user_id=%d ok", user.ID))
		return nil
	case auth.VerifyExpired:
		return coreerr.New(coreerr.InvalidInput, "verification code expired")
	case auth.VerifyExhausted:
		return coreerr.New(coreerr.RateLimited, "too many incorrect attempts; request a new code")
	default:
		return coreerr.New(coreerr.InvalidInput, "incorrect verification code")
	}
}

// ResendCode issues a fresh verification code for username, subject to the
// 60-second resend window, and emails it. The code itself is never
// returned to the caller — only the mailer sees it.
func (c *Core) ResendCode(ctx context.Context, username string) error {
	user, err := c.Vault.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	code, err := c.verification.IssueCode(username)
	if err != nil {
		return err
	}
	if err := c.mailer.SendMail(ctx, user.Email, "Your verification code",
		fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)); err != nil {
		return coreerr.Wrap(coreerr.ExternalUnavailable, "failed to send verification email", err)
	}
	return nil
}
