package core

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/erickherrera/CriptoGualet-sub001/internal/auth"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/hdkey"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
	"github.com/erickherrera/CriptoGualet-sub001/internal/vault"
)

// sessionIDLen is the byte length of a newly minted session identifier,
// hex-encoded before storage and return to the caller.
const sessionIDLen = 32

// Login verifies (username, password), decrypts the user's wallet seed
// under the password-derived key, caches the resulting master extended
// key for the new session, and returns the session id.
// An unverified email returns coreerr.RequiresEmailVerification after the
// password has already checked out, so a wrong password never leaks
// whether the account's email is verified. A user with 2FA enabled is
// mailed a fresh verification code and must complete the login through
// LoginWithCode.
func (c *Core) Login(ctx context.Context, username, password string) (sessionID string, err error) {
	user, err := c.checkCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}

	if user.TwoFactorEnabled {
		code, err := c.verification.IssueCode(username)
		if err != nil {
			return "", err
		}
		if err := c.mailer.SendMail(ctx, user.Email, "Your login code",
			fmt.Sprintf("Your login verification code is %s. It expires in 10 minutes.", code)); err != nil {
			return "", coreerr.Wrap(coreerr.ExternalUnavailable, "failed to send login verification email", err)
		}
		return "", coreerr.New(coreerr.RequiresEmailVerification, "a login code has been emailed; complete login with it")
	}

	return c.issueSession(ctx, user, password)
}

// LoginWithCode completes a 2FA login: password and the emailed code must
// both check out before a session is issued.
func (c *Core) LoginWithCode(ctx context.Context, username, password, code string) (sessionID string, err error) {
	user, err := c.checkCredentials(ctx, username, password)
	if err != nil {
		return "", err
	}

	switch c.verification.Verify(username, code) {
	case auth.VerifyOK:
		return c.issueSession(ctx, user, password)
	case auth.VerifyExpired:
		return "", coreerr.New(coreerr.InvalidInput, "login code expired; log in again to receive a new one")
	case auth.VerifyExhausted:
		return "", coreerr.New(coreerr.RateLimited, "too many incorrect codes; log in again to receive a new one")
	default:
		return "", coreerr.New(coreerr.InvalidCredentials, "incorrect login code")
	}
}

// checkCredentials runs the rate limiter, password verification, and the
// email-verified gate shared by Login and LoginWithCode. A failure is
// recorded against the rate limiter; success clears it.
func (c *Core) checkCredentials(ctx context.Context, username, password string) (*vault.User, error) {
	if err := c.rateLimiter.Check(username); err != nil {
		return nil, err
	}

	user, err := c.Vault.GetUserByUsername(ctx, username)
	if err != nil {
		c.rateLimiter.RecordFailure(username)
		return nil, coreerr.New(coreerr.InvalidCredentials, "invalid username or password")
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		if _, rlErr := c.rateLimiter.RecordFailure(username); rlErr != nil {
			return nil, rlErr
		}
		return nil, coreerr.New(coreerr.InvalidCredentials, "invalid username or password")
	}

	if !user.EmailVerified {
		return nil, coreerr.New(coreerr.RequiresEmailVerification, "email address is not yet verified")
	}
	c.rateLimiter.Clear(username)
	return user, nil
}

// issueSession decrypts user's wallet seed under password, builds the
// master key, mints a session id, and caches the key for that session.
func (c *Core) issueSession(ctx context.Context, user *vault.User, password string) (string, error) {
	encSeed, keySalt, err := c.Vault.GetEncryptedSeed(ctx, user.ID)
	if err != nil {
		return "", err
	}
	walletKey := primitive.PBKDF2SHA256([]byte(password), keySalt, primitive.IterWalletKey, 32)
	defer primitive.SecureZero(walletKey)

	seed, err := vault.DecryptBlob(walletKey, encSeed)
	if err != nil {
		return "", err
	}
	defer primitive.SecureZero(seed)

	master, err := hdkey.NewMaster(seed)
	if err != nil {
		return "", err
	}

	idBytes, err := primitive.RandomBytes(sessionIDLen)
	if err != nil {
		return "", coreerr.Wrap(coreerr.SystemError, "session id generation failed", err)
	}
	sessionID := hex.EncodeToString(idBytes)

	if err := c.Vault.CreateSession(ctx, sessionID, user.ID); err != nil {
		return "", err
	}
	if err := c.Vault.UpdateLastLogin(ctx, user.ID); err != nil {
		c.log.Warnw("failed to update last_login", "username", user.Username, "err", err)
	}

	c.cacheMasterKey(sessionID, master)
	c.Vault.Audit("login", fmt.Sprintf("user_id=%d username=%s", user.ID, user.Username))
	return sessionID, nil
}

// Logout revokes sessionID and wipes its cached master key.
func (c *Core) Logout(ctx context.Context, sessionID string) error {
	c.dropMasterKey(sessionID)
	return c.Vault.Revoke(ctx, sessionID)
}

// SetTwoFactor toggles the 2FA-at-login requirement for username,
// re-authenticating with password first.
func (c *Core) SetTwoFactor(ctx context.Context, username, password string, enabled bool) error {
	user, err := c.Vault.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return coreerr.New(coreerr.InvalidCredentials, "invalid username or password")
	}
	if err := c.Vault.SetTwoFactorEnabled(ctx, user.ID, enabled); err != nil {
		return err
	}
	c.Vault.Audit("set_two_factor", fmt.Sprintf("user_id=%d enabled=%t", user.ID, enabled))
	return nil
}

// ChangePassword re-authenticates with oldPassword, decrypts the wallet
// seed under it, re-encrypts the seed under a key derived from newPassword
// with a fresh salt, and commits the new password hash and seed blob in
// one vault transaction, so login and seed encryption can never drift to
// different passwords.
func (c *Core) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if err := auth.ValidatePasswordStrength(newPassword); err != nil {
		return err
	}

	user, err := c.Vault.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	ok, err := auth.VerifyPassword(oldPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return coreerr.New(coreerr.InvalidCredentials, "invalid username or password")
	}

	encSeed, keySalt, err := c.Vault.GetEncryptedSeed(ctx, user.ID)
	if err != nil {
		return err
	}
	oldKey := primitive.PBKDF2SHA256([]byte(oldPassword), keySalt, primitive.IterWalletKey, 32)
	defer primitive.SecureZero(oldKey)

	seed, err := vault.DecryptBlob(oldKey, encSeed)
	if err != nil {
		return err
	}
	defer primitive.SecureZero(seed)

	newSalt, err := primitive.RandomBytes(walletKeySaltLen)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "key salt generation failed", err)
	}
	newKey := primitive.PBKDF2SHA256([]byte(newPassword), newSalt, primitive.IterWalletKey, 32)
	defer primitive.SecureZero(newKey)

	newEncSeed, err := vault.EncryptBlob(newKey, seed)
	if err != nil {
		return err
	}
	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := c.Vault.UpdateCredentials(ctx, user.ID, newHash, newEncSeed, newSalt); err != nil {
		return err
	}
	c.Vault.Audit("change_password", fmt.Sprintf("user_id=%d", user.ID))
	return nil
}
