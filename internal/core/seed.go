package core

import (
	"context"
	"fmt"

	"github.com/erickherrera/CriptoGualet-sub001/internal/auth"
	"github.com/erickherrera/CriptoGualet-sub001/internal/bip39"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/encoding"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
	"github.com/erickherrera/CriptoGualet-sub001/internal/vault"
)

// RevealSeed re-verifies password and returns the user's decrypted wallet
// seed as hex. It is independent of any session — a caller with the
// account password can always reveal the seed.
func (c *Core) RevealSeed(ctx context.Context, username, password string) (seedHex string, err error) {
	user, err := c.Vault.GetUserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", coreerr.New(coreerr.InvalidCredentials, "invalid username or password")
	}

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

	c.Vault.Audit("reveal_seed", fmt.Sprintf("user_id=%d", user.ID))
	return encoding.HexEncode(seed), nil
}

// RestoreFromSeed re-authenticates username with password, validates
// mnemonic's checksum, and re-encrypts its derived seed under a freshly
// salted key for that same current password, atomically replacing the
// stored seed. The password both proves prior access and re-derives the
// encryption key; it is never treated as a new credential, and the login
// password hash is left untouched. Any active sessions for this user keep
// whatever master key they already cached; they are not proactively
// revoked.
func (c *Core) RestoreFromSeed(ctx context.Context, username, mnemonic, passphrase, password string) error {
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

	seed, err := bip39.SeedFromMnemonicChecked(mnemonic, passphrase)
	if err != nil {
		return err
	}
	defer primitive.SecureZero(seed)

	keySalt, err := primitive.RandomBytes(walletKeySaltLen)
	if err != nil {
		return err
	}
	walletKey := primitive.PBKDF2SHA256([]byte(password), keySalt, primitive.IterWalletKey, 32)
	defer primitive.SecureZero(walletKey)

	encSeed, err := vault.EncryptBlob(walletKey, seed)
	if err != nil {
		return err
	}

	if err := c.Vault.ReplaceEncryptedSeed(ctx, user.ID, encSeed, keySalt); err != nil {
		return err
	}

	c.Vault.Audit("restore_from_seed", fmt.Sprintf("user_id=%d", user.ID))
	return nil
}
