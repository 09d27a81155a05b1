package vault

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	logger := zap.NewNop().Sugar()
	s, err := Open(context.Background(), filepath.Join(dir, "vault.db"), key, logger)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAndReadUserRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	seed, err := EncryptBlob(make([]byte, 32), []byte("seed-bytes"))
	if err != nil {
		t.Fatal(err)
	}

	uid, err := s.InsertUserWithWallet(ctx, "alice", "alice@example.com", "pbkdf2-sha256$100000$salt$dk", seed, []byte("salt-bytes"))
	if err != nil {
		t.Fatalf("InsertUserWithWallet: %v", err)
	}

	u, err := s.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if u.ID != uid || u.Username != "alice" {
		t.Errorf("got %+v", u)
	}

	blob, _, err := s.GetEncryptedSeed(ctx, uid)
	if err != nil {
		t.Fatal(err)
	}
	plaintext, err := DecryptBlob(make([]byte, 32), blob)
	if err != nil {
		t.Fatal(err)
	}
	if string(plaintext) != "seed-bytes" {
		t.Errorf("decrypted seed = %q, want %q", plaintext, "seed-bytes")
	}

	if err := s.DeleteUser(ctx, "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetUserByUsername(ctx, "alice"); err == nil {
		t.Errorf("expected NotFound after delete")
	}
}

func TestDuplicateUsernameIsAlreadyExists(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.InsertUserWithWallet(ctx, "bob", "bob@example.com", "hash", []byte("x"), []byte("salt")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertUserWithWallet(ctx, "bob", "bob2@example.com", "hash", []byte("x"), []byte("salt")); err == nil {
		t.Errorf("expected AlreadyExists for duplicate username")
	}
}

func TestIntegrityCheckPassesOnFreshVault(t *testing.T) {
	s := testStore(t)
	if err := s.IntegrityCheck(context.Background()); err != nil {
		t.Errorf("IntegrityCheck on a fresh vault should pass: %v", err)
	}
}

func TestSessionSlidesThenRevokes(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	uid, err := s.InsertUserWithWallet(ctx, "carol", "carol@example.com", "hash", []byte("x"), []byte("salt"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.CreateSession(ctx, "sess-1", uid); err != nil {
		t.Fatal(err)
	}

	sess, err := s.Validate(ctx, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if sess.State != SessionActive {
		t.Errorf("state after first validate = %s, want ACTIVE", sess.State)
	}
	if time.Until(sess.ExpiresAt) < SessionSlide-time.Second {
		t.Errorf("expected expiresAt to be slid ~15min out, got %v", sess.ExpiresAt)
	}

	if err := s.Revoke(ctx, "sess-1"); err != nil {
		t.Fatal(err)
	}
	sess, err = s.Validate(ctx, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if sess.State != SessionRevoked {
		t.Errorf("state after revoke = %s, want REVOKED", sess.State)
	}
}

func TestBackupProducesIntegrityCheckedCopy(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	if _, err := s.InsertUserWithWallet(ctx, "dave", "dave@example.com", "hash", []byte("x"), []byte("salt")); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	key := make([]byte, 32)
	if err := s.Backup(ctx, filepath.Join(dir, "backup.db"), key, zap.NewNop().Sugar()); err != nil {
		t.Fatalf("Backup: %v", err)
	}
}

func TestRotateKeyRequiresCurrentKey(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	curKey := make([]byte, 32)
	for i := range curKey {
		curKey[i] = byte(i)
	}
	newKey := make([]byte, 32)
	for i := range newKey {
		newKey[i] = byte(255 - i)
	}

	if err := s.RotateKey(ctx, newKey, newKey); err == nil {
		t.Errorf("RotateKey with the wrong current key succeeded")
	}
	if err := s.RotateKey(ctx, curKey, newKey); err != nil {
		t.Fatalf("RotateKey: %v", err)
	}
	// The old key no longer rotates; the new one does.
	if err := s.RotateKey(ctx, curKey, curKey); err == nil {
		t.Errorf("RotateKey accepted the pre-rotation key")
	}
	if err := s.RotateKey(ctx, newKey, curKey); err != nil {
		t.Errorf("RotateKey with the rotated-in key: %v", err)
	}
}

func TestERC20TokenRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if _, err := s.AddERC20Token(ctx, 1, "0x6B175474E89094C44Da98b954EedeAC495271d0F", "DAI", 18); err != nil {
		t.Fatalf("AddERC20Token: %v", err)
	}
	if _, err := s.AddERC20Token(ctx, 1, "0x6B175474E89094C44Da98b954EedeAC495271d0F", "DAI", 18); err == nil {
		t.Errorf("expected AlreadyExists for a duplicate (chain, contract) pair")
	}

	tokens, err := s.ListERC20Tokens(ctx, 1)
	if err != nil {
		t.Fatalf("ListERC20Tokens: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Symbol != "DAI" || tokens[0].Decimals != 18 {
		t.Errorf("ListERC20Tokens = %+v", tokens)
	}
	if tokens, _ := s.ListERC20Tokens(ctx, 137); len(tokens) != 0 {
		t.Errorf("expected no tokens on an untouched chain, got %+v", tokens)
	}
}

func TestUpdateCredentialsIsAtomic(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	uid, err := s.InsertUserWithWallet(ctx, "heidi", "heidi@example.com", "old-hash", []byte("old-seed"), []byte("old-salt"))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateCredentials(ctx, uid, "new-hash", []byte("new-seed"), []byte("new-salt")); err != nil {
		t.Fatalf("UpdateCredentials: %v", err)
	}

	u, err := s.GetUserByUsername(ctx, "heidi")
	if err != nil {
		t.Fatal(err)
	}
	if u.PasswordHash != "new-hash" {
		t.Errorf("password hash = %q, want new-hash", u.PasswordHash)
	}
	seed, salt, err := s.GetEncryptedSeed(ctx, uid)
	if err != nil {
		t.Fatal(err)
	}
	if string(seed) != "new-seed" || string(salt) != "new-salt" {
		t.Errorf("seed/salt = %q/%q, want new-seed/new-salt", seed, salt)
	}

	if err := s.UpdateCredentials(ctx, uid+99, "x", []byte("y"), []byte("z")); err == nil {
		t.Errorf("expected NotFound for a missing user")
	}
}

func TestAuditLogSanitizesNewlines(t *testing.T) {
	s := testStore(t)
	s.Audit("test_op", "line1\nline2\rline3")

	entries := s.RecentAudit(1)
	if len(entries) != 1 {
		t.Fatalf("RecentAudit returned %d entries, want 1", len(entries))
	}
	if entries[0].Detail != "line1\\nline2\\rline3" {
		t.Errorf("Detail = %q, want newlines escaped", entries[0].Detail)
	}
}
