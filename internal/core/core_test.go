package core

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/erickherrera/CriptoGualet-sub001/internal/btctx"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/explorer"
)

// fakeMailer records every sent message instead of dialing out, letting
// tests read the verification code straight back out.
type fakeMailer struct {
	lastBody string
}

func (m *fakeMailer) SendMail(ctx context.Context, to, subject, body string) error {
	m.lastBody = body
	return nil
}

// fakeBTCExplorer and fakeEVMExplorer satisfy their interfaces with
// hardcoded responses; BuildAndSignBTCTx/BuildAndSignEVMTx take their UTXO
// sets and gas parameters directly rather than through the core, so these
// are unused zero values at this stage of testing — kept only so New's
// constructor signature is exercised with real collaborator values instead
// of nil.
type fakeBTCExplorer struct{}

func (fakeBTCExplorer) GetUTXOs(ctx context.Context, address string) ([]btctx.UTXO, error) {
	return nil, nil
}
func (fakeBTCExplorer) GetTxHistory(ctx context.Context, address string, limit int) ([]explorer.TxSummary, error) {
	return nil, nil
}
func (fakeBTCExplorer) EstimateFeePerByte(ctx context.Context) (uint64, error) { return 1, nil }
func (fakeBTCExplorer) BroadcastRaw(ctx context.Context, rawHex string) (string, error) {
	return "", nil
}

type fakeEVMExplorer struct{}

func (fakeEVMExplorer) GetBalance(ctx context.Context, address string) (string, error) {
	return "0", nil
}
func (fakeEVMExplorer) GetTxCount(ctx context.Context, address string) (uint64, error) { return 0, nil }
func (fakeEVMExplorer) GetGasOracle(ctx context.Context) (explorer.GasOracle, error) {
	return explorer.GasOracle{}, nil
}
func (fakeEVMExplorer) GetHistory(ctx context.Context, address string, limit int) ([]explorer.TxSummary, error) {
	return nil, nil
}
func (fakeEVMExplorer) SendRawTransaction(ctx context.Context, rawHex string) (string, error) {
	return "", nil
}

func testCore(t *testing.T) (*Core, *fakeMailer) {
	t.Helper()
	dir := t.TempDir()
	vaultKey := make([]byte, 32)
	mailer := &fakeMailer{}

	c, err := New(context.Background(), filepath.Join(dir, "vault.db"), vaultKey, zap.NewNop().Sugar(),
		fakeBTCExplorer{}, fakeEVMExplorer{}, mailer)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, mailer
}

const testPassword = "Correct-Horse9!"

func registerAndVerify(t *testing.T, c *Core, mailer *fakeMailer, username string) string {
	t.Helper()
	ctx := context.Background()

	mnemonic, err := c.Register(ctx, username, username+"@example.com", testPassword)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(mnemonic) == 0 {
		t.Fatalf("expected a non-empty mnemonic")
	}

	code := mailer.lastBody[len(mailer.lastBody)-len("000000")-len(". It expires in 10 minutes."):]
	code = code[:6]
	if err := c.VerifyEmailCode(ctx, username, code); err != nil {
		t.Fatalf("VerifyEmailCode: %v", err)
	}
	return mnemonic
}

func TestRegisterLoginDeriveRoundTrip(t *testing.T) {
	c, mailer := testCore(t)
	ctx := context.Background()

	registerAndVerify(t, c, mailer, "alice")

	sessionID, err := c.Login(ctx, "alice", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if len(sessionID) == 0 {
		t.Fatalf("expected a non-empty session id")
	}

	addr1, err := c.DeriveAddress(ctx, sessionID, "btc", 0, 0, 0)
	if err != nil {
		t.Fatalf("DeriveAddress btc: %v", err)
	}
	addr2, err := c.DeriveAddress(ctx, sessionID, "btc", 0, 0, 0)
	if err != nil {
		t.Fatalf("DeriveAddress btc (again): %v", err)
	}
	if addr1 != addr2 {
		t.Errorf("deriving the same path twice gave different addresses: %q vs %q", addr1, addr2)
	}

	ethAddr, err := c.DeriveAddress(ctx, sessionID, "eth", 0, 0, 0)
	if err != nil {
		t.Fatalf("DeriveAddress eth: %v", err)
	}
	if len(ethAddr) != 42 {
		t.Errorf("eth address %q has wrong length", ethAddr)
	}

	if err := c.Logout(ctx, sessionID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := c.DeriveAddress(ctx, sessionID, "btc", 0, 0, 1); err == nil {
		t.Errorf("expected DeriveAddress to fail after logout")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	c, mailer := testCore(t)
	ctx := context.Background()
	registerAndVerify(t, c, mailer, "bob")

	if _, err := c.Login(ctx, "bob", "totally-wrong-password"); !coreerr.Is(err, coreerr.InvalidCredentials) {
		t.Errorf("Login with wrong password = %v, want InvalidCredentials", err)
	}
}

func TestLoginRequiresEmailVerification(t *testing.T) {
	c, _ := testCore(t)
	ctx := context.Background()

	if _, err := c.Register(ctx, "carol", "carol@example.com", testPassword); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := c.Login(ctx, "carol", testPassword); !coreerr.Is(err, coreerr.RequiresEmailVerification) {
		t.Errorf("Login before verification = %v, want RequiresEmailVerification", err)
	}
}

func TestRevealSeedAndRestoreFromSeed(t *testing.T) {
	c, mailer := testCore(t)
	ctx := context.Background()
	mnemonic := registerAndVerify(t, c, mailer, "dave")

	seedHex, err := c.RevealSeed(ctx, "dave", testPassword)
	if err != nil {
		t.Fatalf("RevealSeed: %v", err)
	}
	if len(seedHex) == 0 {
		t.Fatalf("expected a non-empty seed hex")
	}

	if err := c.RestoreFromSeed(ctx, "dave", mnemonic, "", "totally-wrong-password"); !coreerr.Is(err, coreerr.InvalidCredentials) {
		t.Errorf("RestoreFromSeed with wrong password = %v, want InvalidCredentials", err)
	}

	if err := c.RestoreFromSeed(ctx, "dave", mnemonic, "", testPassword); err != nil {
		t.Fatalf("RestoreFromSeed: %v", err)
	}

	if _, err := c.Login(ctx, "dave", testPassword); err != nil {
		t.Errorf("Login with unchanged password after restore: %v", err)
	}

	seedHexAfter, err := c.RevealSeed(ctx, "dave", testPassword)
	if err != nil {
		t.Fatalf("RevealSeed after restore: %v", err)
	}
	if seedHexAfter != seedHex {
		t.Errorf("restored seed = %s, want it to match the seed derived from the restored mnemonic (%s)", seedHexAfter, seedHex)
	}
}

func TestDeriveBatchStopsOnCancel(t *testing.T) {
	c, mailer := testCore(t)
	ctx := context.Background()
	registerAndVerify(t, c, mailer, "erin")
	sessionID, err := c.Login(ctx, "erin", testPassword)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	calls := 0
	addrs, err := c.DeriveBatch(ctx, sessionID, "btc", 0, 0, 0, 10, func() bool {
		calls++
		return calls > 3
	})
	if err != nil {
		t.Fatalf("DeriveBatch: %v", err)
	}
	if len(addrs) != 3 {
		t.Errorf("DeriveBatch with cancel after 3 calls returned %d addresses, want 3", len(addrs))
	}
}

func TestTwoFactorLoginFlow(t *testing.T) {
	c, mailer := testCore(t)
	ctx := context.Background()
	registerAndVerify(t, c, mailer, "frank")

	if err := c.SetTwoFactor(ctx, "frank", testPassword, true); err != nil {
		t.Fatalf("SetTwoFactor: %v", err)
	}

	if _, err := c.Login(ctx, "frank", testPassword); !coreerr.Is(err, coreerr.RequiresEmailVerification) {
		t.Fatalf("Login with 2FA enabled = %v, want RequiresEmailVerification", err)
	}

	code := mailer.lastBody[len(mailer.lastBody)-len("000000")-len(". It expires in 10 minutes."):]
	code = code[:6]

	if _, err := c.LoginWithCode(ctx, "frank", testPassword, "000000"); err == nil {
		t.Errorf("LoginWithCode with a wrong code succeeded")
	}
	sessionID, err := c.LoginWithCode(ctx, "frank", testPassword, code)
	if err != nil {
		t.Fatalf("LoginWithCode: %v", err)
	}
	if _, err := c.DeriveAddress(ctx, sessionID, "eth", 0, 0, 0); err != nil {
		t.Errorf("DeriveAddress after 2FA login: %v", err)
	}
}

func TestChangePasswordReEncryptsSeed(t *testing.T) {
	c, mailer := testCore(t)
	ctx := context.Background()
	registerAndVerify(t, c, mailer, "grace")

	seedBefore, err := c.RevealSeed(ctx, "grace", testPassword)
	if err != nil {
		t.Fatalf("RevealSeed: %v", err)
	}

	const newPassword = "Other-Horse7?"
	if err := c.ChangePassword(ctx, "grace", "wrong-old-password", newPassword); !coreerr.Is(err, coreerr.InvalidCredentials) {
		t.Errorf("ChangePassword with wrong old password = %v, want InvalidCredentials", err)
	}
	if err := c.ChangePassword(ctx, "grace", testPassword, newPassword); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := c.Login(ctx, "grace", testPassword); !coreerr.Is(err, coreerr.InvalidCredentials) {
		t.Errorf("Login with the old password after change = %v, want InvalidCredentials", err)
	}
	if _, err := c.Login(ctx, "grace", newPassword); err != nil {
		t.Errorf("Login with the new password: %v", err)
	}

	seedAfter, err := c.RevealSeed(ctx, "grace", newPassword)
	if err != nil {
		t.Fatalf("RevealSeed after change: %v", err)
	}
	if seedAfter != seedBefore {
		t.Errorf("seed changed across a password change: %s vs %s", seedAfter, seedBefore)
	}
}

func TestRegisterRejectsBadUsername(t *testing.T) {
	c, _ := testCore(t)
	if _, err := c.Register(context.Background(), "x", "x@example.com", testPassword); !coreerr.Is(err, coreerr.InvalidInput) {
		t.Errorf("Register with a 1-char username = %v, want InvalidInput", err)
	}
}
