// Package core wires every subsystem (primitives, encoding, BIP-39,
// HD key tree, address codec, transaction engines, vault, auth) behind a
// single constructed value: one Core a caller builds once per process,
// passing explorer/mailer collaborators in at construction, instead of
// package-level singletons.
package core

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/erickherrera/CriptoGualet-sub001/internal/auth"
	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
	"github.com/erickherrera/CriptoGualet-sub001/internal/explorer"
	"github.com/erickherrera/CriptoGualet-sub001/internal/hdkey"
	"github.com/erickherrera/CriptoGualet-sub001/internal/primitive"
	"github.com/erickherrera/CriptoGualet-sub001/internal/vault"
)

// Core is the process-wide orchestrator: the vault handle, the in-memory
// rate limiter and verification-code stores, the external collaborators,
// and a cache of per-session decrypted master keys.
//
// A session's master key is populated once at Login (the seed is decrypted
// there, under the login password, and never again for the rest of that
// session) and wiped the moment the session is revoked or found expired.
type Core struct {
	Vault        *vault.Store
	log          *zap.SugaredLogger
	rateLimiter  *auth.RateLimiter
	verification *auth.VerificationStore
	btcExplorer  explorer.BitcoinExplorer
	evmExplorer  explorer.EVMExplorer
	mailer       explorer.Mailer

	mu         sync.Mutex
	masterKeys map[string]*hdkey.ExtendedKey
}

// New opens the vault at vaultPath (creating it if absent) and returns a
// ready Core. vaultKey is the vault-wide key Open validates; per-user
// wallet secrets are additionally protected by a password-derived key
// (see Register/Login), independent of vaultKey.
func New(ctx context.Context, vaultPath string, vaultKey []byte, log *zap.SugaredLogger,
	btcExplorer explorer.BitcoinExplorer, evmExplorer explorer.EVMExplorer, mailer explorer.Mailer) (*Core, error) {

	store, err := vault.Open(ctx, vaultPath, vaultKey, log)
	if err != nil {
		return nil, err
	}
	return &Core{
		Vault:        store,
		log:          log,
		rateLimiter:  auth.NewRateLimiter(),
		verification: auth.NewVerificationStore(),
		btcExplorer:  btcExplorer,
		evmExplorer:  evmExplorer,
		mailer:       mailer,
		masterKeys:   make(map[string]*hdkey.ExtendedKey),
	}, nil
}

// Close wipes every cached session master key and closes the vault.
func (c *Core) Close() error {
	c.mu.Lock()
	for id, k := range c.masterKeys {
		primitive.SecureZero(k.Key)
		delete(c.masterKeys, id)
	}
	c.mu.Unlock()
	return c.Vault.Close()
}

// cacheMasterKey stores master under sessionID, replacing (and wiping) any
// previous entry for that session.
func (c *Core) cacheMasterKey(sessionID string, master *hdkey.ExtendedKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if old, ok := c.masterKeys[sessionID]; ok {
		primitive.SecureZero(old.Key)
	}
	c.masterKeys[sessionID] = master
}

// masterKeyFor returns the cached master key for sessionID, or
// InvalidCredentials if none is cached (session never logged in on this
// process, or was already dropped by dropMasterKey).
func (c *Core) masterKeyFor(sessionID string) (*hdkey.ExtendedKey, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	k, ok := c.masterKeys[sessionID]
	if !ok {
		return nil, coreerr.New(coreerr.InvalidCredentials, "no active key material cached for this session")
	}
	return k, nil
}

// dropMasterKey wipes and removes sessionID's cached key, called on logout
// and whenever Validate reports a session has expired.
func (c *Core) dropMasterKey(sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if k, ok := c.masterKeys[sessionID]; ok {
		primitive.SecureZero(k.Key)
		delete(c.masterKeys, sessionID)
	}
}

// requireActiveSession validates sessionID and returns its row, dropping
// the cached master key and returning InvalidCredentials if it is not
// ACTIVE.
func (c *Core) requireActiveSession(ctx context.Context, sessionID string) (*vault.Session, error) {
	sess, err := c.Vault.Validate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.State != vault.SessionActive {
		c.dropMasterKey(sessionID)
		return nil, coreerr.New(coreerr.InvalidCredentials, "session is not active")
	}
	return sess, nil
}
