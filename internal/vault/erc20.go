package vault

import (
	"context"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// ERC20Token is an `erc20_tokens` row: pure metadata this wallet tracks for
// a chain, not an on-chain balance (the explorer collaborator owns reads
// and writes against the chain itself).
type ERC20Token struct {
	ID              int64
	ChainID         uint32
	ContractAddress string
	Symbol          string
	Decimals        int
}

// AddERC20Token registers a token's metadata for chainID, or AlreadyExists
// if (chainID, contractAddress) is already tracked.
func (s *Store) AddERC20Token(ctx context.Context, chainID uint32, contractAddress, symbol string, decimals int) (int64, error) {
	if err := validateParams([]interface{}{contractAddress, symbol}); err != nil {
		return 0, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO erc20_tokens (chain_id, contract_address, symbol, decimals) VALUES (?, ?, ?, ?)`,
		chainID, contractAddress, symbol, decimals)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, coreerr.New(coreerr.AlreadyExists, "token already tracked for this chain")
		}
		return 0, coreerr.Wrap(coreerr.SystemError, "insert erc20 token", err)
	}
	return res.LastInsertId()
}

// ListERC20Tokens returns every token tracked for chainID.
func (s *Store) ListERC20Tokens(ctx context.Context, chainID uint32) ([]ERC20Token, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, chain_id, contract_address, symbol, decimals FROM erc20_tokens WHERE chain_id = ? ORDER BY id`, chainID)
	if err != nil {
		return nil, coreerr.Wrap(coreerr.SystemError, "query erc20 tokens", err)
	}
	defer rows.Close()

	var out []ERC20Token
	for rows.Next() {
		var t ERC20Token
		if err := rows.Scan(&t.ID, &t.ChainID, &t.ContractAddress, &t.Symbol, &t.Decimals); err != nil {
			return nil, coreerr.Wrap(coreerr.SystemError, "scan erc20 token", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
