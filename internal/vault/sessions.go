package vault

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/erickherrera/CriptoGualet-sub001/internal/coreerr"
)

// SessionState is one of the session lifecycle states:
// NEW → ACTIVE → (EXPIRED | REVOKED).
type SessionState string

const (
	SessionNew     SessionState = "NEW"
	SessionActive  SessionState = "ACTIVE"
	SessionExpired SessionState = "EXPIRED"
	SessionRevoked SessionState = "REVOKED"
)

// SessionSlide is the sliding-expiry window applied on every successful
// validate.
const SessionSlide = 15 * time.Minute

// Session is the `sessions` table row.
type Session struct {
	ID           string
	UserID       int64
	State        SessionState
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActivity time.Time
}

// CreateSession inserts a new session in the NEW state, expiring
// SessionSlide from now.
func (s *Store) CreateSession(ctx context.Context, id string, userID int64) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, state, created_at, expires_at, last_activity) VALUES (?, ?, ?, ?, ?, ?)`,
		id, userID, string(SessionNew), now.Format(time.RFC3339), now.Add(SessionSlide).Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "create session", err)
	}
	return nil
}

// Validate transitions a session through its state machine: NEW → ACTIVE
// on first call; EXPIRED if now is past expiresAt; otherwise slides
// expiresAt and records lastActivity. Terminal states (EXPIRED, REVOKED)
// are returned unchanged and do not slide.
func (s *Store) Validate(ctx context.Context, id string) (*Session, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()

	sess, err := s.readSession(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	switch sess.State {
	case SessionRevoked, SessionExpired:
		return sess, nil
	case SessionNew, SessionActive:
		if now.After(sess.ExpiresAt) {
			if err := s.setSessionState(ctx, id, SessionExpired); err != nil {
				return nil, err
			}
			sess.State = SessionExpired
			return sess, nil
		}
		newExpiry := now.Add(SessionSlide)
		if _, err := s.db.ExecContext(ctx,
			`UPDATE sessions SET state = ?, expires_at = ?, last_activity = ? WHERE id = ?`,
			string(SessionActive), newExpiry.Format(time.RFC3339), now.Format(time.RFC3339), id); err != nil {
			return nil, coreerr.Wrap(coreerr.SystemError, "slide session", err)
		}
		sess.State = SessionActive
		sess.ExpiresAt = newExpiry
		sess.LastActivity = now
		return sess, nil
	default:
		return sess, nil
	}
}

// Revoke transitions a session to REVOKED, the logout terminal state.
func (s *Store) Revoke(ctx context.Context, id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	ctx, cancel := execTimeout(ctx)
	defer cancel()
	return s.setSessionState(ctx, id, SessionRevoked)
}

func (s *Store) setSessionState(ctx context.Context, id string, state SessionState) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET state = ? WHERE id = ?`, string(state), id)
	if err != nil {
		return coreerr.Wrap(coreerr.SystemError, "update session state", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return coreerr.New(coreerr.NotFound, "session not found")
	}
	return nil
}

func (s *Store) readSession(ctx context.Context, id string) (*Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, state, created_at, expires_at, last_activity FROM sessions WHERE id = ?`, id)

	var sess Session
	var state, createdAt, expiresAt, lastActivity string
	if err := row.Scan(&sess.ID, &sess.UserID, &state, &createdAt, &expiresAt, &lastActivity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, coreerr.New(coreerr.NotFound, "session not found")
		}
		return nil, coreerr.Wrap(coreerr.SystemError, "query session", err)
	}
	sess.State = SessionState(state)
	sess.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	sess.ExpiresAt, _ = time.Parse(time.RFC3339, expiresAt)
	sess.LastActivity, _ = time.Parse(time.RFC3339, lastActivity)
	sess.CreatedAt = sess.CreatedAt.UTC()
	sess.ExpiresAt = sess.ExpiresAt.UTC()
	sess.LastActivity = sess.LastActivity.UTC()
	return &sess, nil
}
