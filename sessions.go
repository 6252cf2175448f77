package clinicfolio

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"time"

	"github.com/rs/zerolog/log"
)

// SessionTokenBytes is the entropy of a session token; tokens are hex-encoded
// so the cookie value is twice this length.
const SessionTokenBytes = 32

// CreateSession issues a new opaque session token for userID, valid for ttl.
func (s *Store) CreateSession(userID int64, ttl time.Duration) (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)
	expiresAt := time.Now().Add(ttl).Unix()
	_, err := s.db.Exec(`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt)
	if err != nil {
		return "", err
	}
	return token, nil
}

// GetSession resolves a token to a live session. The query is time-gated:
// an expired row that the sweeper has not removed yet is treated as absent,
// so callers never see a stale session.
func (s *Store) GetSession(token string) (Session, error) {
	var sess Session
	err := s.db.Get(&sess,
		`SELECT token, user_id, expires_at FROM sessions WHERE token = ? AND expires_at > ?`,
		token, time.Now().Unix())
	return sess, err
}

// DeleteSession removes a session row. Deleting a token that does not exist
// is a no-op, so logout is idempotent.
func (s *Store) DeleteSession(token string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// CleanupExpiredSessions deletes every row whose expiry has passed and
// returns the number of rows removed.
func (s *Store) CleanupExpiredSessions() (int64, error) {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// startSessionSweeper runs CleanupExpiredSessions on an hourly ticker. It is
// fire-and-forget: the sweep only deletes rows that are already invalid, so
// it is safe to run concurrently with request handling.
func (s *Store) startSessionSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		for range ticker.C {
			n, err := s.CleanupExpiredSessions()
			if err != nil {
				log.Error().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("removed", n).Msg("swept expired sessions")
			}
		}
	}()
}

// ErrNoSession aliases the store-level "not found" error for auth callers.
var ErrNoSession = sql.ErrNoRows
