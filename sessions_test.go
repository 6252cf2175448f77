package clinicfolio

import (
	"errors"
	"testing"
	"time"
)

func seedAdmin(t *testing.T, s *Store) int64 {
	t.Helper()
	id, err := s.CreateAdminUser("admin", "$2a$10$notarealhashbutvalidlength1234567890123456789012345")
	if err != nil {
		t.Fatalf("CreateAdminUser failed: %v", err)
	}
	return id
}

func TestCreateAndGetSession(t *testing.T) {
	s := setupTestStore(t)
	userID := seedAdmin(t, s)

	token, err := s.CreateSession(userID, 24*time.Hour)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if len(token) != SessionTokenBytes*2 {
		t.Errorf("token length = %d, want %d hex chars", len(token), SessionTokenBytes*2)
	}

	sess, err := s.GetSession(token)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if sess.UserID != userID {
		t.Errorf("user id = %d, want %d", sess.UserID, userID)
	}

	// Expiry should land about 24h out.
	want := time.Now().Add(24 * time.Hour).Unix()
	if diff := sess.ExpiresAt - want; diff < -5 || diff > 5 {
		t.Errorf("expires_at off by %d seconds", diff)
	}
}

func TestGetSessionExpiredTreatedAsAbsent(t *testing.T) {
	s := setupTestStore(t)
	userID := seedAdmin(t, s)

	// Already expired at creation; the sweep has not run, but the
	// time-gated query must still refuse it.
	token, err := s.CreateSession(userID, -time.Minute)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := s.GetSession(token); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoRows for expired session, got %v", err)
	}
}

func TestDeleteSessionIdempotent(t *testing.T) {
	s := setupTestStore(t)
	userID := seedAdmin(t, s)

	token, err := s.CreateSession(userID, time.Hour)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := s.DeleteSession(token); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if err := s.DeleteSession(token); err != nil {
		t.Fatalf("second DeleteSession should be a no-op, got: %v", err)
	}
	if _, err := s.GetSession(token); !errors.Is(err, ErrNoSession) {
		t.Errorf("deleted session still resolvable: %v", err)
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	s := setupTestStore(t)
	userID := seedAdmin(t, s)

	expired, err := s.CreateSession(userID, -time.Minute)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	live, err := s.CreateSession(userID, time.Hour)
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	n, err := s.CleanupExpiredSessions()
	if err != nil {
		t.Fatalf("CleanupExpiredSessions failed: %v", err)
	}
	if n != 1 {
		t.Errorf("removed %d rows, want 1", n)
	}

	if _, err := s.GetSession(live); err != nil {
		t.Errorf("live session deleted by sweep: %v", err)
	}
	var count int
	if err := s.db.Get(&count, `SELECT COUNT(*) FROM sessions WHERE token = ?`, expired); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Error("expired session row not removed")
	}
}
