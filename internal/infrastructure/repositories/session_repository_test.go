package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/RPleshkov/SessionVault/domain"
)

func seedSession(t *testing.T, repo domain.SessionRepository, userID, sessionID string, lastActive time.Time) {
	t.Helper()

	err := repo.Create(context.Background(), &domain.Session{
		UserID:     userID,
		SessionID:  sessionID,
		UserAgent:  "test-agent",
		LastActive: lastActive,
		ExpiresAt:  lastActive.Add(720 * time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to seed session %s: %v", sessionID, err)
	}
}

func TestSessionRepositoryImpl_ListByUser_Ordering(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of order; listing must come back oldest-activity first.
	seedSession(t, repo, "user-1", "sid-b", base.Add(time.Minute))
	seedSession(t, repo, "user-1", "sid-c", base.Add(2*time.Minute))
	seedSession(t, repo, "user-1", "sid-a", base)
	seedSession(t, repo, "user-2", "sid-x", base)

	sessions, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i, want := range []string{"sid-a", "sid-b", "sid-c"} {
		if sessions[i].SessionID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, sessions[i].SessionID)
		}
	}
}

func TestSessionRepositoryImpl_Replace(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedSession(t, repo, "user-1", "sid-old", base)

	newActive := base.Add(time.Hour)
	err := repo.Replace(ctx, "sid-old", "sid-new", "new-agent", newActive, newActive.Add(720*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Old id is gone, new id resolves to the same (rotated) row.
	if _, err := repo.FindBySessionID(ctx, "sid-old"); err != domain.ErrSessionNotFound {
		t.Errorf("expected old session id to be gone, got %v", err)
	}
	rotated, err := repo.FindBySessionID(ctx, "sid-new")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rotated.UserAgent != "new-agent" {
		t.Errorf("expected user agent to be replaced, got %q", rotated.UserAgent)
	}
	if !rotated.LastActive.Equal(newActive) {
		t.Errorf("expected last-active %v, got %v", newActive, rotated.LastActive)
	}

	// The row is reused, not recreated.
	sessions, err := repo.ListByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 1 {
		t.Errorf("expected 1 session after replace, got %d", len(sessions))
	}
}

func TestSessionRepositoryImpl_Replace_MissingRowIsNoOp(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	now := time.Now().UTC()

	err := repo.Replace(context.Background(), "never-existed", "sid-new", "agent", now, now.Add(time.Hour))
	if err != nil {
		t.Errorf("expected silent no-op, got %v", err)
	}
	if _, err := repo.FindBySessionID(context.Background(), "sid-new"); err != domain.ErrSessionNotFound {
		t.Errorf("expected no row to appear, got %v", err)
	}
}

func TestSessionRepositoryImpl_Delete_Idempotent(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	ctx := context.Background()

	seedSession(t, repo, "user-1", "sid-a", time.Now().UTC())

	if err := repo.Delete(ctx, "sid-a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Deleting again, and deleting something that never existed, are fine.
	if err := repo.Delete(ctx, "sid-a"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
	if err := repo.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

func TestSessionRepositoryImpl_DeleteOldest(t *testing.T) {
	repo := NewSessionRepository(setupTestDB(t))
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	seedSession(t, repo, "user-1", "sid-newer", base.Add(time.Minute))
	seedSession(t, repo, "user-1", "sid-oldest", base)
	seedSession(t, repo, "user-2", "sid-other-user", base.Add(-time.Hour))

	if err := repo.DeleteOldest(ctx, "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindBySessionID(ctx, "sid-oldest"); err != domain.ErrSessionNotFound {
		t.Errorf("expected oldest session removed, got %v", err)
	}
	if _, err := repo.FindBySessionID(ctx, "sid-newer"); err != nil {
		t.Errorf("expected newer session to survive, got %v", err)
	}
	if _, err := repo.FindBySessionID(ctx, "sid-other-user"); err != nil {
		t.Errorf("expected other user's session untouched, got %v", err)
	}

	// No sessions for the user is not an error.
	if err := repo.DeleteOldest(ctx, "user-without-sessions"); err != nil {
		t.Errorf("expected no error for empty user, got %v", err)
	}
}
