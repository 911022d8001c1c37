package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/wricardo/freecell/game/engine"
)

func freshDeal() *engine.DealConfig {
	return &engine.DealConfig{
		Name:        "fresh",
		Description: "Test deal",
		Order:       engine.OrderFresh,
	}
}

func newTestManager() *Manager {
	logger, _ := test.NewNullLogger()
	return NewManager(logger)
}

func TestManager_Create(t *testing.T) {
	manager := newTestManager()
	deal := freshDeal()

	t.Run("create with custom ID", func(t *testing.T) {
		session, err := manager.Create("test-session", "fresh", deal)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if session.ID != "test-session" {
			t.Errorf("Expected session ID 'test-session', got '%s'", session.ID)
		}
		if session.Game == nil {
			t.Fatal("Expected game to be initialized")
		}
		if session.Game.Len() != 1 {
			t.Errorf("Expected only the dealt snapshot, got %d", session.Game.Len())
		}
		if session.DealID != "fresh" {
			t.Errorf("Expected deal ID 'fresh', got '%s'", session.DealID)
		}
	})

	t.Run("create with auto-generated ID", func(t *testing.T) {
		session, err := manager.Create("", "fresh", deal)
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if len(session.ID) != idLength {
			t.Errorf("Expected %d-character session ID, got %q", idLength, session.ID)
		}
	})

	t.Run("duplicate session ID", func(t *testing.T) {
		_, err := manager.Create("test-session", "fresh", deal)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
		}
	})

	t.Run("case-insensitive duplicate check", func(t *testing.T) {
		_, err := manager.Create("TEST-SESSION", "fresh", deal)
		if !errors.Is(err, ErrSessionAlreadyExists) {
			t.Errorf("Expected ErrSessionAlreadyExists for case variant, got %v", err)
		}
	})

	t.Run("invalid ID", func(t *testing.T) {
		_, err := manager.Create("a/b", "fresh", deal)
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("invalid deal", func(t *testing.T) {
		invalid := freshDeal()
		invalid.Name = ""
		_, err := manager.Create("invalid-test", "", invalid)
		if err == nil {
			t.Error("Expected error for invalid deal")
		}
		if manager.sessionExists("invalid-test") {
			t.Error("Failed deal should not leave a session behind")
		}
	})
}

func TestManager_Get(t *testing.T) {
	manager := newTestManager()

	created, err := manager.Create("get-test", "fresh", freshDeal())
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("get existing session", func(t *testing.T) {
		session, err := manager.Get("get-test")
		if err != nil {
			t.Fatalf("Failed to get session: %v", err)
		}
		if session != created {
			t.Errorf("Expected the stored session")
		}
	})

	t.Run("case-insensitive get", func(t *testing.T) {
		session, err := manager.Get("GET-TEST")
		if err != nil {
			t.Fatalf("Failed to get session with different case: %v", err)
		}
		if session.ID != created.ID {
			t.Errorf("Expected same session regardless of case")
		}
	})

	t.Run("get non-existent session", func(t *testing.T) {
		_, err := manager.Get("non-existent")
		if !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})
}

func TestManager_Delete(t *testing.T) {
	manager := newTestManager()
	deal := freshDeal()

	if _, err := manager.Create("delete-test", "fresh", deal); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	t.Run("delete existing session", func(t *testing.T) {
		if err := manager.Delete("delete-test"); err != nil {
			t.Fatalf("Failed to delete session: %v", err)
		}
		if _, err := manager.Get("delete-test"); !errors.Is(err, ErrSessionNotFound) {
			t.Error("Expected session to be deleted")
		}
	})

	t.Run("delete non-existent session", func(t *testing.T) {
		if err := manager.Delete("non-existent"); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("Expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("case-insensitive delete", func(t *testing.T) {
		if _, err := manager.Create("case-test", "fresh", deal); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if err := manager.Delete("CASE-TEST"); err != nil {
			t.Fatalf("Failed to delete with different case: %v", err)
		}
		if manager.Count() != 0 {
			t.Errorf("Expected no sessions, got %d", manager.Count())
		}
	})
}

func TestManager_List(t *testing.T) {
	manager := newTestManager()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	manager.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	for _, id := range []string{"list-1", "list-2", "list-3"} {
		if _, err := manager.Create(id, "fresh", freshDeal()); err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
	}

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Fatalf("Expected 3 sessions, got %d", len(sessions))
	}
	for i, want := range []string{"list-1", "list-2", "list-3"} {
		if sessions[i].ID != want {
			t.Errorf("sessions[%d] = %s, want %s", i, sessions[i].ID, want)
		}
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := newTestManager()

	active, _ := manager.Create("active", "fresh", freshDeal())
	expired, _ := manager.Create("expired", "fresh", freshDeal())

	expired.LastAccessedAt = time.Now().Add(-2 * time.Hour)
	active.LastAccessedAt = time.Now()

	deleted := manager.CleanupExpiredSessions(1 * time.Hour)
	if deleted != 1 {
		t.Errorf("Expected 1 session to be deleted, got %d", deleted)
	}

	if _, err := manager.Get("expired"); !errors.Is(err, ErrSessionNotFound) {
		t.Error("Expected expired session to be deleted")
	}
	if _, err := manager.Get("active"); err != nil {
		t.Error("Expected active session to still exist")
	}
}

func TestManager_StartCleanup(t *testing.T) {
	manager := newTestManager()

	stale, _ := manager.Create("stale", "fresh", freshDeal())
	stale.LastAccessedAt = time.Now().Add(-time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.StartCleanup(ctx, 5*time.Millisecond, time.Minute)

	deadline := time.Now().Add(2 * time.Second)
	for manager.Count() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("stale session was never removed")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestManager_UpdateLastAccessed(t *testing.T) {
	manager := newTestManager()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	manager.now = func() time.Time { return base }

	session, _ := manager.Create("access-test", "fresh", freshDeal())

	manager.now = func() time.Time { return base.Add(time.Minute) }
	if err := manager.UpdateLastAccessed("access-test"); err != nil {
		t.Fatalf("Failed to update last accessed: %v", err)
	}
	if !session.LastAccessedAt.Equal(base.Add(time.Minute)) {
		t.Errorf("Expected LastAccessedAt to be updated, got %v", session.LastAccessedAt)
	}

	if err := manager.UpdateLastAccessed("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := newTestManager()
	deal := freshDeal()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			sessionID := ""
			if id%2 == 0 {
				sessionID = fmt.Sprintf("s-%d", id%10)
			}
			_, err := manager.Create(sessionID, "fresh", deal)
			if err != nil && !errors.Is(err, ErrSessionAlreadyExists) {
				errs <- err
			}
			manager.List()
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Unexpected error during concurrent access: %v", err)
	}

	// 50 generated IDs plus 5 distinct fixed ones
	if got := manager.Count(); got != 55 {
		t.Errorf("Expected 55 sessions, got %d", got)
	}
}

func TestManager_SessionIsolation(t *testing.T) {
	manager := newTestManager()

	session1, _ := manager.Create("iso-1", "fresh", freshDeal())
	session2, _ := manager.Create("iso-2", "fresh", freshDeal())

	if err := session1.Game.Apply(engine.Move{From: engine.CascadeAt(3), To: engine.FoundationAt(0)}); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	current := session2.Game.Current()
	if current.FoundationCount() != 0 {
		t.Error("Session 2 should not be affected by session 1 moves")
	}
	if session2.Game.CanUndo() {
		t.Error("Session 2 should have no history")
	}
}

func TestManager_SessionIDGeneration(t *testing.T) {
	manager := newTestManager()

	generatedIDs := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := manager.Create("", "fresh", freshDeal())
		if err != nil {
			t.Fatalf("Failed to create session: %v", err)
		}
		if generatedIDs[session.ID] {
			t.Errorf("Duplicate session ID generated: %s", session.ID)
		}
		generatedIDs[session.ID] = true
	}
}
