package store

import (
	"testing"
	"time"

	"github.com/parltrack/parltrack/internal/database"
	"github.com/parltrack/parltrack/internal/model"
)

func setupSessionTestDB(t *testing.T) *SessionStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSessionStore(db)
}

func TestSessionCreate(t *testing.T) {
	ss := setupSessionTestDB(t)

	sess, err := ss.Create(model.RoleMember, "m1", "Елена Смирнова", time.Hour)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if sess.Token == "" {
		t.Error("expected non-empty token")
	}
	if len(sess.Token) != 64 { // 32 bytes hex-encoded
		t.Errorf("token length = %d, want 64", len(sess.Token))
	}
	if sess.Role != model.RoleMember {
		t.Errorf("role = %q, want MEMBER", sess.Role)
	}
	if sess.MemberID != "m1" {
		t.Errorf("member_id = %q, want m1", sess.MemberID)
	}
	if sess.Name != "Елена Смирнова" {
		t.Errorf("name = %q, want Елена Смирнова", sess.Name)
	}
}

func TestSessionAdminHasNoMemberID(t *testing.T) {
	ss := setupSessionTestDB(t)

	sess, err := ss.Create(model.RoleAdmin, "", "Администратор", time.Hour)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if sess.Role != model.RoleAdmin {
		t.Errorf("role = %q, want ADMIN", sess.Role)
	}
	if sess.MemberID != "" {
		t.Errorf("member_id = %q, want empty", sess.MemberID)
	}
}

func TestSessionGetByToken(t *testing.T) {
	ss := setupSessionTestDB(t)

	created, _ := ss.Create(model.RoleMember, "m1", "Елена", time.Hour)

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess == nil {
		t.Fatal("expected session, got nil")
	}
	if sess.ID != created.ID {
		t.Errorf("id = %d, want %d", sess.ID, created.ID)
	}
}

func TestSessionGetByTokenNotFound(t *testing.T) {
	ss := setupSessionTestDB(t)

	sess, err := ss.GetByToken("nonexistent")
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for nonexistent token")
	}
}

func TestSessionExpired(t *testing.T) {
	ss := setupSessionTestDB(t)

	created, _ := ss.Create(model.RoleMember, "m1", "Елена", -time.Minute)

	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil for expired session")
	}
}

func TestSessionDelete(t *testing.T) {
	ss := setupSessionTestDB(t)

	created, _ := ss.Create(model.RoleMember, "m1", "Елена", time.Hour)

	if err := ss.Delete(created.Token); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	sess, err := ss.GetByToken(created.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if sess != nil {
		t.Error("expected nil after delete")
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	ss := setupSessionTestDB(t)

	ss.Create(model.RoleMember, "m1", "Елена", -time.Minute)
	ss.Create(model.RoleMember, "m2", "Александр", time.Hour)

	n, err := ss.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
}
