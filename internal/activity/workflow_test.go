package activity

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/parltrack/parltrack/internal/database"
	"github.com/parltrack/parltrack/internal/model"
	"github.com/parltrack/parltrack/internal/notify"
	"github.com/parltrack/parltrack/internal/score"
	"github.com/parltrack/parltrack/internal/store"
)

type fixture struct {
	members *store.MemberStore
	feed    *notify.Feed
	svc     *Service
}

func setup(t *testing.T) *fixture {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	members := store.NewMemberStore(db)
	feed := notify.NewFeed()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(members, notify.NewDispatcher(feed, nil), logger)
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("a%d", seq)
	}
	svc.now = func() time.Time {
		return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
	}

	return &fixture{members: members, feed: feed, svc: svc}
}

func (f *fixture) seedMember(t *testing.T, efficiency int) *model.Member {
	t.Helper()
	m, err := f.members.Insert(&model.Member{
		ID:         "m1",
		Name:       "Елена Смирнова",
		Position:   "Член парламента",
		Committee:  "Комитет по культуре",
		Efficiency: efficiency,
		Login:      "elena",
		Password:   "secret",
	})
	if err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}
	return m
}

func TestPointsFor(t *testing.T) {
	if got := PointsFor(model.ActivityProject); got != 20 {
		t.Errorf("project points = %d, want 20", got)
	}
	for _, typ := range []model.ActivityType{
		model.ActivityMedia, model.ActivityMeeting, model.ActivityCommunity,
		model.ActivityEvent, model.ActivityOther,
	} {
		if got := PointsFor(typ); got != 10 {
			t.Errorf("%s points = %d, want 10", typ, got)
		}
	}
}

func TestSubmit(t *testing.T) {
	f := setup(t)
	f.seedMember(t, 50)

	act, err := f.svc.Submit("m1", model.ActivityProject, "Городской форум", "Организация форума")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if act.Status != model.ActivityPending {
		t.Errorf("status = %q, want pending", act.Status)
	}
	if act.Points != 20 {
		t.Errorf("points = %d, want 20", act.Points)
	}

	m, err := f.members.GetByID("m1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(m.Activities) != 1 || m.Activities[0].ID != act.ID {
		t.Fatalf("activities = %v, want the submitted report", m.Activities)
	}
	if m.Efficiency != 50 {
		t.Errorf("efficiency changed on submit: %d", m.Efficiency)
	}

	admin := f.feed.For("", true)
	if len(admin) != 1 || admin[0].Type != model.NotifyInfo {
		t.Errorf("admin feed = %v, want one info notification", admin)
	}
}

func TestSubmitUnknownMember(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Submit("ghost", model.ActivityOther, "x", "")
	if !errors.Is(err, model.ErrUnknownMember) {
		t.Errorf("err = %v, want ErrUnknownMember", err)
	}
}

func TestVerifyAwardsScore(t *testing.T) {
	f := setup(t)
	f.seedMember(t, 50)

	act, err := f.svc.Submit("m1", model.ActivityProject, "Городской форум", "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	updated, err := f.svc.Verify("m1", act.ID, model.ActivityVerified)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	// 50 + 20/10 = 52
	if updated.Efficiency != 52 {
		t.Errorf("efficiency = %d, want 52", updated.Efficiency)
	}
	if updated.Activities[0].Status != model.ActivityVerified {
		t.Errorf("status = %q, want verified", updated.Activities[0].Status)
	}

	got := f.feed.For("m1", false)
	if len(got) != 1 || got[0].Type != model.NotifySuccess {
		t.Errorf("member feed = %v, want one success notification", got)
	}
}

func TestVerifyClampsAtMax(t *testing.T) {
	f := setup(t)
	f.seedMember(t, score.MaxEfficiency-1)

	act, err := f.svc.Submit("m1", model.ActivityProject, "Форум", "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	updated, err := f.svc.Verify("m1", act.ID, model.ActivityVerified)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if updated.Efficiency != score.MaxEfficiency {
		t.Errorf("efficiency = %d, want %d", updated.Efficiency, score.MaxEfficiency)
	}
}

func TestRejectLeavesScore(t *testing.T) {
	f := setup(t)
	f.seedMember(t, 50)

	act, err := f.svc.Submit("m1", model.ActivityMedia, "Публикация", "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	updated, err := f.svc.Verify("m1", act.ID, model.ActivityRejected)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if updated.Efficiency != 50 {
		t.Errorf("efficiency = %d, want 50", updated.Efficiency)
	}
	if updated.Activities[0].Status != model.ActivityRejected {
		t.Errorf("status = %q, want rejected", updated.Activities[0].Status)
	}

	// Rejection is silent: only the submission notice exists
	if got := f.feed.For("m1", false); len(got) != 0 {
		t.Errorf("member feed = %v, want empty after rejection", got)
	}
}

func TestVerifyDecidedOnlyOnce(t *testing.T) {
	f := setup(t)
	f.seedMember(t, 50)

	act, err := f.svc.Submit("m1", model.ActivityProject, "Форум", "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if _, err := f.svc.Verify("m1", act.ID, model.ActivityVerified); err != nil {
		t.Fatalf("first Verify failed: %v", err)
	}

	_, err = f.svc.Verify("m1", act.ID, model.ActivityVerified)
	if !errors.Is(err, model.ErrActivityDecided) {
		t.Errorf("second verify err = %v, want ErrActivityDecided", err)
	}
	_, err = f.svc.Verify("m1", act.ID, model.ActivityRejected)
	if !errors.Is(err, model.ErrActivityDecided) {
		t.Errorf("reject after verify err = %v, want ErrActivityDecided", err)
	}

	m, err := f.members.GetByID("m1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m.Efficiency != 52 {
		t.Errorf("efficiency = %d, want 52 after single award", m.Efficiency)
	}
}

func TestVerifyRejectsInvalidDecision(t *testing.T) {
	f := setup(t)
	f.seedMember(t, 50)

	act, err := f.svc.Submit("m1", model.ActivityProject, "Форум", "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	for _, decision := range []model.ActivityStatus{model.ActivityPending, "approved", ""} {
		_, err := f.svc.Verify("m1", act.ID, decision)
		if !errors.Is(err, model.ErrInvalidDecision) {
			t.Errorf("decision %q: err = %v, want ErrInvalidDecision", decision, err)
		}
	}

	m, err := f.members.GetByID("m1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if m.Activities[0].Status != model.ActivityPending {
		t.Errorf("status = %q, want pending after refused decisions", m.Activities[0].Status)
	}
	if m.Efficiency != 50 {
		t.Errorf("efficiency = %d, want 50", m.Efficiency)
	}
}

func TestVerifyUnknownActivity(t *testing.T) {
	f := setup(t)
	f.seedMember(t, 50)

	_, err := f.svc.Verify("m1", "missing", model.ActivityVerified)
	if !errors.Is(err, model.ErrActivityNotFound) {
		t.Errorf("err = %v, want ErrActivityNotFound", err)
	}
	_, err = f.svc.Verify("ghost", "missing", model.ActivityVerified)
	if !errors.Is(err, model.ErrUnknownMember) {
		t.Errorf("err = %v, want ErrUnknownMember", err)
	}
}

func TestVerifyLeavesSiblingsUntouched(t *testing.T) {
	f := setup(t)
	f.seedMember(t, 50)

	first, err := f.svc.Submit("m1", model.ActivityMeeting, "Прием граждан", "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	second, err := f.svc.Submit("m1", model.ActivityProject, "Форум", "")
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	updated, err := f.svc.Verify("m1", second.ID, model.ActivityVerified)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	for _, a := range updated.Activities {
		if a.ID == first.ID && a.Status != model.ActivityPending {
			t.Errorf("sibling status = %q, want pending", a.Status)
		}
	}
}
