// Package activity implements the lifecycle of member-submitted activity
// reports: a member submits a pending report, an admin verifies or rejects
// it, and verification feeds the member's efficiency score.
package activity

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/parltrack/parltrack/internal/model"
	"github.com/parltrack/parltrack/internal/notify"
	"github.com/parltrack/parltrack/internal/score"
	"github.com/parltrack/parltrack/internal/store"
)

// PointsFor returns the nominal point value for a report, fixed at
// submission: projects carry 20, everything else 10.
func PointsFor(t model.ActivityType) int {
	if t == model.ActivityProject {
		return 20
	}
	return 10
}

type Service struct {
	members    *store.MemberStore
	dispatcher *notify.Dispatcher
	logger     *slog.Logger
	now        func() time.Time
	newID      func() string
}

func NewService(members *store.MemberStore, dispatcher *notify.Dispatcher, logger *slog.Logger) *Service {
	return &Service{
		members:    members,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Submit records a new pending report for the member and announces it to
// the admins. The member's activity collection is rewritten with the new
// entry appended; existing entries are untouched.
func (s *Service) Submit(memberID string, typ model.ActivityType, title, description string) (*model.Activity, error) {
	m, err := s.members.GetByID(memberID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if m == nil {
		return nil, model.ErrUnknownMember
	}

	act := model.Activity{
		ID:          s.newID(),
		MemberID:    memberID,
		Type:        typ,
		Title:       title,
		Description: description,
		Date:        s.now(),
		Status:      model.ActivityPending,
		Points:      PointsFor(typ),
	}

	activities := append(slices.Clone(m.Activities), act)
	if _, err := s.members.Update(memberID, store.UpdateMemberParams{Activities: &activities}); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	s.dispatcher.Dispatch(model.AdminTarget, "Новый отчет",
		fmt.Sprintf("%s отправил(а) отчет «%s» на проверку", m.Name, act.Title),
		model.NotifyInfo)

	s.logger.Info("activity submitted", "member_id", memberID, "activity_id", act.ID, "type", typ, "points", act.Points)
	return &act, nil
}

// Verify decides a pending report. The decision must be verified or
// rejected; a report is decided at most once. On verification the member's
// efficiency gains a tenth of the report's points (rounded, clamped) and
// the member is notified. Rejection changes the status and nothing else.
func (s *Service) Verify(memberID, activityID string, decision model.ActivityStatus) (*model.Member, error) {
	if decision != model.ActivityVerified && decision != model.ActivityRejected {
		return nil, model.ErrInvalidDecision
	}

	m, err := s.members.GetByID(memberID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if m == nil {
		return nil, model.ErrUnknownMember
	}

	idx := slices.IndexFunc(m.Activities, func(a model.Activity) bool { return a.ID == activityID })
	if idx < 0 {
		return nil, model.ErrActivityNotFound
	}
	if m.Activities[idx].Status != model.ActivityPending {
		return nil, model.ErrActivityDecided
	}

	activities := slices.Clone(m.Activities)
	activities[idx].Status = decision
	act := activities[idx]

	params := store.UpdateMemberParams{Activities: &activities}
	if decision == model.ActivityVerified {
		newEff, err := score.Verification(m.Efficiency, act.Points)
		if err != nil {
			return nil, err
		}
		params.Efficiency = &newEff
	}

	updated, err := s.members.Update(memberID, params)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	if decision == model.ActivityVerified {
		s.dispatcher.Dispatch(memberID, "Отчет подтвержден",
			fmt.Sprintf("«%s» засчитан: эффективность обновлена", act.Title),
			model.NotifySuccess)
	}

	s.logger.Info("activity decided", "member_id", memberID, "activity_id", activityID, "decision", decision)
	return updated, nil
}
