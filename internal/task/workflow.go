// Package task implements admin-assigned tasks: creation against a single
// member or a whole committee, completion gated by a closing rule, and
// point awards that move member efficiency at full value.
package task

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parltrack/parltrack/internal/auth"
	"github.com/parltrack/parltrack/internal/model"
	"github.com/parltrack/parltrack/internal/notify"
	"github.com/parltrack/parltrack/internal/score"
	"github.com/parltrack/parltrack/internal/store"
)

type Service struct {
	tasks      *store.TaskStore
	members    *store.MemberStore
	dispatcher *notify.Dispatcher
	logger     *slog.Logger
	newID      func() string
}

func NewService(tasks *store.TaskStore, members *store.MemberStore, dispatcher *notify.Dispatcher, logger *slog.Logger) *Service {
	return &Service{
		tasks:      tasks,
		members:    members,
		dispatcher: dispatcher,
		logger:     logger,
		newID:      uuid.NewString,
	}
}

type CreateParams struct {
	Title       string
	Description string
	AssigneeID  string
	Committee   string
	DueDate     time.Time
	Priority    model.TaskPriority
}

// Create assigns a new pending task. Exactly one of AssigneeID or Committee
// must be set; a missing priority defaults to medium.
func (s *Service) Create(p CreateParams) (*model.Task, error) {
	if (p.AssigneeID == "") == (p.Committee == "") {
		return nil, model.ErrInvalidTarget
	}
	if p.AssigneeID != "" {
		m, err := s.members.GetByID(p.AssigneeID)
		if err != nil {
			return nil, fmt.Errorf("get assignee: %w", err)
		}
		if m == nil {
			return nil, model.ErrUnknownMember
		}
	}

	priority := p.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}

	created, err := s.tasks.Insert(&model.Task{
		ID:          s.newID(),
		Title:       p.Title,
		Description: p.Description,
		AssigneeID:  p.AssigneeID,
		Committee:   p.Committee,
		DueDate:     p.DueDate,
		Status:      model.TaskPending,
		Priority:    priority,
	})
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	s.dispatcher.Dispatch(model.AdminTarget, "Новая задача",
		fmt.Sprintf("Задача «%s» назначена", created.Title),
		model.NotifyTask)

	s.logger.Info("task created", "task_id", created.ID, "assignee_id", p.AssigneeID, "committee", p.Committee)
	return created, nil
}

// IsCommitteeLead reports whether the position names a committee lead.
// The check is a case-insensitive substring match, so variants like
// "Руководитель комитета по культуре" all qualify.
func IsCommitteeLead(position string) bool {
	return strings.Contains(strings.ToLower(position), "руководитель")
}

// CanClose reports whether the actor may complete the task: admins always,
// the assignee, or a lead of the task's committee. member is the actor's
// member record and may be nil for admin sessions.
func CanClose(t *model.Task, actor auth.AuthContext, member *model.Member) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}
	if t.AssigneeID != "" && t.AssigneeID == actor.MemberID {
		return true
	}
	if t.Committee != "" && member != nil && member.Committee == t.Committee && IsCommitteeLead(member.Position) {
		return true
	}
	return false
}

// Complete closes a pending task with a result text. The closing rule is
// evaluated against the actor's current member record, so a position or
// committee change takes effect immediately.
func (s *Service) Complete(taskID, resultText string, actor auth.AuthContext) (*model.Task, error) {
	t, err := s.tasks.GetByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if t == nil {
		return nil, model.ErrTaskNotFound
	}

	var member *model.Member
	if actor.MemberID != "" {
		member, err = s.members.GetByID(actor.MemberID)
		if err != nil {
			return nil, fmt.Errorf("get member: %w", err)
		}
	}
	// Authorization is decided before the task's state so an actor who may
	// not close the task learns nothing about it.
	if !CanClose(t, actor, member) {
		return nil, model.ErrForbidden
	}
	if t.Status == model.TaskCompleted {
		return nil, model.ErrAlreadyCompleted
	}

	status := model.TaskCompleted
	updated, err := s.tasks.Update(taskID, store.UpdateTaskParams{Status: &status, ResultText: &resultText})
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.dispatcher.Dispatch(model.AdminTarget, "Задача выполнена",
		fmt.Sprintf("%s закрыл(а) задачу «%s»", actor.Name, t.Title),
		model.NotifySuccess)

	s.logger.Info("task completed", "task_id", taskID, "actor", actor.Name)
	return updated, nil
}

// Award credits task points at full value: to the single assignee, or to
// every member whose committee currently matches the task's committee. The
// recipient set is resolved at award time, and a committee-wide write lands
// in one transaction. Awards are not idempotent; awarding twice credits
// twice.
func (s *Service) Award(taskID string, points int) error {
	t, err := s.tasks.GetByID(taskID)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if t == nil {
		return model.ErrTaskNotFound
	}

	if t.AssigneeID != "" {
		m, err := s.members.GetByID(t.AssigneeID)
		if err != nil {
			return fmt.Errorf("get assignee: %w", err)
		}
		if m == nil {
			return model.ErrUnknownMember
		}
		newEff, err := score.Award(m.Efficiency, points)
		if err != nil {
			return err
		}
		if _, err := s.members.Update(m.ID, store.UpdateMemberParams{Efficiency: &newEff}); err != nil {
			return fmt.Errorf("update member: %w", err)
		}
		s.notifyAward(m.ID, points, t.Title)
		s.logger.Info("task awarded", "task_id", taskID, "member_id", m.ID, "points", points)
		return nil
	}

	members, err := s.members.List()
	if err != nil {
		return fmt.Errorf("list members: %w", err)
	}

	scores := make(map[string]int)
	var recipients []string
	for _, m := range members {
		if m.Committee != t.Committee {
			continue
		}
		newEff, err := score.Award(m.Efficiency, points)
		if err != nil {
			return err
		}
		scores[m.ID] = newEff
		recipients = append(recipients, m.ID)
	}

	if err := s.members.SetEfficiencyBulk(scores); err != nil {
		return fmt.Errorf("bulk update: %w", err)
	}
	for _, id := range recipients {
		s.notifyAward(id, points, t.Title)
	}

	s.logger.Info("task awarded", "task_id", taskID, "committee", t.Committee, "recipients", len(recipients), "points", points)
	return nil
}

func (s *Service) notifyAward(memberID string, points int, title string) {
	s.dispatcher.Dispatch(memberID, "Баллы начислены",
		fmt.Sprintf("+%d баллов за задачу «%s»", points, title),
		model.NotifySuccess)
}

// AwardMember credits points to a member directly, outside any task.
func (s *Service) AwardMember(memberID string, points int) (*model.Member, error) {
	m, err := s.members.GetByID(memberID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if m == nil {
		return nil, model.ErrUnknownMember
	}

	newEff, err := score.Award(m.Efficiency, points)
	if err != nil {
		return nil, err
	}
	updated, err := s.members.Update(memberID, store.UpdateMemberParams{Efficiency: &newEff})
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	s.dispatcher.Dispatch(memberID, "Баллы начислены",
		fmt.Sprintf("+%d баллов к эффективности", points),
		model.NotifySuccess)
	return updated, nil
}

// PenalizeMember deducts points from a member and warns them.
func (s *Service) PenalizeMember(memberID string, points int) (*model.Member, error) {
	m, err := s.members.GetByID(memberID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	if m == nil {
		return nil, model.ErrUnknownMember
	}

	newEff, err := score.Penalty(m.Efficiency, points)
	if err != nil {
		return nil, err
	}
	updated, err := s.members.Update(memberID, store.UpdateMemberParams{Efficiency: &newEff})
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}

	s.dispatcher.Dispatch(memberID, "Баллы сняты",
		fmt.Sprintf("-%d баллов к эффективности", points),
		model.NotifyWarning)
	return updated, nil
}
