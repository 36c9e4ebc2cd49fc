package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/parltrack/parltrack/internal/model"
)

// MemberStore persists members. A member's activity reports are embedded in
// the member row as a JSON column: every activity mutation rewrites the full
// collection, which keeps the read-modify-write a single-row operation.
type MemberStore struct {
	db *sql.DB
}

func NewMemberStore(db *sql.DB) *MemberStore {
	return &MemberStore{db: db}
}

const memberCols = `id, name, position, committee, efficiency, login, password, activities, created_at, updated_at`

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	var activities string

	err := scanner.Scan(&m.ID, &m.Name, &m.Position, &m.Committee, &m.Efficiency,
		&m.Login, &m.Password, &activities, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(activities), &m.Activities); err != nil {
		return nil, fmt.Errorf("decode activities: %w", err)
	}
	if m.Activities == nil {
		m.Activities = []model.Activity{}
	}
	return &m, nil
}

func (s *MemberStore) Insert(m *model.Member) (*model.Member, error) {
	activities := m.Activities
	if activities == nil {
		activities = []model.Activity{}
	}
	data, err := json.Marshal(activities)
	if err != nil {
		return nil, fmt.Errorf("encode activities: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO members (id, name, position, committee, efficiency, login, password, activities) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Name, m.Position, m.Committee, m.Efficiency, m.Login, m.Password, string(data),
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return s.GetByID(m.ID)
}

// List returns all members ordered by efficiency, highest first.
func (s *MemberStore) List() ([]model.Member, error) {
	rows, err := s.db.Query(`SELECT ` + memberCols + ` FROM members ORDER BY efficiency DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (s *MemberStore) GetByID(id string) (*model.Member, error) {
	row := s.db.QueryRow(`SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

// UpdateMemberParams is a partial update: nil fields are left untouched.
// Activities and Efficiency can be set independently or together.
type UpdateMemberParams struct {
	Activities *[]model.Activity
	Efficiency *int
}

func (s *MemberStore) Update(id string, p UpdateMemberParams) (*model.Member, error) {
	var sets []string
	var args []any

	if p.Activities != nil {
		data, err := json.Marshal(*p.Activities)
		if err != nil {
			return nil, fmt.Errorf("encode activities: %w", err)
		}
		sets = append(sets, "activities = ?")
		args = append(args, string(data))
	}
	if p.Efficiency != nil {
		sets = append(sets, "efficiency = ?")
		args = append(args, *p.Efficiency)
	}
	if len(sets) == 0 {
		return s.GetByID(id)
	}

	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	_, err := s.db.Exec(`UPDATE members SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return s.GetByID(id)
}

// SetEfficiencyBulk writes the given scores in a single transaction, so a
// committee-wide award lands for every member or for none.
func (s *MemberStore) SetEfficiencyBulk(scores map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`UPDATE members SET efficiency = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for id, eff := range scores {
		if _, err := stmt.Exec(eff, id); err != nil {
			return fmt.Errorf("set efficiency for member %s: %w", id, err)
		}
	}

	return tx.Commit()
}
