package model

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

type Session struct {
	ID        int64     `json:"id"`
	Token     string    `json:"-"`
	Role      Role      `json:"role"`
	MemberID  string    `json:"memberId,omitempty"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
