package auth

import (
	"fmt"

	"github.com/parltrack/parltrack/internal/model"
)

// AdminName is the display name for admin sessions.
const AdminName = "Администратор"

// Credentials is an opaque login/password pair.
type Credentials struct {
	Login    string
	Password string
}

// MemberLister is the slice of the member store the gate needs.
type MemberLister interface {
	List() ([]model.Member, error)
}

// Gate resolves a login attempt to a role and, for members, an identity.
// The admin credential pair is injected at construction; it is configuration,
// not user data.
type Gate struct {
	admin    Credentials
	members  MemberLister
	verifier Verifier
}

func NewGate(admin Credentials, members MemberLister, verifier Verifier) *Gate {
	return &Gate{admin: admin, members: members, verifier: verifier}
}

// Authenticate checks the admin pair first, then scans the member table.
// The admin pair wins regardless of member table contents.
func (g *Gate) Authenticate(login, password string) (*model.Session, error) {
	if login == g.admin.Login && password == g.admin.Password {
		return &model.Session{Role: model.RoleAdmin, Name: AdminName}, nil
	}

	members, err := g.members.List()
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	for _, m := range members {
		if m.Login == login && g.verifier.Verify(m.Password, password) {
			return &model.Session{Role: model.RoleMember, MemberID: m.ID, Name: m.Name}, nil
		}
	}

	return nil, model.ErrInvalidCredentials
}
