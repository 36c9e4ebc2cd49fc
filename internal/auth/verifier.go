package auth

import "golang.org/x/crypto/bcrypt"

// Verifier checks a presented password against the stored credential.
// The gate is parameterized on this so a hashed scheme can replace plain
// comparison without touching workflow logic.
type Verifier interface {
	Verify(stored, presented string) bool
}

// PlainVerifier compares credentials as plain equality.
type PlainVerifier struct{}

func (PlainVerifier) Verify(stored, presented string) bool {
	return stored == presented
}

// BcryptVerifier treats the stored credential as a bcrypt hash.
type BcryptVerifier struct{}

func (BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}
