package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/chauhan-varun/NiramayaPravasi-sub001/domain"
)

// PasswordServiceImpl hashes and checks the credentials stored on
// password-bearing portal accounts (admins and registered doctors)
// using bcrypt.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService returns a bcrypt-backed domain.PasswordService
// at the library's default cost.
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{
		cost: bcrypt.DefaultCost,
	}
}

// Hash derives the salted bcrypt digest stored on the identity record.
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify reports whether the candidate password matches the stored
// digest. Any comparison failure counts as a mismatch.
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
