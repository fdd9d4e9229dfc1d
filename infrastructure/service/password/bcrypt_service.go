package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Service hashes and verifies user passwords.
type Service interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type bcryptService struct {
	cost int
}

func NewBcryptService(cost int) Service {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptService{cost: cost}
}

func (s *bcryptService) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *bcryptService) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
