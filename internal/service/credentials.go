package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier abstracts how stored passwords are produced and
// checked, so the hashing scheme can change without touching call sites.
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Compare(stored, submitted string) error
}

// BcryptVerifier hashes with bcrypt. This is the default scheme.
type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(password string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (v BcryptVerifier) Compare(stored, submitted string) error {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(submitted))
}

// PlaintextVerifier reproduces the legacy backend's exact-equality check
// for databases migrated with clear-text password rows. Enabled only via
// AUTH_PLAINTEXT_PASSWORDS.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(password string) (string, error) {
	return password, nil
}

func (PlaintextVerifier) Compare(stored, submitted string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(submitted)) != 1 {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return nil
}
