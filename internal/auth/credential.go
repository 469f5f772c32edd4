package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Credential is a bcrypt-backed implementation of the ledger's opaque
// credential capability. The domain only ever calls Verify; the hash is
// exposed for the persistence mirror.
type Credential struct {
	hash string
}

func NewCredential(secret string) (*Credential, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}
	return &Credential{hash: string(hashed)}, nil
}

// FromHash wraps an already-hashed credential, used when restoring
// customers from the snapshot store.
func FromHash(hash string) *Credential {
	return &Credential{hash: hash}
}

func (c *Credential) Verify(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.hash), []byte(secret)) == nil
}

func (c *Credential) Hash() string {
	return c.hash
}
