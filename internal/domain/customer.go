package domain

import "sync"

// CredentialVerifier is the opaque credential capability attached to a
// customer. The ledger never sees secrets or hashes, only the verdict.
type CredentialVerifier interface {
	Verify(secret string) bool
}

// Customer holds identity and the numbers of the accounts it owns, in
// insertion order. Links are mutated only by the Bank, but reads arrive
// from any goroutine, so the slice carries its own lock.
type Customer struct {
	mu             sync.Mutex
	id             string
	name           string
	email          string
	credential     CredentialVerifier
	accountNumbers []string
}

func NewCustomer(id, name, email string, credential CredentialVerifier) *Customer {
	return &Customer{
		id:         id,
		name:       name,
		email:      email,
		credential: credential,
	}
}

func (c *Customer) ID() string    { return c.id }
func (c *Customer) Name() string  { return c.name }
func (c *Customer) Email() string { return c.email }

func (c *Customer) Verify(secret string) bool {
	if c.credential == nil {
		return false
	}
	return c.credential.Verify(secret)
}

func (c *Customer) AccountNumbers() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.accountNumbers))
	copy(out, c.accountNumbers)
	return out
}

func (c *Customer) linkAccount(number string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range c.accountNumbers {
		if n == number {
			return
		}
	}
	c.accountNumbers = append(c.accountNumbers, number)
}

func (c *Customer) unlinkAccount(number string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.accountNumbers {
		if n == number {
			c.accountNumbers = append(c.accountNumbers[:i], c.accountNumbers[i+1:]...)
			return
		}
	}
}
