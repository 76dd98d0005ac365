package testutils

import (
	"sync"

	"github.com/nacallas/SkidmarkOS-sub000/vault"
)

// MemoryVault is an in-memory vault.Vault for tests.
type MemoryVault struct {
	mu    sync.Mutex
	creds map[string]vault.Credential
}

func NewMemoryVault() *MemoryVault {
	return &MemoryVault{creds: make(map[string]vault.Credential)}
}

func (v *MemoryVault) Retrieve(leagueID string) (*vault.Credential, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	c, found := v.creds[leagueID]
	if !found {
		return nil, vault.ErrCredentialNotFound
	}
	return &c, nil
}

func (v *MemoryVault) Save(leagueID string, c *vault.Credential) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.creds[leagueID] = *c
	return nil
}

func (v *MemoryVault) Delete(leagueID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.creds, leagueID)
	return nil
}

func (v *MemoryVault) Has(leagueID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	_, found := v.creds[leagueID]
	return found
}
