// Package vault stores per-league credentials. The ingestion code treats the
// vault as authoritative and never caches credentials anywhere else.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
)

var ErrCredentialNotFound = errors.New("credential not found")

// Credential is the cookie pair a credential-gated platform needs.
type Credential struct {
	S2   string `json:"s2"`
	SWID string `json:"swid"`
}

type Vault interface {
	Retrieve(leagueID string) (*Credential, error)
	Save(leagueID string, c *Credential) error
	Delete(leagueID string) error
	Has(leagueID string) bool
}

// fileVault keeps credentials in a single mode-0600 JSON file. It is the
// default implementation; platform keychains live behind the same interface.
type fileVault struct {
	mu   sync.Mutex
	path string
}

func NewFileVault(path string) Vault {
	return &fileVault{path: path}
}

func (v *fileVault) Retrieve(leagueID string) (*Credential, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	creds, err := v.read()
	if err != nil {
		return nil, err
	}
	c, found := creds[leagueID]
	if !found {
		return nil, ErrCredentialNotFound
	}
	return &c, nil
}

func (v *fileVault) Save(leagueID string, c *Credential) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	creds, err := v.read()
	if err != nil {
		return err
	}
	creds[leagueID] = *c
	return v.write(creds)
}

func (v *fileVault) Delete(leagueID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	creds, err := v.read()
	if err != nil {
		return err
	}
	delete(creds, leagueID)
	return v.write(creds)
}

func (v *fileVault) Has(leagueID string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	creds, err := v.read()
	if err != nil {
		return false
	}
	_, found := creds[leagueID]
	return found
}

func (v *fileVault) read() (map[string]Credential, error) {
	b, err := os.ReadFile(v.path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Credential), nil
		}
		return nil, fmt.Errorf("error reading vault file: %w", err)
	}

	creds := make(map[string]Credential)
	if err := json.Unmarshal(b, &creds); err != nil {
		return nil, fmt.Errorf("error parsing vault file: %w", err)
	}
	return creds, nil
}

func (v *fileVault) write(creds map[string]Credential) error {
	b, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding vault file: %w", err)
	}

	// Write to a temp file and rename so a crash never leaves a half-written vault.
	tmp := v.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("error writing vault file: %w", err)
	}
	return os.Rename(tmp, v.path)
}
