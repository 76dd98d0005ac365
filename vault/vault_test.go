package vault

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestFileVaultRoundTrip(t *testing.T) {
	v := NewFileVault(filepath.Join(t.TempDir(), "creds.json"))

	if v.Has("L1") {
		t.Errorf("empty vault should not have L1")
	}
	if _, err := v.Retrieve("L1"); !errors.Is(err, ErrCredentialNotFound) {
		t.Errorf("expected ErrCredentialNotFound, got %v", err)
	}

	cred := &Credential{S2: "s2-token", SWID: "{ABC-123}"}
	if err := v.Save("L1", cred); err != nil {
		t.Fatalf("error saving credential: %v", err)
	}

	got, err := v.Retrieve("L1")
	if err != nil {
		t.Fatalf("error retrieving credential: %v", err)
	}
	if got.S2 != cred.S2 || got.SWID != cred.SWID {
		t.Errorf("expected %+v, got %+v", cred, got)
	}
	if !v.Has("L1") {
		t.Errorf("vault should have L1 after save")
	}

	if err := v.Delete("L1"); err != nil {
		t.Fatalf("error deleting credential: %v", err)
	}
	if v.Has("L1") {
		t.Errorf("vault should not have L1 after delete")
	}

	// Deleting again is fine.
	if err := v.Delete("L1"); err != nil {
		t.Errorf("deleting a missing credential should not error: %v", err)
	}
}
