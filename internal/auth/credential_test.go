package auth

import "testing"

func TestCredentialVerifyRoundTrip(t *testing.T) {
	cred, err := NewCredential("4321")
	if err != nil {
		t.Fatal(err)
	}

	if !cred.Verify("4321") {
		t.Fatal("correct secret rejected")
	}
	if cred.Verify("1234") {
		t.Fatal("wrong secret accepted")
	}
}

func TestCredentialFromHash(t *testing.T) {
	cred, err := NewCredential("4321")
	if err != nil {
		t.Fatal(err)
	}

	restored := FromHash(cred.Hash())
	if !restored.Verify("4321") {
		t.Fatal("restored credential rejected correct secret")
	}
	if restored.Verify("9999") {
		t.Fatal("restored credential accepted wrong secret")
	}
}
