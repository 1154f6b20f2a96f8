package auth

import (
	"errors"
	"path/filepath"
	"testing"
)

func newProvider(t *testing.T) *LocalProvider {
	t.Helper()
	return NewLocalProvider(filepath.Join(t.TempDir(), "account.json"))
}

func TestSignUpAndSignIn(t *testing.T) {
	p := newProvider(t)

	s, err := p.SignUp("sam@example.com", "hunter2", "Sam")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if s.Email != "sam@example.com" || s.DisplayName != "Sam" {
		t.Errorf("session = %+v", s)
	}
	if s.Verified {
		t.Error("fresh account should not be verified")
	}

	if _, err := p.SignUp("other@example.com", "x", "Other"); !errors.Is(err, ErrAccountExists) {
		t.Errorf("second signup: %v", err)
	}

	if err := p.SignOut(); err != nil {
		t.Fatalf("signout: %v", err)
	}
	if _, ok := p.CurrentSession(); ok {
		t.Error("session should be gone after signout")
	}

	if _, err := p.SignIn("sam@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: %v", err)
	}
	if _, err := p.SignIn("sam@example.com", "hunter2"); err != nil {
		t.Errorf("signin: %v", err)
	}
}

func TestSessionSurvivesProcessRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "account.json")

	p := NewLocalProvider(path)
	if _, err := p.SignUp("sam@example.com", "hunter2", "Sam"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	// A fresh provider over the same file sees the signed-in session.
	reopened := NewLocalProvider(path)
	s, ok := reopened.CurrentSession()
	if !ok {
		t.Fatal("expected a persisted session")
	}
	if s.Email != "sam@example.com" {
		t.Errorf("session email = %s", s.Email)
	}
}

func TestVerifyToken(t *testing.T) {
	p := newProvider(t)
	if _, err := p.SignUp("sam@example.com", "hunter2", "Sam"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if err := p.Verify("bogus"); err == nil {
		t.Error("bogus token should not verify")
	}

	token := p.account.VerifyToken
	if err := p.Verify(token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	s, _ := p.CurrentSession()
	if !s.Verified {
		t.Error("session should report verified")
	}
	if err := p.Verify(token); err == nil {
		t.Error("token must be single-use")
	}
}

func TestFederatedSignInUnsupportedLocally(t *testing.T) {
	p := newProvider(t)
	if _, err := p.SignInFederated("google"); err == nil {
		t.Error("expected error for federated sign-in on the local provider")
	}
}
