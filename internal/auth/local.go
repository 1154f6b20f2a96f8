package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LocalProvider is a file-backed single-account provider so the CLI works
// without a hosted identity service. Verification "emails" print their token
// to stdout; SignInFederated is not supported locally.
type LocalProvider struct {
	path    string
	account *account
	session *Session
}

type account struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Salt        string `json:"salt"`
	Hash        string `json:"hash"`
	Verified    bool   `json:"verified"`
	VerifyToken string `json:"verifyToken,omitempty"`
	SignedIn    bool   `json:"signedIn"`
}

func NewLocalProvider(path string) *LocalProvider {
	return &LocalProvider{path: path}
}

func (p *LocalProvider) load() error {
	if p.account != nil {
		return nil
	}
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read account file: %w", err)
	}
	p.account = &account{}
	if err := json.Unmarshal(data, p.account); err != nil {
		return fmt.Errorf("failed to parse account file: %w", err)
	}
	if p.account.SignedIn {
		s := p.sessionFor(*p.account)
		p.session = &s
	}
	return nil
}

func (p *LocalProvider) save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return fmt.Errorf("failed to create account directory: %w", err)
	}
	data, err := json.MarshalIndent(p.account, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0600)
}

func (p *LocalProvider) sessionFor(a account) Session {
	return Session{
		Email:       a.Email,
		DisplayName: a.DisplayName,
		Verified:    a.Verified,
		Providers:   []string{"password"},
	}
}

func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

func randomToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (p *LocalProvider) SignUp(email, password, displayName string) (Session, error) {
	if err := p.load(); err != nil {
		return Session{}, err
	}
	if p.account != nil {
		return Session{}, ErrAccountExists
	}
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	salt := randomToken()
	p.account = &account{
		Email:       email,
		DisplayName: displayName,
		Salt:        salt,
		Hash:        hashPassword(password, salt),
		VerifyToken: randomToken(),
		SignedIn:    true,
	}
	if err := p.save(); err != nil {
		return Session{}, err
	}

	// Sign-up triggers a verification email; locally that is a printed token.
	fmt.Printf("Verification token for %s: %s\n", email, p.account.VerifyToken)

	s := p.sessionFor(*p.account)
	p.session = &s
	return s, nil
}

func (p *LocalProvider) SignIn(email, password string) (Session, error) {
	if err := p.load(); err != nil {
		return Session{}, err
	}
	if p.account == nil || p.account.Email != email ||
		p.account.Hash != hashPassword(password, p.account.Salt) {
		return Session{}, ErrInvalidCredentials
	}

	p.account.SignedIn = true
	if err := p.save(); err != nil {
		return Session{}, err
	}
	s := p.sessionFor(*p.account)
	p.session = &s
	return s, nil
}

func (p *LocalProvider) SignInFederated(provider string) (Session, error) {
	return Session{}, fmt.Errorf("federated sign-in (%s) requires a hosted identity provider", provider)
}

func (p *LocalProvider) SendVerification(email string) error {
	if err := p.load(); err != nil {
		return err
	}
	if p.account == nil || p.account.Email != email {
		return ErrInvalidCredentials
	}
	if p.account.VerifyToken == "" {
		p.account.VerifyToken = randomToken()
		if err := p.save(); err != nil {
			return err
		}
	}
	fmt.Printf("Verification token for %s: %s\n", email, p.account.VerifyToken)
	return nil
}

// Verify consumes a verification token, marking the account verified.
func (p *LocalProvider) Verify(token string) error {
	if err := p.load(); err != nil {
		return err
	}
	if p.account == nil || token == "" || p.account.VerifyToken != token {
		return fmt.Errorf("invalid verification token")
	}
	p.account.Verified = true
	p.account.VerifyToken = ""
	if err := p.save(); err != nil {
		return err
	}
	if p.session != nil {
		p.session.Verified = true
	}
	return nil
}

func (p *LocalProvider) SendPasswordReset(email string) error {
	if err := p.load(); err != nil {
		return err
	}
	if p.account == nil || p.account.Email != email {
		return ErrInvalidCredentials
	}
	fmt.Printf("Password reset is local: delete %s and sign up again.\n", p.path)
	return nil
}

func (p *LocalProvider) SignOut() error {
	if err := p.load(); err != nil {
		return err
	}
	p.session = nil
	if p.account != nil && p.account.SignedIn {
		p.account.SignedIn = false
		return p.save()
	}
	return nil
}

func (p *LocalProvider) CurrentSession() (Session, bool) {
	if err := p.load(); err != nil {
		return Session{}, false
	}
	if p.session == nil {
		return Session{}, false
	}
	return *p.session, true
}
