// Package auth is the identity capability boundary. The core only ever asks
// it to authenticate a user and report identity and verification status; the
// real provider (OAuth flows, verification emails) lives outside this repo.
package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotSignedIn        = errors.New("not signed in")
	ErrAccountExists      = errors.New("account already exists")
)

// Session is the identity surface the rest of the app consumes.
type Session struct {
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Verified    bool     `json:"verified"`
	Providers   []string `json:"providers"`
}

type Provider interface {
	SignUp(email, password, displayName string) (Session, error)
	SignIn(email, password string) (Session, error)
	SignInFederated(provider string) (Session, error)
	SendVerification(email string) error
	SendPasswordReset(email string) error
	SignOut() error
	CurrentSession() (Session, bool)
}
