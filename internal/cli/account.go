package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

type AccountSignupCmd struct {
	Email string `arg:"" help:"Email address."`
	Name  string `short:"n" help:"Display name."`
}

func (c *AccountSignupCmd) Run(ctx *Context) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	session, err := ctx.Auth.SignUp(c.Email, password, c.Name)
	if err != nil {
		return err
	}

	// Mirror the display name into app state for greetings.
	if err := ctx.loadTracker(); err == nil && c.Name != "" {
		ctx.Tracker.SetUserName(c.Name)
	}

	fmt.Printf("Signed up as %s. Check the verification token above.\n", session.Email)
	return nil
}

type AccountLoginCmd struct {
	Email string `arg:"" help:"Email address."`
}

func (c *AccountLoginCmd) Run(ctx *Context) error {
	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	session, err := ctx.Auth.SignIn(c.Email, password)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s\n", session.Email)
	return nil
}

type AccountLogoutCmd struct{}

func (c *AccountLogoutCmd) Run(ctx *Context) error {
	if err := ctx.Auth.SignOut(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

type AccountStatusCmd struct{}

func (c *AccountStatusCmd) Run(ctx *Context) error {
	session, ok := ctx.Auth.CurrentSession()
	if !ok {
		fmt.Println("Not signed in.")
		return nil
	}

	verified := "unverified"
	if session.Verified {
		verified = "verified"
	}
	fmt.Printf("%s (%s, %s) via %s\n",
		session.Email, session.DisplayName, verified, strings.Join(session.Providers, ","))
	return nil
}

type AccountVerifyCmd struct {
	Token string `arg:"" help:"Verification token."`
}

func (c *AccountVerifyCmd) Run(ctx *Context) error {
	if err := ctx.Auth.Verify(c.Token); err != nil {
		return err
	}
	fmt.Println("Account verified.")
	return nil
}

func readPassword(prompt string) (string, error) {
	var password string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(prompt).
			EchoMode(huh.EchoModePassword).
			Value(&password),
	))
	if err := form.Run(); err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}
