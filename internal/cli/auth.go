package cli

import (
	"context"
	"fmt"
	"time"

	"catalog/admin/internal/client"
)

func (c *CLI) login(ctx context.Context, args []string) error {
	fs := c.flags("login")
	username := fs.StringP("username", "u", "", "account name")
	password := fs.StringP("password", "p", "", "account password")
	if err := parse(fs, args); err != nil {
		return err
	}

	user, err := c.app.Auth.Login(ctx, client.LoginRequest{Username: *username, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Logged in as %s\n", user.Username)
	return nil
}

func (c *CLI) register(ctx context.Context, args []string) error {
	fs := c.flags("register")
	username := fs.StringP("username", "u", "", "account name")
	email := fs.StringP("email", "e", "", "email address")
	password := fs.StringP("password", "p", "", "password, at least 6 characters")
	confirm := fs.String("confirm-password", "", "the password again")
	if err := parse(fs, args); err != nil {
		return err
	}

	err := c.app.Auth.Register(ctx, client.RegisterRequest{
		Username:        *username,
		Email:           *email,
		Password:        *password,
		ConfirmPassword: *confirm,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Account created, you can log in now")
	return nil
}

func (c *CLI) logout(ctx context.Context, _ []string) error {
	if err := c.app.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Logged out")
	return nil
}

func (c *CLI) whoami(ctx context.Context, args []string) error {
	fs := c.flags("whoami")
	remote := fs.Bool("remote", false, "ask the backend instead of reading the stored session")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *remote {
		user, err := c.app.Auth.Current(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.out, "%s <%s> %s\n", user.Username, user.Email, user.Role)
		return nil
	}

	info, err := c.app.Auth.Session(ctx)
	if err != nil {
		return err
	}
	if !info.Authenticated {
		fmt.Fprintln(c.out, "Not logged in")
		return nil
	}
	name := "(unknown user)"
	if info.User != nil {
		name = info.User.Username
	}
	fmt.Fprintf(c.out, "Logged in as %s\n", name)
	if !info.ExpiresAt.IsZero() {
		fmt.Fprintf(c.out, "Session expires %s\n", info.ExpiresAt.Local().Format(time.RFC1123))
	}
	return nil
}
