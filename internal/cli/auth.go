package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/polyglot/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a new username and password and creates the account.
// Rejections are reported to the user and are not errors; only input
// failures are returned. The password is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter new username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.ttyFd, a.tty, "Enter new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	err = a.credentials.Register(ctx, username, password)
	switch {
	case err == nil:
		a.println(correctStyle.Render("User '" + username + "' registered successfully!"))
	case errors.Is(err, common.ErrDuplicateUsername):
		a.println(errorStyle.Render("Error: Username '" + username + "' already exists. Please choose a different one."))
	case errors.Is(err, common.ErrValidation):
		a.println(errorStyle.Render("Registration failed: " + validationMessage(err)))
	default:
		a.logger.Error(ctx, "registration error", "err", err)
		a.println(errorStyle.Render("Registration failed. The user store is unavailable."))
	}
	return nil
}

// Login prompts for credentials and, when they match, starts the session.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.ttyFd, a.tty, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.credentials.Authenticate(ctx, username, password)
	if err != nil {
		a.logger.Error(ctx, "authentication error", "err", err)
		a.println(errorStyle.Render("Login failed. The user store is unavailable."))
		return nil
	}
	if !ok {
		a.println(errorStyle.Render("Login failed. " + common.ErrAuthFailed.Error() + "."))
		return nil
	}

	if err := a.session.Login(username); err != nil {
		return err
	}
	a.println(correctStyle.Render("Welcome, " + username + "!"))
	return nil
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) {
	user, ok := a.session.Current()
	if !ok {
		return
	}
	a.session.Logout()
	a.logger.Info(ctx, "user logged out", "username", user)
	a.println("User '" + user + "' logged out.")
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
}
