// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/opsdesk-project/opsdesk/lib/config"
	"github.com/opsdesk-project/opsdesk/lib/deskapi"
)

// LoginCommand returns the "login" command for authenticating an
// operator. It verifies the credentials against the backend via
// /users/me and saves them (base64-encoded) to the well-known session
// path. Subsequent CLI commands load the session transparently.
func LoginCommand() *Command {
	var backendURL string
	var passwordFile string

	return &Command{
		Name:    "login",
		Summary: "Authenticate as an operator",
		Description: `Log in to a ticket backend and save the session locally.

After login, commands like "opsdesk console" and "opsdesk ticket list"
use the saved session transparently — no flags needed.

The session file is stored at ~/.config/opsdesk/session.json (or
$OPSDESK_SESSION_FILE if set, or $XDG_CONFIG_HOME/opsdesk/session.json).
The file is written with mode 0600 (owner-only read/write) since it
contains the operator's credentials.

The password can be provided via --password-file (a path to a file
containing the password) or prompted interactively if --password-file
is "-" or omitted.`,
		Usage: "opsdesk login <username> [flags]",
		Examples: []Example{
			{
				Description: "Log in interactively (prompts for password)",
				Command:     "opsdesk login operator",
			},
			{
				Description: "Log in against a remote backend",
				Command:     "opsdesk login operator --backend http://desk.example.com:8000",
			},
			{
				Description: "Log in with password from file",
				Command:     "opsdesk login operator --password-file /path/to/password",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flagSet.StringVar(&backendURL, "backend", "", "backend base URL (default: from config, http://localhost:8000)")
			flagSet.StringVar(&passwordFile, "password-file", "", "path to file containing password, or - to prompt interactively (default: prompt)")
			return flagSet
		},
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) < 1 {
				return Validation("username is required\n\nUsage: opsdesk login <username> [flags]")
			}
			username := args[0]
			if len(args) > 1 {
				return Validation("unexpected argument: %s", args[1])
			}

			configuration, err := config.Load()
			if err != nil {
				return Internal("load config: %v", err)
			}
			if backendURL == "" {
				backendURL = configuration.Backend.BaseURL
			}

			password, err := readLoginPassword(passwordFile)
			if err != nil {
				return Internal("read password: %v", err)
			}

			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			credentials := BasicCredentials(username, password)
			client, err := deskapi.NewClient(deskapi.Config{
				BaseURL:     backendURL,
				Credentials: credentials,
				HTTPClient:  &http.Client{Timeout: configuration.RequestTimeout()},
				Logger:      logger,
			})
			if err != nil {
				return Internal("create backend client: %v", err)
			}

			// Verify the credentials work before saving them.
			operator, err := client.WhoAmI(ctx)
			if err != nil {
				if deskapi.IsUnauthorized(err) {
					return Auth("login failed: %v", err)
				}
				return Backend("verifying login", err)
			}
			if operator.Username != "" {
				username = operator.Username
			}

			session := &OperatorSession{
				Username:    username,
				Credentials: credentials,
				BaseURL:     backendURL,
			}
			if err := SaveSession(session); err != nil {
				return Internal("save session: %v", err)
			}

			fmt.Fprintf(os.Stderr, "Logged in as %s\n", username)
			fmt.Fprintf(os.Stderr, "Session saved to %s\n", SessionFilePath())
			return nil
		},
	}
}

// LogoutCommand returns the "logout" command, which removes the saved
// session file.
func LogoutCommand() *Command {
	return &Command{
		Name:    "logout",
		Summary: "Remove the saved operator session",
		Usage:   "opsdesk logout",
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				return Validation("unexpected argument: %s", args[0])
			}
			path := SessionFilePath()
			if err := os.Remove(path); err != nil {
				if os.IsNotExist(err) {
					fmt.Fprintf(os.Stderr, "No session at %s\n", path)
					return nil
				}
				return Internal("remove session file: %v", err)
			}
			fmt.Fprintf(os.Stderr, "Removed session %s\n", path)
			return nil
		},
	}
}

// WhoAmICommand returns the "whoami" command, which verifies the saved
// session against the backend and prints the operator identity.
func WhoAmICommand() *Command {
	return &Command{
		Name:    "whoami",
		Summary: "Show the logged-in operator",
		Usage:   "opsdesk whoami",
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			session, err := LoadSession()
			if err != nil {
				return NotFound("%v", err)
			}
			client, err := session.NewClient(logger)
			if err != nil {
				return Internal("%v", err)
			}

			ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			operator, err := client.WhoAmI(ctx)
			if err != nil {
				return Backend("verifying session", err)
			}
			username := operator.Username
			if username == "" {
				username = session.Username
			}
			fmt.Printf("%s @ %s\n", username, session.BaseURL)
			return nil
		},
	}
}

// readLoginPassword reads the password from the given file, or prompts
// on the terminal when path is empty or "-". Falls back to reading a
// line from stdin when stdin is not a terminal (piped input).
func readLoginPassword(path string) (string, error) {
	if path != "" && path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(data)), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Password: ")
		data, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	var password string
	if _, err := fmt.Fscanln(os.Stdin, &password); err != nil {
		return "", err
	}
	return strings.TrimSpace(password), nil
}
