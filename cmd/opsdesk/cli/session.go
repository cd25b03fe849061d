// Copyright 2026 The Opsdesk Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/opsdesk-project/opsdesk/lib/config"
	"github.com/opsdesk-project/opsdesk/lib/deskapi"
)

// OperatorSession holds the operator's backend authentication state.
// Stored at the well-known path returned by SessionFilePath and loaded
// automatically by CLI commands that talk to the backend (console,
// ticket, stats). Analogous to SSH keys — set up once via
// "opsdesk login", then transparent.
type OperatorSession struct {
	// Username is the operator account name the credentials belong to,
	// as confirmed by the backend at login time.
	Username string `json:"username"`

	// Credentials is the base64-encoded "username:password" pair sent
	// as the Basic authorization header. The backend re-verifies it on
	// every request, so there is no token to refresh.
	Credentials string `json:"credentials"`

	// BaseURL is the backend the session was created against
	// (e.g., "http://localhost:8000"). Stored so every command talks
	// to the same deployment the operator logged in to.
	BaseURL string `json:"base_url"`
}

// BasicCredentials encodes a username and password for the Basic
// authorization scheme.
func BasicCredentials(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

// SessionFilePath returns the path to the operator's session file.
// Checks OPSDESK_SESSION_FILE environment variable first, then falls
// back to ~/.config/opsdesk/session.json.
func SessionFilePath() string {
	if envPath := os.Getenv("OPSDESK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "opsdesk-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "opsdesk", "session.json")
}

// LoadSession reads the operator session from the well-known path.
// Returns a clear error message directing the user to "opsdesk login"
// if no session exists.
func LoadSession() (*OperatorSession, error) {
	return LoadSessionFrom(SessionFilePath())
}

// LoadSessionFrom reads an operator session from a specific file path.
func LoadSessionFrom(path string) (*OperatorSession, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no opsdesk session found at %s — run \"opsdesk login\" first", path)
		}
		return nil, fmt.Errorf("reading session file %s: %w", path, err)
	}

	var session OperatorSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", path, err)
	}

	if session.Credentials == "" {
		return nil, fmt.Errorf("session file %s has no credentials", path)
	}
	if session.BaseURL == "" {
		return nil, fmt.Errorf("session file %s has no base_url", path)
	}

	return &session, nil
}

// SaveSession writes an operator session to the well-known path.
// Creates the parent directory with mode 0700 if it doesn't exist.
// The session file is written with mode 0600 (owner-only read/write)
// since it contains the operator's credentials.
func SaveSession(session *OperatorSession) error {
	return SaveSessionTo(session, SessionFilePath())
}

// SaveSessionTo writes an operator session to a specific file path.
func SaveSessionTo(session *OperatorSession, path string) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	data = append(data, '\n')

	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", directory, err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing session file %s: %w", path, err)
	}

	return nil
}

// NewClient creates a backend client authenticated with the session's
// credentials. The request timeout comes from the config file.
func (session *OperatorSession) NewClient(logger *slog.Logger) (*deskapi.Client, error) {
	configuration, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	client, err := deskapi.NewClient(deskapi.Config{
		BaseURL:     session.BaseURL,
		Credentials: session.Credentials,
		HTTPClient:  &http.Client{Timeout: configuration.RequestTimeout()},
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create backend client: %w", err)
	}
	return client, nil
}
