package msgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

var requiredScopes = []string{
	"https://graph.microsoft.com/Calendars.Read",
	"offline_access",
}

func msEndpoint(tenantID, path string) string {
	return "https://login.microsoftonline.com/" + tenantID + "/oauth2/v2.0/" + path
}

// OAuthConfig returns the device-code oauth2 configuration for Microsoft
// Graph with the given tenant and client IDs.
func OAuthConfig(tenantID, clientID string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: clientID,
		Scopes:   requiredScopes,
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: msEndpoint(tenantID, "devicecode"),
			TokenURL:      msEndpoint(tenantID, "token"),
			AuthStyle:     oauth2.AuthStyleInParams,
		},
	}
}

// TokenFile persists an oauth2 token as JSON.
type TokenFile struct {
	path string
}

// NewTokenFile returns a TokenFile at path.
func NewTokenFile(path string) TokenFile {
	return TokenFile{path: path}
}

// TokenPath returns the token file location inside dir.
func TokenPath(dir string) string {
	return filepath.Join(dir, "auth", "msgraph_tokens.json")
}

// Path returns the file location.
func (f TokenFile) Path() string { return f.path }

// Load reads the saved token. A missing file yields (nil, nil).
func (f TokenFile) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("corrupt token file (delete %s to re-authenticate): %w", f.path, err)
	}
	return &tok, nil
}

// Save writes tok atomically with owner-only permissions.
func (f TokenFile) Save(tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("creating auth directory: %w", err)
	}
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling token: %w", err)
	}
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving token file: %w", err)
	}
	return nil
}

// Authenticate returns a usable token. It prefers the saved token, then a
// refresh, and finally runs the device code flow, printing the sign-in
// instructions to prompt.
func Authenticate(ctx context.Context, cfg *oauth2.Config, tokens TokenFile, prompt io.Writer, logger zerolog.Logger) (*oauth2.Token, error) {
	tok, err := tokens.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring saved token")
		tok = nil
	}

	if tok.Valid() {
		logger.Debug().Str("path", tokens.Path()).Msg("using saved token")
		return tok, nil
	}

	if tok != nil && tok.RefreshToken != "" {
		refreshed, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			if err := tokens.Save(refreshed); err != nil {
				logger.Warn().Err(err).Msg("could not save refreshed token")
			}
			return refreshed, nil
		}
		logger.Warn().Err(err).Msg("token refresh failed, re-authenticating")
	}

	resp, err := cfg.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device auth request failed: %w", err)
	}

	fmt.Fprintln(prompt)
	fmt.Fprintln(prompt, "To sign in, use a web browser to open the page:")
	fmt.Fprintf(prompt, "  %s\n", resp.VerificationURI)
	fmt.Fprintf(prompt, "Enter the code: %s\n", resp.UserCode)
	fmt.Fprintln(prompt)

	newTok, err := cfg.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device authentication failed: %w", err)
	}
	if err := tokens.Save(newTok); err != nil {
		logger.Warn().Err(err).Msg("could not save token")
	}
	return newTok, nil
}
