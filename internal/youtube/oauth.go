package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// scope grants comment and video management on the authorized channel.
const scope = "https://www.googleapis.com/auth/youtube.force-ssl"

type clientSecretFile struct {
	Installed clientSecret `json:"installed"`
	Web       clientSecret `json:"web"`
}

type clientSecret struct {
	ClientID     string   `json:"client_id"`
	ClientSecret string   `json:"client_secret"`
	RedirectURIs []string `json:"redirect_uris"`
}

// OAuthConfig builds the oauth2 config from a downloaded client secret
// file (installed-app or web shape).
func OAuthConfig(clientFile string) (*oauth2.Config, error) {
	data, err := os.ReadFile(clientFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth client file: %w", err)
	}
	var parsed clientSecretFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse oauth client file: %w", err)
	}
	secret := parsed.Installed
	if secret.ClientID == "" {
		secret = parsed.Web
	}
	if secret.ClientID == "" || secret.ClientSecret == "" {
		return nil, fmt.Errorf("oauth client file %s has no installed or web credentials", clientFile)
	}
	redirect := "http://localhost"
	if len(secret.RedirectURIs) > 0 {
		redirect = secret.RedirectURIs[0]
	}
	return &oauth2.Config{
		ClientID:     secret.ClientID,
		ClientSecret: secret.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirect,
		Scopes:       []string{scope},
	}, nil
}

// LoadToken reads a cached token from disk.
func LoadToken(tokenFile string) (*oauth2.Token, error) {
	data, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read oauth token file: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token file: %w", err)
	}
	return &token, nil
}

// SaveToken writes a token to disk with owner-only permissions.
func SaveToken(tokenFile string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode oauth token: %w", err)
	}
	if err := os.WriteFile(tokenFile, data, 0o600); err != nil {
		return fmt.Errorf("write oauth token file: %w", err)
	}
	return nil
}

// AuthedHTTPClient returns an http.Client that attaches and refreshes
// the cached token, persisting refreshed tokens back to tokenFile so the
// next run does not repeat the refresh.
func AuthedHTTPClient(ctx context.Context, clientFile, tokenFile string, timeout time.Duration) (*http.Client, error) {
	cfg, err := OAuthConfig(clientFile)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("no cached oauth token (run the auth command first): %w", err)
	}
	source := &persistingTokenSource{
		wrapped:   cfg.TokenSource(ctx, token),
		tokenFile: tokenFile,
		last:      token.AccessToken,
	}
	client := oauth2.NewClient(ctx, source)
	client.Timeout = timeout
	return client, nil
}

// persistingTokenSource saves every refreshed token back to disk.
type persistingTokenSource struct {
	wrapped   oauth2.TokenSource
	tokenFile string

	mu   sync.Mutex
	last string
}

func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.wrapped.Token()
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if token.AccessToken != p.last {
		if err := SaveToken(p.tokenFile, token); err != nil {
			return nil, err
		}
		p.last = token.AccessToken
	}
	return token, nil
}
