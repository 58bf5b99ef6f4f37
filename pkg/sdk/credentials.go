package sdk

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotLoggedIn is returned by a CredentialStore that holds no credentials.
var ErrNotLoggedIn = errors.New("not logged in")

// Credentials represents the persisted authentication credentials.
// The access token is opaque to the client; it is only ever echoed back
// to the server as a bearer token.
type Credentials struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// IsExpired reports whether the access token is past its known expiry.
// Credentials without a known expiry never expire client-side.
func (c *Credentials) IsExpired() bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(c.ExpiresAt)
}

// CredentialStore persists the bearer token across process restarts.
// Implementations must not validate the token.
type CredentialStore interface {
	// LoadCredentials returns ErrNotLoggedIn when nothing is persisted.
	LoadCredentials() (*Credentials, error)
	// SaveCredentials replaces any previously persisted credentials.
	SaveCredentials(credentials *Credentials) error
	// DeleteCredentials removes persisted credentials. Deleting from an
	// empty store is not an error.
	DeleteCredentials() error
}

// MemoryStore is a process-local CredentialStore.
type MemoryStore struct {
	mu    sync.Mutex
	creds *Credentials
}

var _ CredentialStore = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadCredentials() (*Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil, ErrNotLoggedIn
	}
	c := *s.creds
	return &c, nil
}

func (s *MemoryStore) SaveCredentials(credentials *Credentials) error {
	if credentials == nil {
		return errors.New("credentials are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *credentials
	s.creds = &c
	return nil
}

func (s *MemoryStore) DeleteCredentials() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = nil
	return nil
}

// storedToken returns the persisted access token, or "" when the store is
// empty or unreadable.
func storedToken(store CredentialStore) string {
	if store == nil {
		return ""
	}
	creds, err := store.LoadCredentials()
	if err != nil || creds == nil {
		return ""
	}
	return creds.AccessToken
}

// maxExpiresIn caps expires_in (ten years, in seconds) so the Duration
// conversion cannot overflow.
const maxExpiresIn int64 = 10 * 365 * 24 * 60 * 60

// credentialsFromToken builds Credentials from a token response.
// When the server omits expires_in, the expiry is read from the token's
// exp claim if the token happens to be a JWT. The signature is not
// checked; the server remains the only authority on token validity.
func credentialsFromToken(tok *TokenResponse, now time.Time) *Credentials {
	creds := &Credentials{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
	}
	if creds.TokenType == "" {
		creds.TokenType = "Bearer"
	}
	switch {
	case tok.ExpiresIn > 0:
		creds.ExpiresAt = now.Add(time.Duration(min(tok.ExpiresIn, maxExpiresIn)) * time.Second)
	default:
		creds.ExpiresAt = tokenExpiry(tok.AccessToken)
	}
	return creds
}

func tokenExpiry(accessToken string) time.Time {
	if strings.Count(accessToken, ".") != 2 {
		return time.Time{}
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
