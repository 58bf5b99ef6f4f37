package sdk

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"
)

// SessionState is an immutable snapshot of a Session, safe to hand to the
// navigation guard.
type SessionState struct {
	Token   string
	User    *User
	Loading bool
	Error   string
}

// IsAuthenticated reports whether a token is present. A restored session
// is authenticated before its profile is known.
func (s SessionState) IsAuthenticated() bool {
	return s.Token != ""
}

// IsAdmin reports whether the user holds an admin-tier role. False when the
// profile is not known.
func (s SessionState) IsAdmin() bool {
	return s.User.IsAdmin()
}

// Role returns the user's role, or "" when the profile is not known.
func (s SessionState) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}

// Session owns the process's authentication state. Create one per process
// with NewSession and pass it to everything that needs auth state.
type Session struct {
	client *Client
	store  CredentialStore
	log    logr.Logger
	now    func() time.Time

	fetchProfile bool

	// opMu serialises login, register, logout and init so that one call
	// owns the loading/error/token mutations from start to cleanup.
	opMu sync.Mutex

	mu      sync.RWMutex
	token   string
	user    *User
	loading bool
	lastErr string
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the session logger.
func WithSessionLogger(log logr.Logger) SessionOption {
	return func(s *Session) { s.log = log }
}

// WithClock overrides the clock used for default timestamps.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithoutProfileFetch makes Init trust the persisted token without
// fetching the profile. IsAdmin stays false until Profile is called.
func WithoutProfileFetch() SessionOption {
	return func(s *Session) { s.fetchProfile = false }
}

// NewSession creates an empty session bound to client and store and
// registers it as the client's session-expired handler.
func NewSession(client *Client, store CredentialStore, opts ...SessionOption) *Session {
	s := &Session{
		client:       client,
		store:        store,
		log:          logr.Discard(),
		now:          time.Now,
		fetchProfile: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	client.Transport().OnSessionExpired(s.resetIfCurrent)
	return s
}

// Init seeds the session from the persisted token. When a token exists the
// profile is fetched so that role-based checks work immediately; an
// expired access token is refreshed first when a refresh token is held.
// A rejected token clears the session. Other profile failures leave the
// session authenticated without a user. Credentials that cannot be read
// are deleted and the session starts empty.
func (s *Session) Init(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	creds, err := s.store.LoadCredentials()
	if err != nil {
		if errors.Is(err, ErrNotLoggedIn) {
			s.log.V(1).Info("no persisted session")
			return nil
		}
		// unreadable credentials must not lock the user out of login
		s.log.Error(err, "discarding unreadable persisted credentials")
		if derr := s.store.DeleteCredentials(); derr != nil {
			s.log.Error(derr, "failed to delete persisted credentials")
		}
		return nil
	}
	if creds == nil || creds.AccessToken == "" {
		return nil
	}

	s.mu.Lock()
	s.token = creds.AccessToken
	s.mu.Unlock()
	s.log.V(1).Info("restored persisted session")

	if !s.fetchProfile {
		return nil
	}

	if creds.IsExpired() && creds.RefreshToken != "" {
		if err := s.refreshLocked(ctx, creds.RefreshToken); err != nil {
			s.log.Info("token refresh failed", "error", err.Error())
		}
	}

	if _, err := s.profileLocked(ctx); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil
		}
		s.log.Info("could not fetch profile for restored session", "error", err.Error())
	}
	return nil
}

// Login authenticates with username/password. On success the token is
// persisted and the user populated. On failure LastError holds the
// message, the token and user are untouched, and the failure is returned.
func (s *Session) Login(ctx context.Context, input LoginInput) (*User, error) {
	return s.authenticate(ctx, func() (*AuthResponse, error) {
		return s.client.Login(ctx, input)
	})
}

// Register creates an account and signs in with the same contract as Login.
func (s *Session) Register(ctx context.Context, input RegisterInput) (*User, error) {
	return s.authenticate(ctx, func() (*AuthResponse, error) {
		return s.client.Register(ctx, input)
	})
}

func (s *Session) authenticate(ctx context.Context, call func() (*AuthResponse, error)) (*User, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	resp, err := call()
	if err != nil {
		s.fail(err)
		return nil, err
	}

	now := s.now()
	creds := credentialsFromToken(&resp.TokenResponse, now)
	if err := s.client.Transport().saveCredentials(s.store, creds); err != nil {
		err = fmt.Errorf("save credentials: %w", err)
		s.fail(err)
		return nil, err
	}

	user := resp.User.toUser(now)
	s.mu.Lock()
	s.token = creds.AccessToken
	s.user = user
	s.mu.Unlock()

	s.log.V(1).Info("authenticated", "user", user.Username, "role", string(user.Role))
	u := *user
	return &u, nil
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()
}

// Logout clears the local session and then tells the server. Local state
// is cleared no matter what the server says; notification failures are
// logged and not returned. Only a failure to delete the persisted token is
// returned.
func (s *Session) Logout(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	token := s.token
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	storeErr := s.store.DeleteCredentials()
	if storeErr != nil {
		s.log.Error(storeErr, "failed to delete persisted credentials")
	}

	if token != "" {
		if err := s.client.Logout(ctx, token); err != nil {
			s.log.Info("logout notification failed", "error", err.Error())
		}
	}

	if storeErr != nil {
		return fmt.Errorf("delete credentials: %w", storeErr)
	}
	return nil
}

// Profile re-fetches the user profile and stores it in the session.
func (s *Session) Profile(ctx context.Context) (*User, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.profileLocked(ctx)
}

func (s *Session) profileLocked(ctx context.Context) (*User, error) {
	if !s.IsAuthenticated() {
		return nil, ErrNotLoggedIn
	}
	payload, err := s.client.Profile(ctx)
	if err != nil {
		return nil, err
	}
	user := payload.toUser(s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	// the token may have been cleared by a concurrent expiry
	if s.token == "" {
		return nil, ErrSessionExpired
	}
	s.user = user
	u := *user
	return &u, nil
}

// Refresh exchanges the persisted refresh token for new credentials.
func (s *Session) Refresh(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	creds, err := s.store.LoadCredentials()
	if err != nil {
		return err
	}
	if creds.RefreshToken == "" {
		return errors.New("no refresh token available; please log in again")
	}
	return s.refreshLocked(ctx, creds.RefreshToken)
}

func (s *Session) refreshLocked(ctx context.Context, refreshToken string) error {
	tok, err := s.client.Refresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	creds := credentialsFromToken(tok, s.now())
	if creds.RefreshToken == "" {
		creds.RefreshToken = refreshToken
	}
	if err := s.client.Transport().saveCredentials(s.store, creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	s.mu.Lock()
	s.token = creds.AccessToken
	s.mu.Unlock()
	return nil
}

// Expire clears the session after the server rejected its token. The
// transport calls it automatically on a 401.
func (s *Session) Expire() {
	if err := s.store.DeleteCredentials(); err != nil {
		s.log.Error(err, "failed to delete persisted credentials")
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
}

// resetIfCurrent clears the session only while it still holds the
// rejected token.
func (s *Session) resetIfCurrent(rejected string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != rejected {
		s.log.V(1).Info("ignoring expiry of a replaced token")
		return
	}
	s.token = ""
	s.user = nil
}

// IsAuthenticated reports whether a token is held.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// IsAdmin reports whether the user holds an admin-tier role.
func (s *Session) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

// User returns a copy of the current user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Token returns the in-memory bearer token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Loading reports whether a login or registration is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the message of the last failed login or registration.
func (s *Session) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Snapshot returns a consistent copy of the session state.
func (s *Session) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := SessionState{
		Token:   s.token,
		Loading: s.loading,
		Error:   s.lastErr,
	}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}
