package sdk

import (
	"context"
	"errors"
	"net/http"
	"os"
)

const (
	pathLogin    = "/auth/login"
	pathRegister = "/auth/register"
	pathLogout   = "/auth/logout"
	pathProfile  = "/auth/me"
	pathRefresh  = "/auth/refresh"
)

// Login exchanges username/password for tokens. A rejected attempt yields
// *AuthenticationError carrying the server's detail message, or
// "Login failed" when the server gave none.
func (c *Client) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	return c.authenticate(ctx, "login", pathLogin, "Login failed", input)
}

// Register creates an account and signs it in. Failures mirror Login with
// the fallback message "Registration failed".
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	return c.authenticate(ctx, "register", pathRegister, "Registration failed", input)
}

func (c *Client) authenticate(ctx context.Context, op, path, fallback string, body any) (*AuthResponse, error) {
	resp, err := c.transport.Raw(ctx, http.MethodPost, path, body, WithoutAuth())
	if err != nil {
		return nil, &AuthenticationError{Op: op, Message: err.Error(), Err: err}
	}
	if !resp.OK() {
		msg := errorDetail(resp.Body)
		if msg == "" {
			msg = fallback
		}
		return nil, &AuthenticationError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	}

	var out AuthResponse
	if err := decodeValidated("POST "+path, resp.Body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout tells the server to invalidate token. The response body is ignored.
func (c *Client) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	resp, err := c.transport.Raw(ctx, http.MethodPost, pathLogout, nil, WithBearer(token))
	if err != nil {
		return err
	}
	if !resp.OK() {
		return &APIError{Method: http.MethodPost, Path: pathLogout, StatusCode: resp.StatusCode, Message: errorDetail(resp.Body)}
	}
	return nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*UserPayload, error) {
	resp, err := c.transport.Raw(ctx, http.MethodGet, pathProfile, nil)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &APIError{Method: http.MethodGet, Path: pathProfile, StatusCode: resp.StatusCode, Message: errorDetail(resp.Body)}
	}
	var out UserPayload
	if err := decodeValidated("GET "+pathProfile, resp.Body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new access token.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, errors.New("refresh token is required")
	}
	body := map[string]string{"refresh_token": refreshToken}
	resp, err := c.transport.Raw(ctx, http.MethodPost, pathRefresh, body, WithoutAuth())
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &APIError{Method: http.MethodPost, Path: pathRefresh, StatusCode: resp.StatusCode, Message: errorDetail(resp.Body)}
	}
	var out TokenResponse
	if err := decodeValidated("POST "+pathRefresh, resp.Body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// EnvCreds holds username/password credentials read from the environment.
type EnvCreds struct {
	Username string
	Password string
}

// CheckEnvCreds reports whether DALEEL_USERNAME and DALEEL_PASSWORD are set.
func CheckEnvCreds() (bool, EnvCreds) {
	creds := EnvCreds{
		Username: os.Getenv("DALEEL_USERNAME"),
		Password: os.Getenv("DALEEL_PASSWORD"),
	}
	return creds.Username != "" && creds.Password != "", creds
}
