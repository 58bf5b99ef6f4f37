package sdk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// User is the authenticated user's profile snapshot.
type User struct {
	ID        string
	Username  string
	Email     string
	Role      Role
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	LastLogin *time.Time
}

// IsAdmin reports whether the user holds an admin-tier role.
func (u *User) IsAdmin() bool {
	return u != nil && IsAdminRole(u.Role)
}

// LoginInput carries username/password credentials.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterInput carries self-registration data.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// TokenResponse is the token half of a login, registration or refresh
// response.
type TokenResponse struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in" validate:"gte=0"`
}

// AuthResponse is the body returned by /auth/login and /auth/register.
type AuthResponse struct {
	TokenResponse
	User *UserPayload `json:"user" validate:"required"`
}

// UserPayload is the wire form of a user profile.
type UserPayload struct {
	ID        string     `json:"id" validate:"required"`
	Username  string     `json:"username" validate:"required"`
	Email     string     `json:"email" validate:"omitempty,email"`
	Role      string     `json:"role" validate:"required,oneof=user domain_admin global_admin"`
	IsActive  *bool      `json:"is_active"`
	CreatedAt *Timestamp `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at"`
	LastLogin *Timestamp `json:"last_login"`
}

// toUser converts a validated payload. Missing timestamps default to now;
// a missing active flag defaults to true.
func (p *UserPayload) toUser(now time.Time) *User {
	u := &User{
		ID:        p.ID,
		Username:  p.Username,
		Email:     p.Email,
		Role:      Role(p.Role),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.CreatedAt != nil && !p.CreatedAt.IsZero() {
		u.CreatedAt = p.CreatedAt.Time
	}
	if p.UpdatedAt != nil && !p.UpdatedAt.IsZero() {
		u.UpdatedAt = p.UpdatedAt.Time
	}
	if p.LastLogin != nil && !p.LastLogin.IsZero() {
		t := p.LastLogin.Time
		u.LastLogin = &t
	}
	return u
}

// Timestamp accepts RFC 3339 as well as the offset-less ISO 8601 form some
// backends emit. Offset-less values are read as UTC.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeValidated unmarshals body into out and runs struct validation.
// Every failure is reported as a MalformedResponseError.
func decodeValidated(endpoint string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Endpoint: endpoint, Err: err}
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return &MalformedResponseError{
				Endpoint: endpoint,
				Field:    fieldPath(fe.Namespace()),
				Err:      fmt.Errorf("failed %q validation", fe.Tag()),
			}
		}
		return &MalformedResponseError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace,
// e.g. "AuthResponse.user.id" becomes "user.id".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
