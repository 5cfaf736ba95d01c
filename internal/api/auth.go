package api

import (
	"context"
	"net/http"
)

// Student is the authenticated user's profile as the backend reports it.
type Student struct {
	University string `json:"university"`
	RollNo     string `json:"roll_no"`
	FullName   string `json:"full_name,omitempty"`
	Role       string `json:"role,omitempty"`
}

// LoginRequest carries the credentials for /auth/login.
type LoginRequest struct {
	University string `json:"university"`
	RollNo     string `json:"roll_no"`
	FullName   string `json:"full_name"`
	Password   string `json:"password"`
}

// LoginResponse is the issued credential plus the profile echo.
type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        *Student `json:"user,omitempty"`
}

// VerifyResponse reports whether a roll number is enrolled, and the
// registered name when it is. Feeds the login form's pre-check.
type VerifyResponse struct {
	Exists   bool   `json:"exists"`
	FullName string `json:"full_name,omitempty"`
}

// Login exchanges credentials for a bearer token. Sent without an
// Authorization header so a stale local token cannot poison the call.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.call(ctx, http.MethodPost, "/auth/login", req, &resp, true); err != nil {
		return nil, err
	}
	if resp.User == nil {
		resp.User = &Student{
			University: req.University,
			RollNo:     req.RollNo,
			FullName:   req.FullName,
		}
	}
	return &resp, nil
}

// CurrentUser fetches the profile behind the active token.
func (c *Client) CurrentUser(ctx context.Context) (*Student, error) {
	var student Student
	if err := c.get(ctx, "/auth/me", &student); err != nil {
		return nil, err
	}
	return &student, nil
}

// Verify checks enrollment for a university/roll-number pair before the
// learner commits to a password.
func (c *Client) Verify(ctx context.Context, university, rollNo string) (*VerifyResponse, error) {
	body := map[string]string{"university": university, "roll_no": rollNo}
	var resp VerifyResponse
	if err := c.call(ctx, http.MethodPost, "/auth/verify", body, &resp, true); err != nil {
		return nil, err
	}
	return &resp, nil
}
