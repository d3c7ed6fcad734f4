package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devilal/catalog-api/internal/core/domain"
	"github.com/devilal/catalog-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error)
	loginFn          func(ctx context.Context, input ports.LoginInput) (*ports.AuthResult, error)
	currentUserFn    func(ctx context.Context, userID string) (*domain.User, error)
	updateProfileFn  func(ctx context.Context, userID string, fields ports.ProfileUpdate) (*domain.User, error)
	changePasswordFn func(ctx context.Context, userID, currentPassword, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.AuthResult, error) {
	return s.loginFn(ctx, input)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentUserFn(ctx, userID)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, fields ports.ProfileUpdate) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, fields)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return s.changePasswordFn(ctx, userID, currentPassword, newPassword)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, role domain.Role) {
	c.Set("principal", domain.Principal{UserID: "user-1", Role: role})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			if input.Name != "Alice" || input.Email != "alice@example.com" || input.Role != "user" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.AuthResult{
				User:  &domain.User{ID: "u1", Name: input.Name, Email: input.Email, Role: domain.RoleUser, LastLogin: time.Now()},
				Token: "token123",
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret1","userType":"user"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["success"] != true {
		t.Fatalf("expected success envelope, got %v", resp)
	}
	data, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data in response")
	}
	if data["token"] != "token123" {
		t.Fatalf("expected token in response, got %v", data["token"])
	}
	user, ok := data["user"].(map[string]any)
	if !ok || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash must never be serialized")
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", `{"email":"no-name@example.com"}`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Register_DuplicateEmailPassesThrough(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret1"}`)

	// Domain errors are passed through untouched for the API error handler.
	if err := h.Register(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Register_RoleAlias(t *testing.T) {
	var captured ports.RegisterInput
	stub := &stubAuthService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
			captured = input
			return &ports.AuthResult{User: &domain.User{Role: domain.RoleAdmin}, Token: "t"}, nil
		},
	}
	h := NewAuthHandler(stub)

	// "role" takes precedence over the storefront's "userType" alias.
	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"A","email":"a@example.com","password":"secret1","role":"admin","userType":"user"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if captured.Role != "admin" {
		t.Fatalf("expected role admin, got %q", captured.Role)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, input ports.LoginInput) (*ports.AuthResult, error) {
			if input.Email != "alice@example.com" || input.ClaimedRole != "user" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.AuthResult{
				User:  &domain.User{ID: "u1", Name: "Alice", Email: input.Email, Role: domain.RoleUser},
				Token: "token123",
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret1","userType":"user"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Login successful" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}

func TestAuthHandler_Login_MissingUserType(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _ ports.LoginInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_InvalidCredentialsPassThrough(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _ ports.LoginInput) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"bad","userType":"user"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		currentUserFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return &domain.User{ID: userID, Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/auth/me", "")
	authenticate(c, domain.RoleUser)

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	data := resp["data"].(map[string]any)
	user, ok := data["user"].(map[string]any)
	if !ok || user["id"] != "user-1" {
		t.Fatalf("unexpected user payload: %+v", data)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")

	err := h.Me(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	var captured ports.ProfileUpdate
	stub := &stubAuthService{
		updateProfileFn: func(_ context.Context, _ string, fields ports.ProfileUpdate) (*domain.User, error) {
			captured = fields
			return &domain.User{ID: "user-1", Name: *fields.Name, Email: "alice@example.com"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/auth/profile", `{"name":"New Name"}`)
	authenticate(c, domain.RoleUser)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Name == nil || *captured.Name != "New Name" {
		t.Fatalf("name not forwarded: %+v", captured)
	}
	if captured.Email != nil || captured.Avatar != nil {
		t.Fatalf("absent fields should stay nil: %+v", captured)
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	called := false
	stub := &stubAuthService{
		changePasswordFn: func(_ context.Context, userID, current, next string) error {
			called = true
			if current != "oldpass" || next != "newpass1" {
				t.Fatalf("unexpected args: %s %s", current, next)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/auth/password",
		`{"currentPassword":"oldpass","newPassword":"newpass1"}`)
	authenticate(c, domain.RoleUser)

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("service not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	authenticate(c, domain.RoleUser)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	if resp["message"] != "Logged out successfully" {
		t.Fatalf("unexpected message: %v", resp["message"])
	}
}
