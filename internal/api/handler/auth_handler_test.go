package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shoply/catalog-system/internal/api/middleware"
	"github.com/shoply/catalog-system/internal/core/domain"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, name, email, password string) (*domain.User, error)
	loginFn  func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.signupFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) IssueToken(string) (string, error) { return "", nil }

func (s *stubAuthService) VerifyToken(string) (string, error) {
	return "", domain.ErrTokenInvalid
}

func formContext(t *testing.T, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e := echo.New()
	e.Validator = NewValidator()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, name, email, password string) (*domain.User, error) {
			if name != "Alice" || email != "alice@example.com" || password != "pass123" {
				t.Fatalf("unexpected signup args: %s %s %s", name, email, password)
			}
			return &domain.User{ID: "u1", Name: name, Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, rec := formContext(t, "/signup", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"pass123"},
	})
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Message string       `json:"message"`
		User    *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.User.ID != "u1" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password data leaked in response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour)

	c, _ := formContext(t, "/signup", url.Values{"name": {"Alice"}})
	err := h.Signup(c)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(ve.Fields) != 2 {
		t.Fatalf("expected email and password flagged, got %v", ve.Fields)
	}
}

func TestAuthHandler_Signup_BrowserRedirectsToLogin(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, name, email, _ string) (*domain.User, error) {
			return &domain.User{ID: "u1", Name: name, Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, rec := formContext(t, "/signup", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@example.com"},
		"password": {"pass123"},
	})
	c.Request().Header.Set("Accept", "text/html")
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected 303 to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthHandler_Login_SetsCookie(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "signed-token", &domain.User{ID: "u1", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, rec := formContext(t, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"pass123"},
	})
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("token cookie not set")
	}
	if cookie.Value != "signed-token" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("expected token in body, got %q", resp.Token)
	}
}

func TestAuthHandler_Login_BrowserRedirectsHome(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, _ string) (string, *domain.User, error) {
			return "signed-token", &domain.User{ID: "u1", Email: email}, nil
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, rec := formContext(t, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"pass123"},
	})
	c.Request().Header.Set("Accept", "text/html")
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("expected 303 to /, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, time.Hour)

	c, rec := formContext(t, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	})
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			t.Fatalf("cookie must not be set on failed login")
		}
	}
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: "signed-token"})
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.CookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("expected expiring cookie in response")
	}
	if cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("expected cleared cookie, got %+v", cookie)
	}
}
