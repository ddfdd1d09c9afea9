package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipehub/internal/auth"
	"recipehub/internal/http/middlewares"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	verifyFn func(token string) (*auth.Claims, error)
}

func (f *fakeVerifier) Verify(token string) (*auth.Claims, error) {
	if f.verifyFn != nil {
		return f.verifyFn(token)
	}
	return &auth.Claims{UserID: 1, Login: "maria"}, nil
}

func guardedRouter(v middlewares.TokenVerifier) *gin.Engine {
	r := gin.New()

	mw := middlewares.NewAuthMiddleware(v)

	r.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		id, _ := middlewares.UserIDFromContext(c)
		login, _ := middlewares.LoginFromContext(c)

		c.JSON(http.StatusOK, gin.H{"userId": id, "login": login})
	})

	return r
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifyFn   func(token string) (*auth.Claims, error)
		wantStatus int
	}{
		{
			name:       "missing_header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not_bearer",
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "blank_token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verification_fails",
			authHeader: "Bearer bad-token",
			verifyFn: func(token string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "secret_not_configured",
			authHeader: "Bearer any-token",
			verifyFn: func(token string) (*auth.Claims, error) {
				return nil, auth.ErrMissingSecret
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "valid_token",
			authHeader: "Bearer good-token",
			verifyFn: func(token string) (*auth.Claims, error) {
				return &auth.Claims{UserID: 7, Login: "joao"}, nil
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			r := guardedRouter(&fakeVerifier{verifyFn: tt.verifyFn})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)

			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestRequireAuth_AcceptsRealManagerToken(t *testing.T) {
	m := auth.NewManager("test-secret", time.Hour)

	token, err := m.Issue(42, "maria")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := guardedRouter(m)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
	}
}
