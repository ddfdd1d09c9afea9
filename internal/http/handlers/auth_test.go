package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipehub/internal/auth"
	"recipehub/internal/domain/user"
	"recipehub/internal/http/handlers"
	"recipehub/internal/security"

	"github.com/gin-gonic/gin"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// Fake repository implementations of the handlers interfaces

type fakeUsersRepo struct {
	getByLoginFn func(ctx context.Context, login string) (user.User, error)
	createFn     func(ctx context.Context, login, passwordHash, nome string) (user.User, error)
}

func (f *fakeUsersRepo) GetByLogin(ctx context.Context, login string) (user.User, error) {
	if f.getByLoginFn != nil {
		return f.getByLoginFn(ctx, login)
	}

	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) Create(ctx context.Context, login, passwordHash, nome string) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, login, passwordHash, nome)
	}

	return user.User{ID: 1, Login: login, PasswordHash: passwordHash, Nome: nome}, nil
}

type fakeIssuer struct {
	issueFn func(userID int64, login string) (string, error)
}

func (f *fakeIssuer) Issue(userID int64, login string) (string, error) {
	if f.issueFn != nil {
		return f.issueFn(userID, login)
	}

	return "token-for-tests", nil
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestRegisterHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeUsersRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"login":"maria","senha":"segredo123","nome":"Maria Silva"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, login, passwordHash, nome string) (user.User, error) {
					if passwordHash == "segredo123" {
						t.Fatal("handler must never persist the plaintext password")
					}
					return user.User{ID: 5, Login: login, PasswordHash: passwordHash, Nome: nome}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing_login",
			body:           `{"senha":"segredo123"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing_senha",
			body:           `{"login":"maria"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "senha_too_short",
			body: `{"login":"maria","senha":"12345"}`,
			// min=6, the repo should not be called
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "login_already_taken",
			body: `{"login":"maria","senha":"segredo123"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getByLoginFn = func(ctx context.Context, login string) (user.User, error) {
					return user.User{ID: 1, Login: login}, nil
				}
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name: "duplicate_raced_past_precheck",
			body: `{"login":"maria","senha":"segredo123"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				// pre-check misses but the unique index still fires
				f.createFn = func(ctx context.Context, login, passwordHash, nome string) (user.User, error) {
					return user.User{}, user.ErrLoginTaken
				}
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name: "storage_failure",
			body: `{"login":"maria","senha":"segredo123"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, login, passwordHash, nome string) (user.User, error) {
					return user.User{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUsersRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewAuthHandler(repo, repo, &fakeIssuer{})

			r := setupRouter(http.MethodPost, "/api/auth/register", h.Register)

			w := postJSON(t, r, "/api/auth/register", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusCreated {
				var resp struct {
					Message string `json:"message"`
					UserID  int64  `json:"userId"`
				}

				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v body=%s", err, w.Body.String())
				}

				if resp.UserID != 5 {
					t.Fatalf("got userId %d, want 5", resp.UserID)
				}

				if resp.Message == "" {
					t.Fatal("expected a non-empty message")
				}
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	hash, err := security.HashPassword("segredo123")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	knownUser := user.User{ID: 9, Login: "maria", PasswordHash: hash}

	lookup := func(ctx context.Context, login string) (user.User, error) {
		if login == "maria" {
			return knownUser, nil
		}

		return user.User{}, user.ErrNotFound
	}

	t.Run("success", func(t *testing.T) {
		repo := &fakeUsersRepo{getByLoginFn: lookup}

		h := handlers.NewAuthHandler(repo, repo, &fakeIssuer{})
		r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

		w := postJSON(t, r, "/api/auth/login", `{"login":"maria","senha":"segredo123"}`)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200, body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			Message string `json:"message"`
			Token   string `json:"token"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}

		if resp.Token == "" {
			t.Fatal("expected a token in the response")
		}
	})

	t.Run("missing_fields", func(t *testing.T) {
		repo := &fakeUsersRepo{getByLoginFn: lookup}

		h := handlers.NewAuthHandler(repo, repo, &fakeIssuer{})
		r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

		w := postJSON(t, r, "/api/auth/login", `{"login":"maria"}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("got status %d, want 400, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("wrong_password_and_unknown_login_are_indistinguishable", func(t *testing.T) {
		repo := &fakeUsersRepo{getByLoginFn: lookup}

		h := handlers.NewAuthHandler(repo, repo, &fakeIssuer{})
		r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

		wrongPassword := postJSON(t, r, "/api/auth/login", `{"login":"maria","senha":"errada1"}`)
		unknownLogin := postJSON(t, r, "/api/auth/login", `{"login":"ninguem","senha":"qualquer1"}`)

		if wrongPassword.Code != http.StatusUnauthorized {
			t.Fatalf("wrong password: got status %d, want 401", wrongPassword.Code)
		}

		if unknownLogin.Code != http.StatusUnauthorized {
			t.Fatalf("unknown login: got status %d, want 401", unknownLogin.Code)
		}

		// identical bodies so the endpoint cannot be used to probe for accounts
		if wrongPassword.Body.String() != unknownLogin.Body.String() {
			t.Fatalf("401 bodies should not differ:\n%s\n%s", wrongPassword.Body.String(), unknownLogin.Body.String())
		}
	})

	t.Run("missing_signing_secret", func(t *testing.T) {
		repo := &fakeUsersRepo{getByLoginFn: lookup}

		issuer := &fakeIssuer{issueFn: func(userID int64, login string) (string, error) {
			return "", auth.ErrMissingSecret
		}}

		h := handlers.NewAuthHandler(repo, repo, issuer)
		r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

		w := postJSON(t, r, "/api/auth/login", `{"login":"maria","senha":"segredo123"}`)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("got status %d, want 500, body=%s", w.Code, w.Body.String())
		}
	})
}
