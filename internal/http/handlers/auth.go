package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipehub/internal/auth"
	"recipehub/internal/config"
	"recipehub/internal/domain/user"
	"recipehub/internal/security"

	"github.com/gin-gonic/gin"
)

type UserReader interface {
	GetByLogin(ctx context.Context, login string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, login, passwordHash, nome string) (user.User, error)
}

// Keep issuance behind a small interface so tests can fake a broken signer.
type TokenIssuer interface {
	Issue(userID int64, login string) (string, error)
}

type AuthHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        TokenIssuer
}

func NewAuthHandler(users UserReader, userWriter UserWriter, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwt,
	}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	// pre-check for a friendlier 409; the unique index still backstops the
	// race where two identical registrations pass this lookup together
	_, err := h.users.GetByLogin(cctx, req.Login)

	if err == nil {
		RespondConflict(ctx, "login_taken", "This login is already registered.")
		return
	}

	if !errors.Is(err, user.ErrNotFound) {
		RespondInternal(ctx, "Could not register user")
		return
	}

	hash, err := security.HashPassword(req.Senha)

	if err != nil {
		RespondInternal(ctx, "Could not register user")
		return
	}

	u, err := h.userWriter.Create(cctx, req.Login, hash, req.Nome)

	if err != nil {
		if errors.Is(err, user.ErrLoginTaken) {
			RespondConflict(ctx, "login_taken", "This login is already registered.")
			return
		}

		RespondInternal(ctx, "Could not register user")
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"userId":  u.ID,
	})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// unknown login and wrong password produce the same response so the
	// endpoint cannot be used to enumerate accounts
	foundUser, err := h.users.GetByLogin(cctx, req.Login)
	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Login or password is incorrect.")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Senha)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Login or password is incorrect.")
		return
	}

	token, err := h.jwt.Issue(foundUser.ID, foundUser.Login)

	if err != nil {
		if errors.Is(err, auth.ErrMissingSecret) {
			RespondInternal(ctx, "Server configuration is invalid")
			return
		}

		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   token,
	})
}
