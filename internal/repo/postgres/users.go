package postgres

import (
	"context"
	"errors"
	"time"

	"recipehub/internal/domain/user"
	"recipehub/internal/observability"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) GetByLogin(ctx context.Context, login string) (user.User, error) {
	var u user.User
	var nome *string

	err := r.observe("users.get_by_login", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id, login, senha_hash, nome, criado_em, alterado_em
	         FROM usuarios
	         WHERE login = $1`,
			login,
		).Scan(
			&u.ID,
			&u.Login,
			&u.PasswordHash,
			&nome,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	if nome != nil {
		u.Nome = *nome
	}

	return u, nil
}

// Create inserts a new user row. The unique index on login is the
// authoritative duplicate check: a concurrent registration that slips past
// the handler's pre-check still surfaces here as ErrLoginTaken.
func (r *UsersRepo) Create(ctx context.Context, login, passwordHash, nome string) (user.User, error) {
	now := time.Now().UTC()

	u := user.User{
		Login:        login,
		PasswordHash: passwordHash,
		Nome:         nome,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var nomeArg *string

	if nome != "" {
		nomeArg = &nome
	}

	err := r.observe("users.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO usuarios (login, senha_hash, nome, criado_em, alterado_em)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id`,
			login, passwordHash, nomeArg, u.CreatedAt, u.UpdatedAt,
		).Scan(&u.ID)
	})

	if err != nil {
		if IsUniqueViolation(err) {
			return user.User{}, user.ErrLoginTaken
		}

		return user.User{}, err
	}

	return u, nil
}
