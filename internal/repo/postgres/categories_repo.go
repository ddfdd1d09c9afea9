package postgres

import (
	"context"

	"recipehub/internal/domain/category"
	"recipehub/internal/observability"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CategoriesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewCategoriesRepo(pool *pgxpool.Pool, prom *observability.Prom) *CategoriesRepo {
	return &CategoriesRepo{pool: pool, prom: prom}
}

func (r *CategoriesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *CategoriesRepo) List(ctx context.Context) ([]category.Category, error) {
	var out []category.Category

	err := r.observe("categories.list", func() error {
		rows, err := r.pool.Query(ctx, `SELECT id, nome FROM categorias ORDER BY nome ASC`)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]category.Category, 0, 16)

		for rows.Next() {
			var c category.Category

			err = rows.Scan(&c.ID, &c.Nome)

			if err != nil {
				return err
			}

			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *CategoriesRepo) Count(ctx context.Context) (int, error) {
	var count int

	err := r.observe("categories.count", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM categorias`).Scan(&count)
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}
