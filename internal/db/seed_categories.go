package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// the frontend expects these to exist on a fresh database; real deployments
// manage them through migrations, this is a convenience for dev setups.
var defaultCategories = []string{
	"Bolos e Tortas",
	"Carnes",
	"Aves",
	"Peixes e Frutos do Mar",
	"Massas",
	"Saladas",
	"Sopas",
	"Sobremesas",
	"Bebidas",
	"Lanches",
}

func EnsureCategories(ctx context.Context, pool *pgxpool.Pool) error {
	var count int

	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM categorias`).Scan(&count)

	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	for _, nome := range defaultCategories {
		_, err = pool.Exec(ctx, `INSERT INTO categorias (nome) VALUES ($1)`, nome)

		if err != nil {
			return err
		}
	}

	return nil
}
