package postgres

import (
	"context"
	"errors"

	"recipehub/internal/domain/category"
	"recipehub/internal/domain/recipe"
	"recipehub/internal/observability"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RecipesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewRecipesRepo(pool *pgxpool.Pool, prom *observability.Prom) *RecipesRepo {
	return &RecipesRepo{pool: pool, prom: prom}
}

func (r *RecipesRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

// every query here is scoped by (id, id_usuarios); a recipe owned by someone
// else scans as pgx.ErrNoRows and comes back as recipe.ErrNotFound, the same
// as a recipe that does not exist at all.

const recipeColumns = `
	r.id,
	r.nome,
	r.tempo_preparo_minutos,
	r.porcoes,
	r.modo_preparo,
	r.ingredientes,
	r.id_usuarios,
	r.id_categorias,
	c.nome,
	r.criado_em,
	r.alterado_em
`

func scanRecipe(row pgx.Row) (recipe.Recipe, error) {
	var (
		rec          recipe.Recipe
		rawList      string
		categoryID   *int64
		categoryNome *string
	)

	err := row.Scan(
		&rec.ID,
		&rec.Nome,
		&rec.TempoPreparo,
		&rec.Porcoes,
		&rec.ModoPreparo,
		&rawList,
		&rec.OwnerID,
		&categoryID,
		&categoryNome,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)

	if err != nil {
		return recipe.Recipe{}, err
	}

	rec.Ingredientes, err = recipe.DecodeIngredients(rawList)

	if err != nil {
		return recipe.Recipe{}, err
	}

	// id_categorias is nulled when a category is removed
	if categoryID != nil {
		c := category.Category{ID: *categoryID}

		if categoryNome != nil {
			c.Nome = *categoryNome
		}

		rec.Category = &c
	}

	return rec, nil
}

func (r *RecipesRepo) Create(ctx context.Context, ownerID int64, req recipe.CreateRecipeRequest) (recipe.Recipe, error) {
	rawList, err := recipe.EncodeIngredients(req.Ingredientes)

	if err != nil {
		return recipe.Recipe{}, err
	}

	var id int64

	err = r.observe("recipes.create", func() error {
		return r.pool.QueryRow(ctx,
			`INSERT INTO receitas (nome, tempo_preparo_minutos, porcoes, modo_preparo, ingredientes, id_usuarios, id_categorias, criado_em, alterado_em)
			VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW())
			RETURNING id`,
			req.Nome, req.TempoPreparo, req.Porcoes, req.ModoPreparo, rawList, ownerID, req.CategoriaID,
		).Scan(&id)
	})

	if err != nil {
		// dangling categoriaId, rejected by the FK
		if IsForeignKeyViolation(err) {
			return recipe.Recipe{}, category.ErrNotFound
		}

		return recipe.Recipe{}, err
	}

	return r.GetByID(ctx, id, ownerID)
}

func (r *RecipesRepo) ListByOwner(ctx context.Context, ownerID int64) ([]recipe.Recipe, error) {
	var out []recipe.Recipe

	err := r.observe("recipes.list_by_owner", func() error {
		rows, err := r.pool.Query(ctx,
			`SELECT `+recipeColumns+`
			FROM receitas r
			LEFT JOIN categorias c ON c.id = r.id_categorias
			WHERE r.id_usuarios = $1
			ORDER BY r.criado_em DESC`,
			ownerID,
		)

		if err != nil {
			return err
		}

		defer rows.Close()

		out = make([]recipe.Recipe, 0, 16)

		for rows.Next() {
			rec, err := scanRecipe(rows)

			if err != nil {
				return err
			}

			out = append(out, rec)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *RecipesRepo) GetByID(ctx context.Context, id, ownerID int64) (recipe.Recipe, error) {
	var rec recipe.Recipe

	err := r.observe("recipes.get_by_id", func() error {
		row := r.pool.QueryRow(ctx,
			`SELECT `+recipeColumns+`
			FROM receitas r
			LEFT JOIN categorias c ON c.id = r.id_categorias
			WHERE r.id = $1 AND r.id_usuarios = $2`,
			id, ownerID,
		)

		var err error
		rec, err = scanRecipe(row)

		return err
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return recipe.Recipe{}, recipe.ErrNotFound
		}

		return recipe.Recipe{}, err
	}

	return rec, nil
}

// Update writes the merged record back. The caller is expected to have loaded
// the recipe through GetByID first and applied the partial request onto it.
func (r *RecipesRepo) Update(ctx context.Context, rec recipe.Recipe) (recipe.Recipe, error) {
	rawList, err := recipe.EncodeIngredients(rec.Ingredientes)

	if err != nil {
		return recipe.Recipe{}, err
	}

	var categoryID *int64

	if rec.Category != nil {
		categoryID = &rec.Category.ID
	}

	var tag pgconn.CommandTag

	err = r.observe("recipes.update", func() error {
		var err error

		tag, err = r.pool.Exec(ctx,
			`UPDATE receitas
				SET nome = $3,
					tempo_preparo_minutos = $4,
					porcoes = $5,
					modo_preparo = $6,
					ingredientes = $7,
					id_categorias = $8,
					alterado_em = NOW()
			WHERE id = $1 AND id_usuarios = $2`,
			rec.ID, rec.OwnerID,
			rec.Nome, rec.TempoPreparo, rec.Porcoes, rec.ModoPreparo, rawList, categoryID,
		)

		return err
	})

	if err != nil {
		if IsForeignKeyViolation(err) {
			return recipe.Recipe{}, category.ErrNotFound
		}

		return recipe.Recipe{}, err
	}

	if tag.RowsAffected() == 0 {
		return recipe.Recipe{}, recipe.ErrNotFound
	}

	return r.GetByID(ctx, rec.ID, rec.OwnerID)
}

func (r *RecipesRepo) Delete(ctx context.Context, id, ownerID int64) error {
	var tag pgconn.CommandTag

	err := r.observe("recipes.delete", func() error {
		var err error

		tag, err = r.pool.Exec(ctx,
			`DELETE FROM receitas WHERE id = $1 AND id_usuarios = $2`,
			id, ownerID,
		)

		return err
	})

	if err != nil {
		return err
	}

	// nothing deleted means absent or owned by someone else
	if tag.RowsAffected() == 0 {
		return recipe.ErrNotFound
	}

	return nil
}

func (r *RecipesRepo) CountByOwner(ctx context.Context, ownerID int64) (int, error) {
	var count int

	err := r.observe("recipes.count_by_owner", func() error {
		return r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM receitas WHERE id_usuarios = $1`,
			ownerID,
		).Scan(&count)
	})

	if err != nil {
		return 0, err
	}

	return count, nil
}
