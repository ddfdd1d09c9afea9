package recipe

import (
	"encoding/json"
	"errors"
	"time"

	"recipehub/internal/domain/category"
)

var ErrNotFound = errors.New("recipe not found")

type Recipe struct {
	ID           int64              `json:"id"`
	Nome         string             `json:"nome"`
	TempoPreparo *int               `json:"tempo_preparo,omitempty"`
	Porcoes      *int               `json:"porcoes,omitempty"`
	ModoPreparo  string             `json:"modo_preparo"`
	Ingredientes []string           `json:"ingredientes"`
	Category     *category.Category `json:"category,omitempty"`
	OwnerID      int64              `json:"-"`
	CreatedAt    time.Time          `json:"criado_em"`
	UpdatedAt    time.Time          `json:"alterado_em"`
}

type CreateRecipeRequest struct {
	Nome         string   `json:"nome" binding:"required,max=45"`
	TempoPreparo *int     `json:"tempo_preparo" binding:"omitempty,min=0"`
	Porcoes      *int     `json:"porcoes" binding:"omitempty,min=0"`
	ModoPreparo  string   `json:"modo_preparo" binding:"required"`
	Ingredientes []string `json:"ingredientes" binding:"required,min=1,dive,required"`
	CategoriaID  int64    `json:"categoriaId" binding:"required"`
}

// partial update: nil means "leave as is". Only these fields may change,
// anything else in the body is ignored.
type UpdateRecipeRequest struct {
	Nome         *string   `json:"nome" binding:"omitempty,max=45"`
	TempoPreparo *int      `json:"tempo_preparo" binding:"omitempty,min=0"`
	Porcoes      *int      `json:"porcoes" binding:"omitempty,min=0"`
	ModoPreparo  *string   `json:"modo_preparo" binding:"omitempty"`
	Ingredientes *[]string `json:"ingredientes" binding:"omitempty,min=1,dive,required"`
	CategoriaID  *int64    `json:"categoriaId" binding:"omitempty"`
}

// Apply merges the provided fields onto r. The ingredient list replaces the
// prior one wholesale, it is not appended to.
func (req UpdateRecipeRequest) Apply(r *Recipe) {
	if req.Nome != nil {
		r.Nome = *req.Nome
	}
	if req.TempoPreparo != nil {
		r.TempoPreparo = req.TempoPreparo
	}
	if req.Porcoes != nil {
		r.Porcoes = req.Porcoes
	}
	if req.ModoPreparo != nil {
		r.ModoPreparo = *req.ModoPreparo
	}
	if req.Ingredientes != nil {
		r.Ingredientes = *req.Ingredientes
	}
}

// The ingredientes column is a text blob holding a JSON array of strings;
// the API always carries the decoded list form.

func EncodeIngredients(list []string) (string, error) {
	b, err := json.Marshal(list)

	if err != nil {
		return "", err
	}

	return string(b), nil
}

func DecodeIngredients(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}

	var list []string

	err := json.Unmarshal([]byte(raw), &list)

	if err != nil {
		return nil, err
	}

	return list, nil
}
