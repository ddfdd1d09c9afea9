package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"recipehub/internal/config"
	"recipehub/internal/domain/category"
	"recipehub/internal/domain/recipe"
	"recipehub/internal/http/middlewares"

	"github.com/gin-gonic/gin"
)

type RecipesStore interface {
	Create(ctx context.Context, ownerID int64, req recipe.CreateRecipeRequest) (recipe.Recipe, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]recipe.Recipe, error)
	GetByID(ctx context.Context, id, ownerID int64) (recipe.Recipe, error)
	Update(ctx context.Context, rec recipe.Recipe) (recipe.Recipe, error)
	Delete(ctx context.Context, id, ownerID int64) error
	CountByOwner(ctx context.Context, ownerID int64) (int, error)
}

type RecipesHandler struct {
	repo RecipesStore
}

func NewRecipesHandler(repo RecipesStore) *RecipesHandler {
	return &RecipesHandler{repo: repo}
}

// the owner id always comes from the verified token, never from the body or
// the URL; a malformed :id is treated the same as an absent recipe.

func ownerFromContext(ctx *gin.Context) (int64, bool) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == 0 {
		RespondUnAuthorized(ctx, "unauthorized", "Missing identity")
		return 0, false
	}

	return userID, true
}

func recipeIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)

	if err != nil || id <= 0 {
		RespondNotFound(ctx, "Recipe not found")
		return 0, false
	}

	return id, true
}

func (h *RecipesHandler) CreateRecipe(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)

	if !ok {
		return
	}

	var req recipe.CreateRecipeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	rec, err := h.repo.Create(cctx, ownerID, req)

	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			RespondBadRequest(ctx, "categoriaId does not reference an existing category", nil)
			return
		}

		RespondInternal(ctx, "Could not create recipe")
		return
	}

	ctx.JSON(http.StatusCreated, rec)
}

func (h *RecipesHandler) ListRecipes(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	recipes, err := h.repo.ListByOwner(cctx, ownerID)

	if err != nil {
		RespondInternal(ctx, "Could not list recipes")
		return
	}

	ctx.JSON(http.StatusOK, recipes)
}

func (h *RecipesHandler) CountRecipes(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	count, err := h.repo.CountByOwner(cctx, ownerID)

	if err != nil {
		RespondInternal(ctx, "Could not count recipes")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *RecipesHandler) GetRecipeById(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)

	if !ok {
		return
	}

	id, ok := recipeIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	rec, err := h.repo.GetByID(cctx, id, ownerID)

	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			RespondNotFound(ctx, "Recipe not found")
			return
		}

		RespondInternal(ctx, "Could not fetch recipe")
		return
	}

	ctx.JSON(http.StatusOK, rec)
}

func (h *RecipesHandler) UpdateRecipe(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)

	if !ok {
		return
	}

	id, ok := recipeIDParam(ctx)

	if !ok {
		return
	}

	var req recipe.UpdateRecipeRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	// load within the ownership scope, then merge the allow-listed fields
	rec, err := h.repo.GetByID(cctx, id, ownerID)

	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			RespondNotFound(ctx, "Recipe not found")
			return
		}

		RespondInternal(ctx, "Could not update recipe")
		return
	}

	req.Apply(&rec)

	if req.CategoriaID != nil {
		rec.Category = &category.Category{ID: *req.CategoriaID}
	}

	updated, err := h.repo.Update(cctx, rec)

	if err != nil {
		switch {
		case errors.Is(err, recipe.ErrNotFound):
			RespondNotFound(ctx, "Recipe not found")
		case errors.Is(err, category.ErrNotFound):
			RespondBadRequest(ctx, "categoriaId does not reference an existing category", nil)
		default:
			RespondInternal(ctx, "Could not update recipe")
		}
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

func (h *RecipesHandler) DeleteRecipe(ctx *gin.Context) {
	ownerID, ok := ownerFromContext(ctx)

	if !ok {
		return
	}

	id, ok := recipeIDParam(ctx)

	if !ok {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.repo.Delete(cctx, id, ownerID)

	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			RespondNotFound(ctx, "Recipe not found")
			return
		}

		RespondInternal(ctx, "Could not delete recipe")
		return
	}

	ctx.Status(http.StatusNoContent)
}
