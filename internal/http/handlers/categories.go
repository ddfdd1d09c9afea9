package handlers

import (
	"context"
	"net/http"
	"time"

	"recipehub/internal/cache"
	"recipehub/internal/config"
	"recipehub/internal/domain/category"

	"github.com/gin-gonic/gin"
)

type CategoriesStore interface {
	List(ctx context.Context) ([]category.Category, error)
	Count(ctx context.Context) (int, error)
}

// categories are global and read-only, so a short TTL cache in front of the
// repo is safe; the seeder is the only writer and runs before the server.
const (
	categoriesListCacheKey  = "categorias:list:v1"
	categoriesCountCacheKey = "categorias:count:v1"
)

type CategoriesHandler struct {
	repo  CategoriesStore
	cache *cache.Cache
}

func NewCategoriesHandler(repo CategoriesStore, c *cache.Cache) *CategoriesHandler {
	return &CategoriesHandler{repo: repo, cache: c}
}

func (h *CategoriesHandler) ListCategories(ctx *gin.Context) {
	if h.cache != nil {
		if v, ok := h.cache.Get(categoriesListCacheKey); ok {
			if categories, ok := v.([]category.Category); ok {
				RespondJSONWithETag(ctx, http.StatusOK, categories)
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	categories, err := h.repo.List(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not list categories")
		return
	}

	if h.cache != nil {
		h.cache.Set(categoriesListCacheKey, categories)
	}

	RespondJSONWithETag(ctx, http.StatusOK, categories)
}

func (h *CategoriesHandler) CountCategories(ctx *gin.Context) {
	if h.cache != nil {
		if v, ok := h.cache.Get(categoriesCountCacheKey); ok {
			if count, ok := v.(int); ok {
				ctx.JSON(http.StatusOK, gin.H{"count": count})
				return
			}
		}
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	count, err := h.repo.Count(cctx)

	if err != nil {
		RespondInternal(ctx, "Could not count categories")
		return
	}

	if h.cache != nil {
		h.cache.Set(categoriesCountCacheKey, count)
	}

	ctx.JSON(http.StatusOK, gin.H{"count": count})
}
