package about

import (
	"errors"
	"net/http"

	"github.com/atelier-north/studio-backend/internal/cache"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo  *Repo
	cache *cache.Cache
}

const listCacheKey = "public:about-services"

func RegisterPublic(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}
	rg.GET("/about-services", h.list)
}

func RegisterAdmin(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}

	g := rg.Group("/about-services")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/order", h.reorder)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []Card
	if h.cache.GetJSON(ctx, listCacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "about_services": cached})
		return
	}

	items, err := h.repo.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.SetJSON(ctx, listCacheKey, items)
	c.JSON(http.StatusOK, gin.H{"ok": true, "about_services": items})
}

func (h *Handler) create(c *gin.Context) {
	var req CardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	card, err := h.repo.Create(c.Request.Context(), req)
	if errors.Is(err, ErrTitleRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "about_service": card})
}

func (h *Handler) update(c *gin.Context) {
	var req CardInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	card, err := h.repo.Update(c.Request.Context(), c.Param("id"), req)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "about card not found"})
		return
	case errors.Is(err, ErrTitleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true, "about_service": card})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "about card not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type reorderReq struct {
	IDs []string `json:"ids"`
}

func (h *Handler) reorder(c *gin.Context) {
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	err := h.repo.Reorder(c.Request.Context(), req.IDs)
	if errors.Is(err, ErrInvalidOrder) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
