package services

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

const listCacheKey = "public:services"

// RegisterPublic mounts the landing-site read route.
func RegisterPublic(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}
	rg.GET("/services", h.list)
}

// RegisterAdmin mounts the dashboard CRUD + reorder routes.
func RegisterAdmin(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}

	g := rg.Group("/services")
	g.GET("", h.list)
	g.POST("", h.create)
	g.PUT("/order", h.reorder)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []Service
	if h.cache.GetJSON(ctx, listCacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "services": cached})
		return
	}

	items, err := h.repo.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.SetJSON(ctx, listCacheKey, items)
	c.JSON(http.StatusOK, gin.H{"ok": true, "services": items})
}

type serviceReq struct {
	Title   string      `json:"title"`
	Summary string      `json:"summary"`
	Icon    string      `json:"icon"`
	Items   []ItemInput `json:"items"`
}

func (h *Handler) create(c *gin.Context) {
	var req serviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	s, err := h.repo.Create(c.Request.Context(), CreateService{
		Title:   req.Title,
		Summary: req.Summary,
		Icon:    req.Icon,
		Items:   req.Items,
	})
	if errors.Is(err, ErrTitleRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "service": s})
}

func (h *Handler) update(c *gin.Context) {
	var req serviceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	s, err := h.repo.Update(c.Request.Context(), c.Param("id"), UpdateService{
		Title:   req.Title,
		Summary: req.Summary,
		Icon:    req.Icon,
		Items:   req.Items,
	})
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "service not found"})
		return
	case errors.Is(err, ErrTitleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true, "service": s})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "service not found"})
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
