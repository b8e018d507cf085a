package settings

import (
	"net/http"

	"github.com/atelier-north/studio-backend/internal/cache"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo  *Repo
	cache *cache.Cache
}

const cacheKey = "public:settings"

func RegisterPublic(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}
	rg.GET("/settings", h.get)
}

func RegisterAdmin(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}

	g := rg.Group("/settings")
	g.GET("", h.get)
	g.PUT("", h.update)
}

func (h *Handler) get(c *gin.Context) {
	ctx := c.Request.Context()

	var cached Settings
	if h.cache.GetJSON(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "settings": cached})
		return
	}

	s, err := h.repo.Get(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.SetJSON(ctx, cacheKey, s)
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": s})
}

func (h *Handler) update(c *gin.Context) {
	var req Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	s, err := h.repo.Update(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), cacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": s})
}
