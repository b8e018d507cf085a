package articles

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

const listCacheKey = "public:articles"

func RegisterPublic(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}

	rg.GET("/articles", h.listPublished)
	rg.GET("/articles/:slug", h.getBySlug)
}

func RegisterAdmin(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}

	g := rg.Group("/articles")
	g.GET("", h.listAll)
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PATCH("/:id/status", h.setStatus)
}

func (h *Handler) listPublished(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []Article
	if h.cache.GetJSON(ctx, listCacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "articles": cached})
		return
	}

	items, err := h.repo.ListPublished(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.SetJSON(ctx, listCacheKey, items)
	c.JSON(http.StatusOK, gin.H{"ok": true, "articles": items})
}

func (h *Handler) getBySlug(c *gin.Context) {
	a, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "article": a})
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "articles": items})
}

func (h *Handler) getByID(c *gin.Context) {
	a, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "article": a})
}

type articleReq struct {
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	CoverImage string `json:"cover_image"`
}

func (req articleReq) toInput() ArticleInput {
	return ArticleInput{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Content:    req.Content,
		CoverImage: req.CoverImage,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req articleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	a, err := h.repo.Create(c.Request.Context(), req.toInput())
	if errors.Is(err, ErrTitleRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "article": a})
}

func (h *Handler) update(c *gin.Context) {
	var req articleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	a, err := h.repo.Update(c.Request.Context(), c.Param("id"), req.toInput())
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "article not found"})
		return
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrSlugTaken):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true, "article": a})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "article not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type statusReq struct {
	Status string `json:"status"`
}

func (h *Handler) setStatus(c *gin.Context) {
	var req statusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	a, err := h.repo.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "article not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.Invalidate(c.Request.Context(), listCacheKey)
	c.JSON(http.StatusOK, gin.H{"ok": true, "article": a})
}
