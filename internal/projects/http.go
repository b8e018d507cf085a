package projects

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

const (
	listCacheKey     = "public:projects"
	featuredCacheKey = "public:projects:featured"
)

func RegisterPublic(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}

	rg.GET("/projects", h.listPublished)
	rg.GET("/projects/featured", h.listFeatured)
	rg.GET("/projects/:slug", h.getBySlug)
}

func RegisterAdmin(rg *gin.RouterGroup, repo *Repo, c *cache.Cache) {
	h := &Handler{repo: repo, cache: c}

	g := rg.Group("/projects")
	g.GET("", h.listAll)
	g.POST("", h.create)
	g.GET("/:id", h.getByID)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
	g.PATCH("/:id/status", h.setStatus)
}

func (h *Handler) listPublished(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []Project
	if h.cache.GetJSON(ctx, listCacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "projects": cached})
		return
	}

	items, err := h.repo.ListPublished(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.SetJSON(ctx, listCacheKey, items)
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) listFeatured(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []Project
	if h.cache.GetJSON(ctx, featuredCacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "projects": cached})
		return
	}

	items, err := h.repo.ListFeatured(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.cache.SetJSON(ctx, featuredCacheKey, items)
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

// getBySlug always hits the database: the read is what increments the
// public view counter.
func (h *Handler) getBySlug(c *gin.Context) {
	p, err := h.repo.GetBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) getByID(c *gin.Context) {
	p, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type projectReq struct {
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Category    string         `json:"category"`
	Location    string         `json:"location"`
	Year        string         `json:"year"`
	Description string         `json:"description"`
	CoverImage  string         `json:"cover_image"`
	Gallery     []GalleryInput `json:"gallery"`
}

func (req projectReq) toInput() ProjectInput {
	return ProjectInput{
		Title:       req.Title,
		Slug:        req.Slug,
		Category:    req.Category,
		Location:    req.Location,
		Year:        req.Year,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Gallery:     req.Gallery,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.repo.Create(c.Request.Context(), req.toInput())
	if errors.Is(err, ErrTitleRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	var req projectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.repo.Update(c.Request.Context(), c.Param("id"), req.toInput())
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrSlugTaken):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c)
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

	p, err := h.repo.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.invalidate(c)
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) invalidate(c *gin.Context) {
	h.cache.Invalidate(c.Request.Context(), listCacheKey, featuredCacheKey)
}
