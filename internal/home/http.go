package home

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

// RegisterAdmin mounts the homepage editor routes. There is no public
// counterpart here: the landing site reads the featured list from the
// public projects routes.
func RegisterAdmin(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	g := rg.Group("/homepage")
	g.GET("", h.state)
	g.PUT("", h.save)
	g.POST("/featured/:id", h.toggle)
}

func (h *Handler) state(c *gin.Context) {
	st, err := h.svc.State(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "homepage": st})
}

func (h *Handler) toggle(c *gin.Context) {
	st, err := h.svc.Toggle(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, ErrCapReached):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
		return
	case errors.Is(err, ErrUnknownProject):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "homepage": st})
}

type saveReq struct {
	FeaturedIDs       []string `json:"featured_ids"`
	HomeProjectsCount int      `json:"home_projects_count"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	st, err := h.svc.Save(c.Request.Context(), req.FeaturedIDs, req.HomeProjectsCount)
	switch {
	case errors.Is(err, ErrCapReached):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
		return
	case errors.Is(err, ErrUnknownProject):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "homepage": st})
}
