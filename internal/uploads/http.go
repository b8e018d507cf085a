package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	store *Store
}

func RegisterAdmin(rg *gin.RouterGroup, store *Store) {
	h := &Handler{store: store}
	rg.POST("/uploads", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file field is required"})
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "media"
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unreadable upload"})
		return
	}
	defer src.Close()

	url, err := h.store.Put(c.Request.Context(),
		folder, file.Header.Get("Content-Type"), file.Size, src)
	switch {
	case errors.Is(err, ErrTooLarge),
		errors.Is(err, ErrBadType),
		errors.Is(err, ErrBadFolder),
		errors.Is(err, ErrEmptyUpload):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "url": url})
}
