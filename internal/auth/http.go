package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	repo   *Repo
	tokens *Tokens
}

func RegisterPublic(rg *gin.RouterGroup, repo *Repo, tokens *Tokens) {
	h := &Handler{repo: repo, tokens: tokens}
	rg.POST("/auth/login", h.login)
}

func RegisterAdmin(rg *gin.RouterGroup) {
	rg.GET("/me", me)
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	u, err := h.repo.GetByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": ErrInvalidCredentials.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": ErrInvalidCredentials.Error()})
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token, "user": u})
}

func me(c *gin.Context) {
	claims := SessionClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "no session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{
		"id":    claims.UserID(),
		"email": claims.Email,
		"role":  claims.Role,
		"name":  claims.Name,
	}})
}
