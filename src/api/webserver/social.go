package webserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Poster publishes content to an external platform.
type Poster interface {
	Post(ctx context.Context, platform, content string) error
}

type Social struct {
	pub Poster
}

func NewSocial(pub Poster) Social {
	return Social{pub: pub}
}

func (h Social) Post(c *gin.Context) {
	var req struct {
		Platform string `json:"platform" binding:"required"`
		Content  string `json:"content"  binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := h.pub.Post(c.Request.Context(), req.Platform, req.Content); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "posted"})
}
