package webserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge/src/ai/core"
	"github.com/draftforge/draftforge/src/api/storage"
	"github.com/draftforge/draftforge/src/api/types"
)

// ContentGenerator is the dispatcher seam; implemented by generator.Service.
type ContentGenerator interface {
	Generate(ctx context.Context, userID uint64, prompt, model string) (*types.ContentItem, error)
}

type Content struct {
	gen     ContentGenerator
	content storage.Content
}

func NewContent(gen ContentGenerator, content storage.Content) Content {
	return Content{gen: gen, content: content}
}

func (h Content) Generate(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt" binding:"required"`
		Model  string `json:"model"  binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	item, err := h.gen.Generate(c.Request.Context(), currentUserID(c), req.Prompt, req.Model)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": item.Content})
}

func (h Content) List(c *gin.Context) {
	items, err := h.content.ListByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Models serves the static provider catalog for the picker.
func (h Content) Models(c *gin.Context) {
	c.JSON(http.StatusOK, core.Catalog)
}
