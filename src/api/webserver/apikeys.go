package webserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge/src/ai/core"
	"github.com/draftforge/draftforge/src/api/storage"
)

type APIKeys struct {
	keys storage.APIKeys
}

func NewAPIKeys(keys storage.APIKeys) APIKeys {
	return APIKeys{keys: keys}
}

func (h APIKeys) List(c *gin.Context) {
	keys, err := h.keys.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	// Secrets never leave the API in full.
	out := make([]gin.H, 0, len(keys))
	for _, k := range keys {
		out = append(out, gin.H{
			"id":        k.ID,
			"provider":  k.Provider,
			"apiKey":    maskSecret(k.APIKey),
			"createdAt": k.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h APIKeys) Create(c *gin.Context) {
	var req struct {
		Provider string `json:"provider" binding:"required"`
		APIKey   string `json:"apiKey"   binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	provider := strings.ToLower(strings.TrimSpace(req.Provider))
	if _, ok := core.ProviderByName(provider); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown provider " + req.Provider})
		return
	}

	// The secret is stored as given; a wrong key only surfaces later as a
	// generation failure.
	key, err := h.keys.Create(c.Request.Context(), currentUserID(c), provider, req.APIKey)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        key.ID,
		"provider":  key.Provider,
		"apiKey":    maskSecret(key.APIKey),
		"createdAt": key.CreatedAt,
	})
}

func (h APIKeys) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "bad id"})
		return
	}
	if err := h.keys.Delete(c.Request.Context(), currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
