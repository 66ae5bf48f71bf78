package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge/src/ai/core"
	"github.com/draftforge/draftforge/src/api/storage"
	"github.com/draftforge/draftforge/src/generator"
	"github.com/draftforge/draftforge/src/social"
)

// respondError collapses the error taxonomy to a status plus a
// human-readable message.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrUnresolvableModel),
		errors.Is(err, generator.ErrCredentialMissing),
		errors.Is(err, social.ErrUnsupportedPlatform):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrNotImplemented):
		status = http.StatusNotImplemented
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"message": err.Error()})
}
