package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloom/bloom/apperr"
)

// respondErr maps the error taxonomy onto HTTP statuses. Anything untagged
// counts as a persistence failure.
func respondErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindInvalidInput:
		status = http.StatusBadRequest
	case apperr.KindConflict:
		status = http.StatusConflict
	case apperr.KindNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
