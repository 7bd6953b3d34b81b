package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hel20lmy-maker/Nono-Book-Team/internal/models"
)

// respondError maps the workflow error taxonomy onto HTTP status codes.
// Handlers never inspect error messages; the branch is on type alone.
func respondError(c *gin.Context, err error) {
	var (
		validation *models.ValidationError
		permission *models.PermissionDenied
		transition *models.InvalidTransition
		missing    *models.MissingArtifact
		upload     *models.UploadFailure
		persist    *models.PersistenceFailure
		selection  *models.SelectionMismatch
	)

	switch {
	case errors.As(err, &validation), errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
	case errors.As(err, &permission):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "permission denied", Message: err.Error()})
	case errors.As(err, &transition), errors.As(err, &selection):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "conflict", Message: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	case errors.Is(err, models.ErrConflict):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "conflict", Message: err.Error()})
	case errors.As(err, &upload):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "upload failed", Message: err.Error()})
	case errors.As(err, &persist):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "storage failure", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error", Message: err.Error()})
	}
}
