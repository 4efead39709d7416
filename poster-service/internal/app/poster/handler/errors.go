package handler

import (
	"errors"
	"net/http"

	"gastroposter/pkg/logger"
	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError переводит ошибку сервиса в HTTP статус
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "Product not found"})
	case errors.Is(err, service.ErrInvalidProduct):
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid product"})
	case errors.Is(err, service.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, entity.ErrorResponse{Error: "Catalog unavailable", Message: err.Error()})
	case errors.Is(err, service.ErrRenderFailed):
		c.JSON(http.StatusBadGateway, entity.ErrorResponse{Error: "Render failed"})
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg(fallback)
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: fallback})
	}
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
