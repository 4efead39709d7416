package handler

import (
	"net/http"

	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PosterHandler struct {
	posterService service.PosterServiceInterface
	validator     *validator.Validate
}

func NewPosterHandler(posterService service.PosterServiceInterface) *PosterHandler {
	return &PosterHandler{
		posterService: posterService,
		validator:     validator.New(),
	}
}

// CreatePoster отдаёт PDF постера как вложение poster.pdf
func (h *PosterHandler) CreatePoster(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	pdf, err := h.posterService.RenderPosterPDF(c.Request.Context(), req.Title, req.ProductIDs, req.Count)
	if err != nil {
		respondError(c, err, "Failed to create poster")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="poster.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// PreviewPoster отдаёт HTML постера без рендера в PDF
func (h *PosterHandler) PreviewPoster(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	html := h.posterService.RenderPosterHTML(c.Request.Context(), req.Title, req.ProductIDs, req.Count)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *PosterHandler) bindRequest(c *gin.Context) (*entity.PosterRequest, bool) {
	var req entity.PosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return nil, false
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return nil, false
	}
	return &req, true
}
