package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gastroposter/pkg/logger"
	"gastroposter/poster-service/internal/app/poster/entity"
	"gastroposter/poster-service/internal/app/poster/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// UploadURLPrefix - под этим путём роутер раздаёт каталог загрузок
const UploadURLPrefix = "/uploads"

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type ProductHandler struct {
	productService  service.ProductServiceInterface
	categoryService service.CategoryServiceInterface
	validator       *validator.Validate
	uploadDir       string
	now             func() time.Time
}

func NewProductHandler(
	productService service.ProductServiceInterface,
	categoryService service.CategoryServiceInterface,
	uploadDir string,
) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		categoryService: categoryService,
		validator:       validator.New(),
		uploadDir:       uploadDir,
		now:             time.Now,
	}
}

func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := h.productService.GetAllProducts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get products")
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	products, err := h.productService.SearchProducts(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to search products")
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetAllCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to get categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get product")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req entity.CreateCustomProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid request body"})
		return
	}

	h.create(c, &req)
}

// UploadProduct принимает multipart форму с изображением товара
func (h *ProductHandler) UploadProduct(c *gin.Context) {
	req, err := parseUploadForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "Invalid form", Message: err.Error()})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "File is required"})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	name := file.Filename
	if name == "" {
		name = "image"
	}
	filename := fmt.Sprintf("%d_%s", h.now().UnixMilli(), unsafeFilenameChars.ReplaceAllString(filepath.Base(name), "_"))

	// SaveUploadedFile создаёт каталог при необходимости
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		logger.Error().Err(err).Str("filename", filename).Msg("failed to store uploaded image")
		c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "Failed to store image"})
		return
	}
	req.ImageURL = UploadURLPrefix + "/" + filename

	h.create(c, req)
}

func (h *ProductHandler) create(c *gin.Context, req *entity.CreateCustomProductRequest) {
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: formatValidationError(err)})
		return
	}

	product, err := h.productService.CreateCustomProduct(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create product")
		return
	}

	c.Header("Location", "/api/products/"+product.ID)
	c.JSON(http.StatusCreated, product)
}

func parseUploadForm(c *gin.Context) (*entity.CreateCustomProductRequest, error) {
	req := &entity.CreateCustomProductRequest{
		Name:     strings.TrimSpace(c.PostForm("name")),
		Category: strings.TrimSpace(c.PostForm("category")),
	}

	current, err := optionalFloat(c.PostForm("priceCurrent"))
	if err != nil {
		return nil, fmt.Errorf("invalid priceCurrent: %w", err)
	}
	req.PriceCurrent = current

	original, err := optionalFloat(c.PostForm("priceOriginal"))
	if err != nil {
		return nil, fmt.Errorf("invalid priceOriginal: %w", err)
	}
	req.PriceOriginal = original

	if raw := strings.TrimSpace(c.PostForm("discountPct")); raw != "" {
		discount, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid discountPct: %w", err)
		}
		req.DiscountPct = &discount
	}

	return req, nil
}

func optionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
