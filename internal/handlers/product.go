package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/mbaye/ecom-backend/internal/httpx"
	"github.com/mbaye/ecom-backend/internal/models"
	"github.com/mbaye/ecom-backend/internal/validation"
)

type ProductHandler struct{ DB *gorm.DB }

func NewProductHandler(db *gorm.DB) *ProductHandler { return &ProductHandler{DB: db} }

type productRequest struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CategoryID  uint    `json:"category_id"`
	OfferID     *uint   `json:"offer_id"`
}

// productResponse is the single response shape for every product-returning
// operation: category and offer are embedded as full objects, never as bare
// foreign keys. offer is null when the product carries no offer.
type productResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Price       float64         `json:"price"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Category    models.Category `json:"category"`
	Offer       *models.Offer   `json:"offer"`
}

func newProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		Category:    p.Category,
		Offer:       p.Offer,
	}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var products []models.Product
	err := h.DB.WithContext(r.Context()).
		Preload("Category").
		Preload("Offer").
		Find(&products).Error
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResponse(p))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input productRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Title = strings.TrimSpace(input.Title)

	v := validation.Violations{}
	validation.Required("title", input.Title, v)
	validation.PositiveFloat("price", input.Price, v)
	validation.NonZeroID("category_id", input.CategoryID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	db := h.DB.WithContext(r.Context())
	category, offer, ok := h.resolveRefs(w, db, input.CategoryID, input.OfferID)
	if !ok {
		return
	}

	product := models.Product{
		Title:       input.Title,
		Price:       input.Price,
		Description: input.Description,
		Image:       input.Image,
		CategoryID:  input.CategoryID,
		OfferID:     input.OfferID,
	}
	if err := db.Create(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	product.Category = category
	product.Offer = offer
	httpx.JSON(w, http.StatusOK, newProductResponse(product))
}

// Update is a full replace: every field is overwritten from the input, and
// the referenced category/offer are re-checked the same way as on create.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input productRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Title = strings.TrimSpace(input.Title)

	v := validation.Violations{}
	validation.Required("title", input.Title, v)
	validation.PositiveFloat("price", input.Price, v)
	validation.NonZeroID("category_id", input.CategoryID, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	db := h.DB.WithContext(r.Context())
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	category, offer, ok := h.resolveRefs(w, db, input.CategoryID, input.OfferID)
	if !ok {
		return
	}

	product.Title = input.Title
	product.Price = input.Price
	product.Description = input.Description
	product.Image = input.Image
	product.CategoryID = input.CategoryID
	product.OfferID = input.OfferID
	if err := db.Save(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	product.Category = category
	product.Offer = offer
	httpx.JSON(w, http.StatusOK, newProductResponse(product))
}

// Delete rejects removal while orders still reference the product.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var refs int64
	if err := db.Model(&models.Order{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if refs > 0 {
		httpx.JSONError(w, http.StatusConflict, "product_in_use", map[string]int64{"orders": refs})
		return
	}
	if err := db.Delete(&product).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Product deleted"})
}

// resolveRefs loads the referenced category and optional offer, writing the
// 404 response itself when either id does not resolve.
func (h *ProductHandler) resolveRefs(w http.ResponseWriter, db *gorm.DB, categoryID uint, offerID *uint) (models.Category, *models.Offer, bool) {
	var category models.Category
	if err := db.First(&category, categoryID).Error; err != nil {
		if notFound(err) {
			httpx.JSONError(w, http.StatusNotFound, "category_not_found", nil)
		} else {
			httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		}
		return models.Category{}, nil, false
	}
	var offer *models.Offer
	if offerID != nil {
		var o models.Offer
		if err := db.First(&o, *offerID).Error; err != nil {
			if notFound(err) {
				httpx.JSONError(w, http.StatusNotFound, "offer_not_found", nil)
			} else {
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
			return models.Category{}, nil, false
		}
		offer = &o
	}
	return category, offer, true
}
