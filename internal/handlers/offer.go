package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/mbaye/ecom-backend/internal/httpx"
	"github.com/mbaye/ecom-backend/internal/models"
	"github.com/mbaye/ecom-backend/internal/validation"
)

type OfferHandler struct{ DB *gorm.DB }

func NewOfferHandler(db *gorm.DB) *OfferHandler { return &OfferHandler{DB: db} }

// Discount is a plain percentage; no range validation beyond presence,
// matching the catalog contract.
type offerRequest struct {
	Title    string  `json:"title"`
	Discount float64 `json:"discount"`
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	var offers []models.Offer
	if err := h.DB.WithContext(r.Context()).Find(&offers).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, offers)
}

func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input offerRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Title = strings.TrimSpace(input.Title)

	v := validation.Violations{}
	validation.Required("title", input.Title, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	offer := models.Offer{Title: input.Title, Discount: input.Discount}
	if err := h.DB.WithContext(r.Context()).Create(&offer).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, offer)
}

func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input offerRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Title = strings.TrimSpace(input.Title)

	v := validation.Violations{}
	validation.Required("title", input.Title, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	db := h.DB.WithContext(r.Context())
	var offer models.Offer
	if err := db.First(&offer, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	offer.Title = input.Title
	offer.Discount = input.Discount
	if err := db.Save(&offer).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, offer)
}

// Delete rejects removal while products still reference the offer.
func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	var offer models.Offer
	if err := db.First(&offer, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var refs int64
	if err := db.Model(&models.Product{}).Where("offer_id = ?", id).Count(&refs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if refs > 0 {
		httpx.JSONError(w, http.StatusConflict, "offer_in_use", map[string]int64{"products": refs})
		return
	}
	if err := db.Delete(&offer).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Offer deleted"})
}
