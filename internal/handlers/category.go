package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/mbaye/ecom-backend/internal/httpx"
	"github.com/mbaye/ecom-backend/internal/models"
	"github.com/mbaye/ecom-backend/internal/validation"
)

type CategoryHandler struct{ DB *gorm.DB }

func NewCategoryHandler(db *gorm.DB) *CategoryHandler { return &CategoryHandler{DB: db} }

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := h.DB.WithContext(r.Context()).Find(&categories).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input categoryRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Name = strings.TrimSpace(input.Name)

	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	category := models.Category{Name: input.Name}
	if err := h.DB.WithContext(r.Context()).Create(&category).Error; err != nil {
		if isDuplicateErr(err) {
			httpx.JSONError(w, http.StatusConflict, "name_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

// Update replaces the name. No application-level uniqueness re-check here:
// a rename that collides is caught by the storage unique constraint.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input categoryRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Name = strings.TrimSpace(input.Name)

	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	db := h.DB.WithContext(r.Context())
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	category.Name = input.Name
	if err := db.Save(&category).Error; err != nil {
		if isDuplicateErr(err) {
			httpx.JSONError(w, http.StatusConflict, "name_already_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

// Delete rejects removal of a category that products still reference, so
// catalog rows never dangle. Hard delete otherwise.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var refs int64
	if err := db.Model(&models.Product{}).Where("category_id = ?", id).Count(&refs).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if refs > 0 {
		httpx.JSONError(w, http.StatusConflict, "category_in_use", map[string]int64{"products": refs})
		return
	}
	if err := db.Delete(&category).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Category deleted"})
}
