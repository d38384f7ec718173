package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/mbaye/ecom-backend/internal/httpx"
	"github.com/mbaye/ecom-backend/internal/models"
	"github.com/mbaye/ecom-backend/internal/validation"
)

type OrderHandler struct{ DB *gorm.DB }

func NewOrderHandler(db *gorm.DB) *OrderHandler { return &OrderHandler{DB: db} }

type orderRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	User      string `json:"user"`
	Status    string `json:"status"`
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var orders []models.Order
	if err := h.DB.WithContext(r.Context()).Find(&orders).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, orders)
}

// Create verifies the referenced product exists before persisting. Status
// defaults to "Pending" when the request leaves it empty.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input orderRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	input.User = strings.TrimSpace(input.User)

	v := validation.Violations{}
	validation.NonZeroID("product_id", input.ProductID, v)
	validation.PositiveInt("quantity", input.Quantity, v)
	validation.Required("user", input.User, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	db := h.DB.WithContext(r.Context())
	var product models.Product
	if err := db.First(&product, input.ProductID).Error; err != nil {
		if notFound(err) {
			httpx.JSONError(w, http.StatusNotFound, "product_not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = "Pending"
	}
	order := models.Order{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		User:      input.User,
		Status:    status,
	}
	if err := db.Create(&order).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

// UpdateStatus patches the single status field. Any non-empty string is a
// valid status: there is deliberately no whitelist and no transition graph.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var input orderStatusRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Status = strings.TrimSpace(input.Status)

	v := validation.Violations{}
	validation.Required("status", input.Status, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	db := h.DB.WithContext(r.Context())
	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	order.Status = input.Status
	if err := db.Save(&order).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, order)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	var order models.Order
	if err := db.First(&order, id).Error; err != nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	if err := db.Delete(&order).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Order deleted"})
}
