package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/mbaye/ecom-backend/internal/auth"
	"github.com/mbaye/ecom-backend/internal/httpx"
	"github.com/mbaye/ecom-backend/internal/models"
	"github.com/mbaye/ecom-backend/internal/validation"
)

type AuthHandler struct{ DB *gorm.DB }

func NewAuthHandler(db *gorm.DB) *AuthHandler { return &AuthHandler{DB: db} }

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input registerRequest
	if !decodeJSON(w, r, &input) {
		return
	}
	input.Username = strings.TrimSpace(input.Username)

	v := validation.Violations{}
	validation.Required("username", input.Username, v)
	validation.Required("password", input.Password, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}

	db := h.DB.WithContext(r.Context())
	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	if count > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "username_exists", nil)
		return
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	role := input.Role
	if role == "" {
		role = "user"
	}
	user := models.User{Username: input.Username, Password: hash, Role: role}
	if err := db.Create(&user).Error; err != nil {
		// unique index may still fire under concurrent registration
		if isDuplicateErr(err) {
			httpx.JSONError(w, http.StatusBadRequest, "username_exists", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

// Login verifies credentials and returns the caller's identity. An unknown
// username and a wrong password produce the same response so the endpoint
// cannot be used to enumerate accounts. No session or token is issued.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginRequest
	if !decodeJSON(w, r, &input) {
		return
	}

	var user models.User
	err := h.DB.WithContext(r.Context()).
		Where("username = ?", strings.TrimSpace(input.Username)).
		First(&user).Error
	if err != nil || !auth.CheckPassword(input.Password, user.Password) {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_credentials", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{
		"username": user.Username,
		"role":     user.Role,
	})
}
