// Package handlers contains one HTTP handler per entity. Handlers decode and
// validate the request, run single-statement gorm queries scoped to the
// request context, and shape the JSON response. There is no shared state
// between requests beyond the *gorm.DB connection pool.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/mbaye/ecom-backend/internal/httpx"
)

// pathID parses the {id} segment of the route. A non-numeric or missing id
// is reported as 404 to match the not-found contract of id-addressed routes.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return 0, false
	}
	return uint(id), true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	return true
}

// isDuplicateErr detects unique-constraint violations across drivers; gorm
// only translates to ErrDuplicatedKey for some of them.
func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
