package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mbaye/ecom-backend/internal/models"
)

var testOrigins = []string{"http://localhost:3000"}

func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db, testOrigins)
}

func do(t *testing.T, app http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestWelcomeAndHealth(t *testing.T) {
	app := setupRouter(t)

	w := do(t, app, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "message") {
		t.Fatalf("expected welcome message: %s", w.Body.String())
	}

	w2 := do(t, app, http.MethodGet, "/healthz", nil)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w2.Code, w2.Body.String())
	}
}

func TestCatalogFlowE2E(t *testing.T) {
	app := setupRouter(t)

	// create Category "Books"
	w := do(t, app, http.MethodPost, "/categories", map[string]string{"name": "Books"})
	if w.Code != http.StatusOK {
		t.Fatalf("category: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var cat models.Category
	if err := json.Unmarshal(w.Body.Bytes(), &cat); err != nil {
		t.Fatalf("decode category: %v", err)
	}

	// create Product referencing it
	w2 := do(t, app, http.MethodPost, "/products", map[string]any{
		"title": "Novel", "price": 9.99, "category_id": cat.ID,
	})
	if w2.Code != http.StatusOK {
		t.Fatalf("product: expected 200 got %d body=%s", w2.Code, w2.Body.String())
	}

	// GET /products contains one entry with nested category and null offer
	w3 := do(t, app, http.MethodGet, "/products", nil)
	if w3.Code != http.StatusOK {
		t.Fatalf("list: expected 200 got %d", w3.Code)
	}
	var listed []struct {
		Title    string           `json:"title"`
		Category *models.Category `json:"category"`
		Offer    *models.Offer    `json:"offer"`
	}
	if err := json.Unmarshal(w3.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v body=%s", err, w3.Body.String())
	}
	if len(listed) != 1 || listed[0].Title != "Novel" {
		t.Fatalf("unexpected products: %+v", listed)
	}
	if listed[0].Category == nil || listed[0].Category.Name != "Books" {
		t.Fatalf("expected nested category Books: %+v", listed[0])
	}
	if listed[0].Offer != nil {
		t.Fatalf("expected offer null: %+v", listed[0])
	}

	// order the product, then patch its status freely
	w4 := do(t, app, http.MethodPost, "/orders", map[string]any{
		"product_id": 1, "quantity": 1, "user": "john",
	})
	if w4.Code != http.StatusOK {
		t.Fatalf("order: expected 200 got %d body=%s", w4.Code, w4.Body.String())
	}
	if !strings.Contains(w4.Body.String(), `"status":"Pending"`) {
		t.Fatalf("expected Pending default: %s", w4.Body.String())
	}
	w5 := do(t, app, http.MethodPatch, "/orders/1", map[string]string{"status": "Shipped"})
	if w5.Code != http.StatusOK {
		t.Fatalf("patch: expected 200 got %d", w5.Code)
	}

	// product is now referenced: delete rejected
	w6 := do(t, app, http.MethodDelete, "/products/1", nil)
	if w6.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w6.Code, w6.Body.String())
	}
}

func TestAuthFlowE2E(t *testing.T) {
	app := setupRouter(t)

	w := do(t, app, http.MethodPost, "/register", map[string]string{
		"username": "a", "password": "p", "role": "user",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	w2 := do(t, app, http.MethodPost, "/login", map[string]string{"username": "a", "password": "p"})
	if w2.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d", w2.Code)
	}
	var out map[string]string
	if err := json.Unmarshal(w2.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if out["username"] != "a" || out["role"] != "user" {
		t.Fatalf("unexpected login payload: %v", out)
	}

	w3 := do(t, app, http.MethodPost, "/login", map[string]string{"username": "a", "password": "wrong"})
	if w3.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w3.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	app := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected allowed origin echoed, got %q", got)
	}

	// Unlisted origins get no CORS grant.
	req2 := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req2.Header.Set("Origin", "http://evil.example")
	req2.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w2 := httptest.NewRecorder()
	app.ServeHTTP(w2, req2)
	if got := w2.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no CORS grant for unlisted origin, got %q", got)
	}
}
