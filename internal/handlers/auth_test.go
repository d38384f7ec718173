package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mbaye/ecom-backend/internal/auth"
	"github.com/mbaye/ecom-backend/internal/models"
)

func TestRegisterThenDuplicate(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	w := httptest.NewRecorder()
	h.Register(w, jsonRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "alice", "password": "secret", "role": "user",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	decodeBody(t, w, &created)
	if created.ID == 0 || created.Username != "alice" || created.Role != "user" {
		t.Fatalf("unexpected user payload: %+v", created)
	}
	if strings.Contains(w.Body.String(), "secret") || strings.Contains(w.Body.String(), "password") {
		t.Fatalf("password leaked in response: %s", w.Body.String())
	}

	w2 := httptest.NewRecorder()
	h.Register(w2, jsonRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "alice", "password": "other", "role": "user",
	}))
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate got %d", w2.Code)
	}
	if !strings.Contains(w2.Body.String(), "username_exists") {
		t.Fatalf("expected username_exists error: %s", w2.Body.String())
	}
}

func TestRegisterDefaultsRole(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	w := httptest.NewRecorder()
	h.Register(w, jsonRequest(t, http.MethodPost, "/register", map[string]string{
		"username": "bob", "password": "pw",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var user models.User
	if err := db.Where("username = ?", "bob").First(&user).Error; err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if user.Role != "user" {
		t.Fatalf("expected default role user got %q", user.Role)
	}
	if user.Password == "pw" {
		t.Fatal("password stored in plaintext")
	}
	if !auth.CheckPassword("pw", user.Password) {
		t.Fatal("stored hash does not verify")
	}
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	w := httptest.NewRecorder()
	h.Register(w, jsonRequest(t, http.MethodPost, "/register", map[string]string{"username": " "}))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation_failed") {
		t.Fatalf("expected validation_failed: %s", w.Body.String())
	}
}

func TestLoginConflatesFailureModes(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	hash, err := auth.HashPassword("right")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	mustCreate(t, db, &models.User{Username: "carol", Password: hash, Role: "user"})

	wrongPW := httptest.NewRecorder()
	h.Login(wrongPW, jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"username": "carol", "password": "wrong",
	}))
	unknown := httptest.NewRecorder()
	h.Login(unknown, jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"username": "nobody", "password": "whatever",
	}))

	if wrongPW.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401 got %d/%d", wrongPW.Code, unknown.Code)
	}
	// The two failure modes must be indistinguishable.
	if wrongPW.Body.String() != unknown.Body.String() {
		t.Fatalf("login failure bodies differ: %q vs %q", wrongPW.Body.String(), unknown.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	db := setupTestDB(t)
	h := NewAuthHandler(db)

	hash, err := auth.HashPassword("p")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	mustCreate(t, db, &models.User{Username: "a", Password: hash, Role: "user"})

	w := httptest.NewRecorder()
	h.Login(w, jsonRequest(t, http.MethodPost, "/login", map[string]string{
		"username": "a", "password": "p",
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var out map[string]string
	decodeBody(t, w, &out)
	if out["username"] != "a" || out["role"] != "user" {
		t.Fatalf("unexpected login payload: %v", out)
	}
	if _, leaked := out["password"]; leaked {
		t.Fatal("password present in login response")
	}
}
