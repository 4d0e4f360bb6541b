package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise-app/backend/db"
	"github.com/finwise-app/backend/models"
)

// setupTestServer builds a router backed by a fresh in-memory sqlite
// database with the default categories seeded.
func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	storage, err := db.NewStorage(db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })
	require.NoError(t, storage.Seed(context.Background()))

	r := gin.New()
	NewHandler(storage, "test-secret", time.Hour).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func registerUser(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decode[models.AuthResponse](t, w).Token
}

func findCategory(t *testing.T, r *gin.Engine, token, name string) models.Category {
	t.Helper()
	w := doRequest(t, r, http.MethodGet, "/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range decode[models.CategoriesResponse](t, w).Categories {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("category %q not found", name)
	return models.Category{}
}

func postTransaction(t *testing.T, r *gin.Engine, token string, categoryID int64, typ, amount, date string) models.Transaction {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/transactions", token, gin.H{
		"amount":     json.RawMessage(amount),
		"type":       typ,
		"date":       date,
		"categoryId": categoryID,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decode[models.TransactionResponse](t, w).Transaction
}

// validationFields extracts the field names of a 400 validation response.
func validationFields(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", w.Body.String())
	resp := decode[models.ValidationResponse](t, w)
	fields := make([]string, 0, len(resp.Errors))
	for _, fe := range resp.Errors {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestRegister(t *testing.T) {
	r := setupTestServer(t)

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "Alice@Example.com",
		"password": "password123",
		"name":     "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decode[models.AuthResponse](t, w)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.NotZero(t, resp.User.ID)
	// The hash must never serialize.
	assert.NotContains(t, w.Body.String(), "passwordHash")
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setupTestServer(t)
	registerUser(t, r, "alice@example.com")

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
		"name":     "Alice Again",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already registered", decode[models.ErrorResponse](t, w).Error)
}

func TestRegisterValidation(t *testing.T) {
	r := setupTestServer(t)

	w := doRequest(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":    "not-an-email",
		"password": "123",
	})
	fields := validationFields(t, w)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
	assert.Contains(t, fields, "name")
}

func TestLogin(t *testing.T) {
	r := setupTestServer(t)
	registerUser(t, r, "alice@example.com")

	w := doRequest(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.AuthResponse](t, w)
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)

	// Wrong password and unknown email produce the same generic 401.
	for _, body := range []gin.H{
		{"email": "alice@example.com", "password": "wrong-password"},
		{"email": "nobody@example.com", "password": "password123"},
	} {
		w := doRequest(t, r, http.MethodPost, "/auth/login", "", body)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid email or password", decode[models.ErrorResponse](t, w).Error)
	}
}

func TestAuthMiddleware(t *testing.T) {
	r := setupTestServer(t)

	w := doRequest(t, r, http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided", decode[models.ErrorResponse](t, w).Error)

	w = doRequest(t, r, http.MethodGet, "/categories", "not-a-jwt", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", decode[models.ErrorResponse](t, w).Error)
}

func TestMe(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")

	w := doRequest(t, r, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		User models.User `json:"user"`
	}](t, w)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestListCategories(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")

	w := doRequest(t, r, http.MethodGet, "/categories", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.CategoriesResponse](t, w).Categories, 14)

	w = doRequest(t, r, http.MethodGet, "/categories?type=INCOME", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, c := range decode[models.CategoriesResponse](t, w).Categories {
		assert.Equal(t, "INCOME", c.Type)
		assert.True(t, c.IsDefault)
	}

	w = doRequest(t, r, http.MethodGet, "/categories?type=BOGUS", token, nil)
	assert.Contains(t, validationFields(t, w), "type")
}

func TestCreateCategory(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")

	w := doRequest(t, r, http.MethodPost, "/categories", token, gin.H{
		"name":  "Coffee",
		"type":  "EXPENSE",
		"icon":  "☕",
		"color": "#6F4E37",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[models.CategoryResponse](t, w)
	assert.Equal(t, "Category created successfully", resp.Message)
	assert.Equal(t, "Coffee", resp.Category.Name)
	assert.False(t, resp.Category.IsDefault)
	require.NotNil(t, resp.Category.UserID)

	// Type outside the enum.
	w = doRequest(t, r, http.MethodPost, "/categories", token, gin.H{
		"name": "Broken",
		"type": "TRANSFER",
	})
	assert.Contains(t, validationFields(t, w), "type")
}

func TestUpdateCategory(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")
	other := registerUser(t, r, "bob@example.com")

	w := doRequest(t, r, http.MethodPost, "/categories", token, gin.H{"name": "Coffee", "type": "EXPENSE"})
	require.Equal(t, http.StatusCreated, w.Code)
	mine := decode[models.CategoryResponse](t, w).Category

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", mine.ID), token, gin.H{"name": "Espresso"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.CategoryResponse](t, w)
	assert.Equal(t, "Category updated successfully", resp.Message)
	assert.Equal(t, "Espresso", resp.Category.Name)

	// Someone else's category and shared defaults are both a 404.
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", mine.ID), other, gin.H{"name": "Mine Now"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found or cannot be modified", decode[models.ErrorResponse](t, w).Error)

	def := findCategory(t, r, token, "Salary")
	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", def.ID), token, gin.H{"name": "Wages"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategory(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")

	w := doRequest(t, r, http.MethodPost, "/categories", token, gin.H{"name": "Coffee", "type": "EXPENSE"})
	require.Equal(t, http.StatusCreated, w.Code)
	c := decode[models.CategoryResponse](t, w).Category

	tx := postTransaction(t, r, token, c.ID, "EXPENSE", "4.50", "2024-03-15")

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", c.ID), token, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot delete category that is being used in transactions", decode[models.ErrorResponse](t, w).Error)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/transactions/%d", tx.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", c.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Category deleted successfully", decode[models.MessageResponse](t, w).Message)

	w = doRequest(t, r, http.MethodDelete, "/categories/99999", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
