package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise-app/backend/models"
)

func postBudget(t *testing.T, r *gin.Engine, token string, categoryID int64, amount string, month, year int) (models.Budget, int) {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/budgets", token, gin.H{
		"categoryId": categoryID,
		"amount":     json.RawMessage(amount),
		"month":      month,
		"year":       year,
	})
	return decode[models.BudgetResponse](t, w).Budget, w.Code
}

func TestUpsertBudget(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")
	food := findCategory(t, r, token, "Food & Dining")

	w := doRequest(t, r, http.MethodPost, "/budgets", token, gin.H{
		"categoryId": food.ID,
		"amount":     json.RawMessage("200.00"),
		"month":      3,
		"year":       2024,
	})
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	created := decode[models.BudgetResponse](t, w)
	assert.Equal(t, "Budget created successfully", created.Message)
	assert.Equal(t, int64(20000), created.Budget.Amount.Cents)
	assert.Equal(t, 3, created.Budget.Month)
	assert.Equal(t, 2024, created.Budget.Year)

	// Same (category, month, year): the ceiling is overwritten in place.
	w = doRequest(t, r, http.MethodPost, "/budgets", token, gin.H{
		"categoryId": food.ID,
		"amount":     json.RawMessage("350.00"),
		"month":      3,
		"year":       2024,
	})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.BudgetResponse](t, w)
	assert.Equal(t, "Budget updated successfully", updated.Message)
	assert.Equal(t, created.Budget.ID, updated.Budget.ID)
	assert.Equal(t, int64(35000), updated.Budget.Amount.Cents)

	w = doRequest(t, r, http.MethodGet, "/budgets?month=3&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.BudgetsResponse](t, w).Budgets, 1)
}

func TestUpsertBudgetValidation(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")
	other := registerUser(t, r, "bob@example.com")
	food := findCategory(t, r, token, "Food & Dining")

	w := doRequest(t, r, http.MethodPost, "/budgets", token, gin.H{
		"categoryId": food.ID,
		"amount":     json.RawMessage("0"),
		"month":      3,
		"year":       2024,
	})
	assert.Contains(t, validationFields(t, w), "amount")

	w = doRequest(t, r, http.MethodPost, "/budgets", token, gin.H{
		"categoryId": food.ID,
		"amount":     json.RawMessage("100"),
		"month":      13,
		"year":       2024,
	})
	assert.Contains(t, validationFields(t, w), "month")

	w = doRequest(t, r, http.MethodPost, "/budgets", token, gin.H{
		"categoryId": food.ID,
		"amount":     json.RawMessage("100"),
		"month":      3,
		"year":       1999,
	})
	assert.Contains(t, validationFields(t, w), "year")

	// A category the user cannot see is a 404.
	w = doRequest(t, r, http.MethodPost, "/categories", other, gin.H{"name": "Private", "type": "EXPENSE"})
	require.Equal(t, http.StatusCreated, w.Code)
	private := decode[models.CategoryResponse](t, w).Category

	w = doRequest(t, r, http.MethodPost, "/budgets", token, gin.H{
		"categoryId": private.ID,
		"amount":     json.RawMessage("100"),
		"month":      3,
		"year":       2024,
	})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Category not found", decode[models.ErrorResponse](t, w).Error)
}

func TestGetBudgetsComputesStatus(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")
	food := findCategory(t, r, token, "Food & Dining")
	transport := findCategory(t, r, token, "Transportation")

	_, code := postBudget(t, r, token, food.ID, "200.00", 3, 2024)
	require.Equal(t, http.StatusCreated, code)
	_, code = postBudget(t, r, token, transport.ID, "50.00", 3, 2024)
	require.Equal(t, http.StatusCreated, code)

	// Food: 60 + 40 = 100 of 200 spent. Transportation: 75 of 50, over
	// budget. A transaction outside the month does not count.
	postTransaction(t, r, token, food.ID, "EXPENSE", "60.00", "2024-03-05")
	postTransaction(t, r, token, food.ID, "EXPENSE", "40.00", "2024-03-25")
	postTransaction(t, r, token, transport.ID, "EXPENSE", "75.00", "2024-03-10")
	postTransaction(t, r, token, food.ID, "EXPENSE", "500.00", "2024-04-01")

	w := doRequest(t, r, http.MethodGet, "/budgets?month=3&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	budgets := decode[models.BudgetsResponse](t, w).Budgets
	require.Len(t, budgets, 2)

	// Ordered by category name.
	foodStatus := budgets[0]
	assert.Equal(t, "Food & Dining", foodStatus.Category.Name)
	assert.Equal(t, int64(10000), foodStatus.Spent.Cents)
	assert.Equal(t, int64(10000), foodStatus.Remaining.Cents)
	assert.Equal(t, 50.0, foodStatus.Percentage)

	transportStatus := budgets[1]
	assert.Equal(t, int64(7500), transportStatus.Spent.Cents)
	assert.Equal(t, int64(-2500), transportStatus.Remaining.Cents)
	assert.Equal(t, 100.0, transportStatus.Percentage)
}

func TestGetBudgetsMonthValidation(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")

	w := doRequest(t, r, http.MethodGet, "/budgets?month=0&year=2024", token, nil)
	assert.Contains(t, validationFields(t, w), "month")

	w = doRequest(t, r, http.MethodGet, "/budgets?month=3&year=-1", token, nil)
	assert.Contains(t, validationFields(t, w), "year")
}

func TestDeleteBudget(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")
	other := registerUser(t, r, "bob@example.com")
	food := findCategory(t, r, token, "Food & Dining")

	b, code := postBudget(t, r, token, food.ID, "200.00", 3, 2024)
	require.Equal(t, http.StatusCreated, code)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/budgets/%d", b.ID), other, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Budget not found", decode[models.ErrorResponse](t, w).Error)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/budgets/%d", b.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Budget deleted successfully", decode[models.MessageResponse](t, w).Message)

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/budgets/%d", b.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
