package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise-app/backend/core"
	"github.com/finwise-app/backend/models"
)

func TestDashboardSummary(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")
	food := findCategory(t, r, token, "Food & Dining")
	salary := findCategory(t, r, token, "Salary")

	postTransaction(t, r, token, salary.ID, "INCOME", "5000.00", "2024-03-01")
	postTransaction(t, r, token, food.ID, "EXPENSE", "120.50", "2024-03-10")
	postTransaction(t, r, token, food.ID, "EXPENSE", "79.50", "2024-03-20")
	// Outside the requested month.
	postTransaction(t, r, token, food.ID, "EXPENSE", "999.00", "2024-04-01")

	w := doRequest(t, r, http.MethodGet, "/dashboard/summary?month=3&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Summary core.Summary `json:"summary"`
	}](t, w)
	assert.Equal(t, int64(500000), resp.Summary.Income.Cents)
	assert.Equal(t, int64(20000), resp.Summary.Expense.Cents)
	assert.Equal(t, int64(480000), resp.Summary.Balance.Cents)
	assert.Equal(t, 3, resp.Summary.TransactionCount)
	assert.Equal(t, 3, resp.Summary.Month)
	assert.Equal(t, 2024, resp.Summary.Year)
}

func TestDashboardSummaryEmptyMonth(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")

	w := doRequest(t, r, http.MethodGet, "/dashboard/summary?month=6&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		Summary core.Summary `json:"summary"`
	}](t, w)
	assert.Equal(t, int64(0), resp.Summary.Balance.Cents)
	assert.Equal(t, 0, resp.Summary.TransactionCount)

	w = doRequest(t, r, http.MethodGet, "/dashboard/summary?month=13&year=2024", token, nil)
	assert.Contains(t, validationFields(t, w), "month")
}

func TestDashboardChart(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")
	food := findCategory(t, r, token, "Food & Dining")
	transport := findCategory(t, r, token, "Transportation")
	salary := findCategory(t, r, token, "Salary")

	postTransaction(t, r, token, food.ID, "EXPENSE", "120.50", "2024-03-05")
	postTransaction(t, r, token, food.ID, "EXPENSE", "79.50", "2024-03-15")
	postTransaction(t, r, token, transport.ID, "EXPENSE", "30.00", "2024-03-20")
	postTransaction(t, r, token, salary.ID, "INCOME", "5000.00", "2024-03-01")

	w := doRequest(t, r, http.MethodGet, "/dashboard/chart?type=EXPENSE&month=3&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode[struct {
		ChartData []core.ChartItem `json:"chartData"`
		Type      string           `json:"type"`
		Month     int              `json:"month"`
		Year      int              `json:"year"`
	}](t, w)
	assert.Equal(t, "EXPENSE", resp.Type)
	assert.Equal(t, 3, resp.Month)
	assert.Equal(t, 2024, resp.Year)
	require.Len(t, resp.ChartData, 2)

	byName := map[string]core.ChartItem{}
	for _, item := range resp.ChartData {
		byName[item.Name] = item
	}
	assert.Equal(t, int64(20000), byName["Food & Dining"].Value.Cents)
	assert.Equal(t, "#EF4444", byName["Food & Dining"].Color)
	assert.Equal(t, int64(3000), byName["Transportation"].Value.Cents)

	// Income chart only sees the salary entry.
	w = doRequest(t, r, http.MethodGet, "/dashboard/chart?type=INCOME&month=3&year=2024", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	income := decode[struct {
		ChartData []core.ChartItem `json:"chartData"`
	}](t, w)
	require.Len(t, income.ChartData, 1)
	assert.Equal(t, "Salary", income.ChartData[0].Name)

	w = doRequest(t, r, http.MethodGet, "/dashboard/chart?type=BOGUS", token, nil)
	assert.Contains(t, validationFields(t, w), "type")
}

func TestDashboardRecent(t *testing.T) {
	r := setupTestServer(t)
	token := registerUser(t, r, "alice@example.com")
	food := findCategory(t, r, token, "Food & Dining")

	for day := 1; day <= 7; day++ {
		postTransaction(t, r, token, food.ID, "EXPENSE", "1.00", fmt.Sprintf("2024-03-%02d", day))
	}

	// Default limit is five, newest first.
	w := doRequest(t, r, http.MethodGet, "/dashboard/recent", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	recent := decode[models.TransactionsResponse](t, w).Transactions
	require.Len(t, recent, 5)
	assert.Equal(t, "2024-03-07", recent[0].Date.String())

	w = doRequest(t, r, http.MethodGet, "/dashboard/recent?limit=2", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[models.TransactionsResponse](t, w).Transactions, 2)

	w = doRequest(t, r, http.MethodGet, "/dashboard/recent?limit=0", token, nil)
	assert.Contains(t, validationFields(t, w), "limit")
}
