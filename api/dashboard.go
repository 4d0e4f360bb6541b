package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finwise-app/backend/core"
	"github.com/finwise-app/backend/db"
	"github.com/finwise-app/backend/models"
)

const defaultRecentLimit = 5

// GetDashboardSummary godoc
// @Summary Income/expense/balance roll-up for one month
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param month query int false "Month 1-12 (default: current)"
// @Param year query int false "Year (default: current)"
// @Success 200 {object} map[string]core.Summary
// @Router /dashboard/summary [get]
func (h *Handler) GetDashboardSummary(c *gin.Context) {
	month, year, ok := monthYearQuery(c)
	if !ok {
		return
	}

	from, to := core.MonthWindow(year, month)
	transactions, err := h.storage.ListTransactions(c.Request.Context(), userID(c),
		db.TransactionFilter{From: from, To: to})
	if err != nil {
		respondInternal(c, err)
		return
	}

	entries := make([]core.Entry, 0, len(transactions))
	for _, t := range transactions {
		entries = append(entries, core.Entry{Type: t.Type, Amount: t.Amount})
	}
	c.JSON(http.StatusOK, gin.H{"summary": core.Summarize(year, month, entries)})
}

// GetChartData godoc
// @Summary Category breakdown for one month, for charting
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "INCOME or EXPENSE (default: EXPENSE)"
// @Param month query int false "Month 1-12 (default: current)"
// @Param year query int false "Year (default: current)"
// @Success 200 {object} map[string]any
// @Router /dashboard/chart [get]
func (h *Handler) GetChartData(c *gin.Context) {
	typ := c.DefaultQuery("type", core.TypeExpense)
	if !core.ValidType(typ) {
		respondValidation(c, models.FieldError{Field: "type", Message: "must be INCOME or EXPENSE"})
		return
	}
	month, year, ok := monthYearQuery(c)
	if !ok {
		return
	}

	from, to := core.MonthWindow(year, month)
	transactions, err := h.storage.ListTransactions(c.Request.Context(), userID(c),
		db.TransactionFilter{From: from, To: to, Type: typ})
	if err != nil {
		respondInternal(c, err)
		return
	}

	entries := make([]core.CategoryEntry, 0, len(transactions))
	for _, t := range transactions {
		entry := core.CategoryEntry{CategoryID: t.CategoryID, Amount: t.Amount}
		if t.Category != nil {
			entry.Name = t.Category.Name
			entry.Color = t.Category.Color
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"chartData": core.BuildChart(entries),
		"type":      typ,
		"month":     month,
		"year":      year,
	})
}

// GetRecentTransactions godoc
// @Summary Most recent transactions across all categories
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Number of transactions (default: 5)"
// @Success 200 {object} models.TransactionsResponse
// @Router /dashboard/recent [get]
func (h *Handler) GetRecentTransactions(c *gin.Context) {
	limit := defaultRecentLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			respondValidation(c, models.FieldError{Field: "limit", Message: "must be a positive number"})
			return
		}
		limit = n
	}

	transactions, err := h.storage.RecentTransactions(c.Request.Context(), userID(c), limit)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TransactionsResponse{Transactions: transactions})
}
