package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finwise-app/backend/core"
	"github.com/finwise-app/backend/models"
)

// GetBudgets godoc
// @Summary List the month's budgets with their computed spend
// @Tags budgets
// @Produce json
// @Security ApiKeyAuth
// @Param month query int false "Month 1-12 (default: current)"
// @Param year query int false "Year (default: current)"
// @Success 200 {object} models.BudgetsResponse
// @Router /budgets [get]
func (h *Handler) GetBudgets(c *gin.Context) {
	month, year, ok := monthYearQuery(c)
	if !ok {
		return
	}
	uid := userID(c)
	ctx := c.Request.Context()

	budgets, err := h.storage.ListBudgets(ctx, uid, month, year)
	if err != nil {
		respondInternal(c, err)
		return
	}

	from, to := core.MonthWindow(year, month)
	spent, err := h.storage.SumExpensesByCategory(ctx, uid, from, to)
	if err != nil {
		respondInternal(c, err)
		return
	}

	out := make([]models.BudgetWithStatus, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, models.BudgetWithStatus{
			Budget:       b,
			BudgetStatus: core.BudgetUsage(b.Amount, spent[b.CategoryID]),
		})
	}
	c.JSON(http.StatusOK, models.BudgetsResponse{Budgets: out})
}

// UpsertBudget godoc
// @Summary Create or overwrite the budget for a category and month
// @Tags budgets
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpsertBudgetRequest true "Budget data"
// @Success 200 {object} models.BudgetResponse "Existing budget updated"
// @Success 201 {object} models.BudgetResponse "Budget created"
// @Failure 400 {object} models.ValidationResponse
// @Router /budgets [post]
func (h *Handler) UpsertBudget(c *gin.Context) {
	var req models.UpsertBudgetRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Amount.Positive() {
		respondValidation(c, models.FieldError{Field: "amount", Message: "Amount must be greater than 0"})
		return
	}

	uid := userID(c)
	ctx := c.Request.Context()

	// The category must be visible to the user before a budget can
	// reference it.
	if _, err := h.storage.GetCategory(ctx, req.CategoryID, uid); err != nil {
		respondStoreErr(c, err, "Category not found")
		return
	}

	budget, created, err := h.storage.UpsertBudget(ctx, uid, req.CategoryID, req.Amount, req.Month, req.Year)
	if err != nil {
		respondInternal(c, err)
		return
	}

	if created {
		c.JSON(http.StatusCreated, models.BudgetResponse{
			Message: "Budget created successfully",
			Budget:  *budget,
		})
		return
	}
	c.JSON(http.StatusOK, models.BudgetResponse{
		Message: "Budget updated successfully",
		Budget:  *budget,
	})
}

// DeleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Budget id"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /budgets/{id} [delete]
func (h *Handler) DeleteBudget(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusNotFound, "Budget not found")
		return
	}

	if err := h.storage.DeleteBudget(c.Request.Context(), id, userID(c)); err != nil {
		respondStoreErr(c, err, "Budget not found")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Budget deleted successfully"})
}
