package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finwise-app/backend/core"
	"github.com/finwise-app/backend/db"
	"github.com/finwise-app/backend/models"
)

// validateTransactionBody checks the parts gin's binding tags cannot:
// the amount must be positive, the date present, and the referenced
// category must be visible to the user and of the same type.
func (h *Handler) validateTransactionBody(c *gin.Context, req *models.CreateTransactionRequest) (*models.Category, bool) {
	var fields []models.FieldError
	if !req.Amount.Positive() {
		fields = append(fields, models.FieldError{Field: "amount", Message: "Amount must be greater than 0"})
	}
	if req.Date.IsZero() {
		fields = append(fields, models.FieldError{Field: "date", Message: "is required"})
	}
	if len(fields) > 0 {
		respondValidation(c, fields...)
		return nil, false
	}

	category, err := h.storage.GetCategory(c.Request.Context(), req.CategoryID, userID(c))
	if err != nil {
		respondStoreErr(c, err, "Category not found")
		return nil, false
	}
	if category.Type != req.Type {
		respondValidation(c, models.FieldError{Field: "categoryId", Message: "Category type does not match transaction type"})
		return nil, false
	}
	return category, true
}

// GetTransactions godoc
// @Summary List the user's transactions
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param startDate query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param endDate query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param categoryId query int false "Filter by category"
// @Param type query string false "Filter by type" Enums(INCOME, EXPENSE)
// @Success 200 {object} models.TransactionsResponse
// @Router /transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	var filter db.TransactionFilter
	if v := c.Query("startDate"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			respondValidation(c, models.FieldError{Field: "startDate", Message: "Invalid date format"})
			return
		}
		filter.From = d
	}
	if v := c.Query("endDate"); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			respondValidation(c, models.FieldError{Field: "endDate", Message: "Invalid date format"})
			return
		}
		filter.To = d
	}
	if v := c.Query("type"); v != "" {
		if !core.ValidType(v) {
			respondValidation(c, models.FieldError{Field: "type", Message: "must be INCOME or EXPENSE"})
			return
		}
		filter.Type = v
	}
	if v := c.Query("categoryId"); v != "" {
		id, ok := parsePositiveInt(v)
		if !ok {
			respondValidation(c, models.FieldError{Field: "categoryId", Message: "must be a positive number"})
			return
		}
		filter.CategoryID = id
	}

	transactions, err := h.storage.ListTransactions(c.Request.Context(), userID(c), filter)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, models.TransactionsResponse{Transactions: transactions})
}

// GetTransaction godoc
// @Summary Fetch one transaction
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction id"
// @Success 200 {object} models.TransactionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	transaction, err := h.storage.GetTransaction(c.Request.Context(), id, userID(c))
	if err != nil {
		respondStoreErr(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, models.TransactionResponse{Transaction: *transaction})
}

// CreateTransaction godoc
// @Summary Record a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateTransactionRequest true "Transaction data"
// @Success 201 {object} models.TransactionResponse
// @Failure 400 {object} models.ValidationResponse
// @Router /transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	category, ok := h.validateTransactionBody(c, &req)
	if !ok {
		return
	}

	transaction := &models.Transaction{
		UserID:      userID(c),
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Category:    category,
	}
	if err := h.storage.CreateTransaction(c.Request.Context(), transaction); err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.TransactionResponse{
		Message:     "Transaction created successfully",
		Transaction: *transaction,
	})
}

// UpdateTransaction godoc
// @Summary Replace a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction id"
// @Param request body models.CreateTransactionRequest true "Transaction data"
// @Success 200 {object} models.TransactionResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /transactions/{id} [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	var req models.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	category, ok := h.validateTransactionBody(c, &req)
	if !ok {
		return
	}

	transaction := &models.Transaction{
		ID:          id,
		UserID:      userID(c),
		CategoryID:  req.CategoryID,
		Type:        req.Type,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        req.Date,
		Category:    category,
	}
	if err := h.storage.UpdateTransaction(c.Request.Context(), transaction); err != nil {
		respondStoreErr(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, models.TransactionResponse{
		Message:     "Transaction updated successfully",
		Transaction: *transaction,
	})
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Transaction id"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusNotFound, "Transaction not found")
		return
	}

	if err := h.storage.DeleteTransaction(c.Request.Context(), id, userID(c)); err != nil {
		respondStoreErr(c, err, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Transaction deleted successfully"})
}
