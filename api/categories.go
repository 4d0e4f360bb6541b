package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finwise-app/backend/core"
	"github.com/finwise-app/backend/db"
	"github.com/finwise-app/backend/models"
)

// GetCategories godoc
// @Summary List categories visible to the user
// @Tags categories
// @Produce json
// @Security ApiKeyAuth
// @Param type query string false "Filter by type" Enums(INCOME, EXPENSE)
// @Success 200 {object} models.CategoriesResponse
// @Router /categories [get]
func (h *Handler) GetCategories(c *gin.Context) {
	typ := c.Query("type")
	if typ != "" && !core.ValidType(typ) {
		respondValidation(c, models.FieldError{Field: "type", Message: "must be INCOME or EXPENSE"})
		return
	}

	categories, err := h.storage.ListCategories(c.Request.Context(), userID(c), typ)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, models.CategoriesResponse{Categories: categories})
}

// CreateCategory godoc
// @Summary Create a user-owned category
// @Tags categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateCategoryRequest true "Category data"
// @Success 201 {object} models.CategoryResponse
// @Failure 400 {object} models.ValidationResponse
// @Router /categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.storage.CreateCategory(c.Request.Context(), userID(c), req.Name, req.Type, req.Icon, req.Color)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.CategoryResponse{
		Message:  "Category created successfully",
		Category: *category,
	})
}

// UpdateCategory godoc
// @Summary Update a user-owned category
// @Tags categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category id"
// @Param request body models.UpdateCategoryRequest true "Fields to change"
// @Success 200 {object} models.CategoryResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [put]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusNotFound, "Category not found or cannot be modified")
		return
	}

	var req models.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.storage.UpdateCategory(c.Request.Context(), id, userID(c), req.Name, req.Icon, req.Color)
	if err != nil {
		respondStoreErr(c, err, "Category not found or cannot be modified")
		return
	}
	c.JSON(http.StatusOK, models.CategoryResponse{
		Message:  "Category updated successfully",
		Category: *category,
	})
}

// DeleteCategory godoc
// @Summary Delete a user-owned category
// @Tags categories
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Category id"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		respondError(c, http.StatusNotFound, "Category not found or cannot be deleted")
		return
	}

	err := h.storage.DeleteCategory(c.Request.Context(), id, userID(c))
	if err != nil {
		if errors.Is(err, db.ErrCategoryInUse) {
			respondError(c, http.StatusBadRequest, "Cannot delete category that is being used in transactions")
			return
		}
		respondStoreErr(c, err, "Category not found or cannot be deleted")
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Category deleted successfully"})
}
