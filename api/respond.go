package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/finwise-app/backend/core"
	"github.com/finwise-app/backend/db"
	"github.com/finwise-app/backend/models"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, models.ErrorResponse{Error: message})
}

func respondValidation(c *gin.Context, errs ...models.FieldError) {
	c.JSON(http.StatusBadRequest, models.ValidationResponse{Errors: errs})
}

// respondInternal hides the cause from the caller and logs it server-side.
func respondInternal(c *gin.Context, err error) {
	slog.ErrorContext(c.Request.Context(), "request failed",
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err,
	)
	respondError(c, http.StatusInternalServerError, "Internal server error")
}

// respondStoreErr maps storage errors: missing/unowned entities become a
// 404 with a bare message, anything else a generic 500.
func respondStoreErr(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, db.ErrNotFound) {
		respondError(c, http.StatusNotFound, notFoundMsg)
		return
	}
	respondInternal(c, err)
}

// bindJSON binds and validates a request body, writing the field-level
// error list itself when validation fails.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make([]models.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, models.FieldError{Field: jsonField(fe.Field()), Message: fieldMessage(fe)})
		}
		respondValidation(c, fields...)
	case errors.Is(err, core.ErrInvalidAmount):
		respondValidation(c, models.FieldError{Field: "amount", Message: "Amount must be a decimal with at most two fractional digits"})
	case errors.Is(err, core.ErrInvalidDate):
		respondValidation(c, models.FieldError{Field: "date", Message: "Invalid date format"})
	default:
		respondValidation(c, models.FieldError{Field: "body", Message: "Invalid request body"})
	}
	return false
}

// jsonField lowers the first rune of a struct field name to match the
// json key the client sent.
func jsonField(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "Invalid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or later", fe.Param())
	case "oneof":
		return "must be " + strings.ReplaceAll(fe.Param(), " ", " or ")
	default:
		return "is invalid"
	}
}

func parsePositiveInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// idParam parses the :id path segment.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// monthYearQuery reads optional month/year query parameters, defaulting
// to the current calendar month in server time.
func monthYearQuery(c *gin.Context) (int, int, bool) {
	today := core.Today()
	month := int(today.Month())
	year := today.Year()

	if v := c.Query("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil || m < 1 || m > 12 {
			respondValidation(c, models.FieldError{Field: "month", Message: "must be between 1 and 12"})
			return 0, 0, false
		}
		month = m
	}
	if v := c.Query("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 1 {
			respondValidation(c, models.FieldError{Field: "year", Message: "must be a positive number"})
			return 0, 0, false
		}
		year = y
	}
	return month, year, true
}
