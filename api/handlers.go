// Package api exposes the tracker as authenticated JSON resources. The
// handlers validate at the boundary, delegate to storage, and run the
// pure aggregation reducers in core over what storage returns.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finwise-app/backend/db"
)

type Handler struct {
	storage   *db.Storage
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewHandler(s *db.Storage, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{storage: s, jwtSecret: []byte(jwtSecret), tokenTTL: tokenTTL}
}

// RegisterRoutes mounts every resource on the engine. Everything except
// registration and login sits behind the bearer-token middleware.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	protected := r.Group("/", h.AuthMiddleware())
	protected.GET("/auth/me", h.Me)

	protected.GET("/categories", h.GetCategories)
	protected.POST("/categories", h.CreateCategory)
	protected.PUT("/categories/:id", h.UpdateCategory)
	protected.DELETE("/categories/:id", h.DeleteCategory)

	protected.GET("/transactions", h.GetTransactions)
	protected.GET("/transactions/:id", h.GetTransaction)
	protected.POST("/transactions", h.CreateTransaction)
	protected.PUT("/transactions/:id", h.UpdateTransaction)
	protected.DELETE("/transactions/:id", h.DeleteTransaction)

	protected.GET("/budgets", h.GetBudgets)
	protected.POST("/budgets", h.UpsertBudget)
	protected.DELETE("/budgets/:id", h.DeleteBudget)

	protected.GET("/dashboard/summary", h.GetDashboardSummary)
	protected.GET("/dashboard/chart", h.GetChartData)
	protected.GET("/dashboard/recent", h.GetRecentTransactions)
}
