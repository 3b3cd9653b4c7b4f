package handler

import (
	"net/http"

	"github.com/eujoaosantiago/velohub/internal/middleware"
	"github.com/eujoaosantiago/velohub/internal/service"
	"github.com/eujoaosantiago/velohub/pkg/response"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	expenseService service.ExpenseService
}

func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

func (h *ExpenseHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("")
	group.Use(middleware.RequireAuth(), middleware.RequireActiveSubscription())
	{
		group.GET("/vehicles/:id/expenses", h.GetLedger)
		group.POST("/vehicles/:id/expenses", h.AddExpense)
		group.DELETE("/expenses/:id", h.DeleteExpense)
	}
}

// GetLedger returns the vehicle's expense ledger with aggregated totals
// @Summary      Get vehicle ledger
// @Description  Retrieves all expenses for a vehicle with total, operating cost, and effective commission
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle ID"
// @Success      200  {object}  response.Response{data=service.VehicleLedgerResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/vehicles/{id}/expenses [get]
func (h *ExpenseHandler) GetLedger(c *gin.Context) {
	ledger, err := h.expenseService.GetLedger(c.Request.Context(), c.GetString("storeID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, ledger))
}

// AddExpense records a cost against a vehicle. Sold vehicles reject new
// expenses because their financials are frozen.
// @Summary      Add expense
// @Description  Records an expense against an unsold vehicle
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                        true  "Vehicle ID"
// @Param        payload  body      service.CreateExpenseRequest  true  "Expense Payload"
// @Success      201      {object}  response.Response{data=service.ExpenseResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/vehicles/{id}/expenses [post]
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	var req service.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), c.GetString("storeID"), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, expense))
}

// DeleteExpense removes an expense entry from an unsold vehicle
// @Summary      Delete expense
// @Description  Deletes an expense entry; frozen for sold vehicles
// @Tags         expenses
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Expense ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	if err := h.expenseService.DeleteExpense(c.Request.Context(), c.GetString("storeID"), c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Expense deleted"))
}
