package handler

import (
	"net/http"
	"strconv"

	"github.com/eujoaosantiago/velohub/internal/middleware"
	"github.com/eujoaosantiago/velohub/internal/service"
	"github.com/eujoaosantiago/velohub/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reports := router.Group("/reports")
	reports.Use(middleware.RequireAuth(), middleware.RequireActiveSubscription())
	{
		reports.GET("/dashboard", h.GetDashboard)
		reports.GET("/sales", h.GetSalesReport)
	}
}

// GetDashboard returns status counts, stock value, and the monthly profit
// series for the home screen
// @Summary      Get dashboard
// @Description  Returns inventory counts, stock value, potential profit, and monthly realized profit
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        months  query     int  false  "Number of trailing months in the profit series (default 6)"
// @Success      200     {object}  response.Response{data=service.DashboardResponse}
// @Failure      500     {object}  response.Response
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) GetDashboard(c *gin.Context) {
	months, _ := strconv.Atoi(c.DefaultQuery("months", "6"))

	dashboard, err := h.reportService.GetDashboard(c.Request.Context(), c.GetString("storeID"), months)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to build dashboard: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, dashboard))
}

// GetSalesReport returns the filtered sales history. The same settlement
// formula backs this screen and the dashboard so the numbers always agree.
// @Summary      Get sales report
// @Description  Returns sold vehicles filtered by period, brand, model, payment method, and profit range
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        start_date      query     string  false  "Period start (RFC3339)"
// @Param        end_date        query     string  false  "Period end (RFC3339)"
// @Param        brand           query     string  false  "Brand filter ('all' for no filter)"
// @Param        model           query     string  false  "Model filter ('all' for no filter)"
// @Param        payment_method  query     string  false  "Payment method filter"
// @Param        min_profit      query     string  false  "Minimum profit"
// @Param        max_profit      query     string  false  "Maximum profit"
// @Success      200             {object}  response.Response{data=service.SalesReportResponse}
// @Failure      400             {object}  response.Response
// @Router       /api/reports/sales [get]
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
	var req service.SalesReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid query parameters: "+err.Error()))
		return
	}

	report, err := h.reportService.GetSalesReport(c.Request.Context(), c.GetString("storeID"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, report))
}
