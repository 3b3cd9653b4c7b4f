package handler

import (
	"net/http"

	"github.com/eujoaosantiago/velohub/internal/middleware"
	"github.com/eujoaosantiago/velohub/internal/service"
	"github.com/eujoaosantiago/velohub/pkg/response"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

func (h *SaleHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/vehicles")
	group.Use(middleware.RequireAuth(), middleware.RequireActiveSubscription())
	{
		group.POST("/:id/sale", h.CompleteSale)
		group.GET("/:id/settlement", h.GetSettlement)
	}
}

// CompleteSale closes the checkout for a vehicle: writes the frozen sale
// facts, the optional commission line, and the optional trade-in intake in
// one transaction.
// @Summary      Complete sale
// @Description  Marks a vehicle as SOLD and returns the full settlement breakdown
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                       true  "Vehicle ID"
// @Param        payload  body      service.CompleteSaleRequest  true  "Sale Payload"
// @Success      200      {object}  response.Response{data=service.SaleResponse}
// @Failure      400      {object}  response.Response
// @Router       /api/vehicles/{id}/sale [post]
func (h *SaleHandler) CompleteSale(c *gin.Context) {
	var req service.CompleteSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	sale, err := h.saleService.CompleteSale(c.Request.Context(), c.GetString("storeID"), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, sale))
}

// GetSettlement returns the profitability breakdown for a sold vehicle
// @Summary      Get sale settlement
// @Description  Returns gross revenue, total cost, profit, and ROI for a sold vehicle
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Vehicle ID"
// @Success      200  {object}  response.Response{data=finance.Settlement}
// @Failure      404  {object}  response.Response
// @Router       /api/vehicles/{id}/settlement [get]
func (h *SaleHandler) GetSettlement(c *gin.Context) {
	settlement, err := h.saleService.GetSettlement(c.Request.Context(), c.GetString("storeID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, settlement))
}
