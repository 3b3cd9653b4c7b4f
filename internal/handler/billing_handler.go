package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/eujoaosantiago/velohub/internal/middleware"
	"github.com/eujoaosantiago/velohub/internal/service"
	"github.com/eujoaosantiago/velohub/pkg/response"

	"github.com/gin-gonic/gin"
)

type BillingHandler struct {
	billingService service.BillingService
}

func NewBillingHandler(billingService service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

func (h *BillingHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Webhook is provider-authenticated via signature, not JWT
	router.POST("/webhooks/billing", h.HandleWebhook)

	billing := router.Group("/billing")
	billing.Use(middleware.RequireAuth())
	{
		billing.GET("/subscription", h.GetSubscription)
	}
}

// HandleWebhook ingests subscription lifecycle events from the payment provider
// @Summary      Billing webhook
// @Description  Applies subscription created/updated/canceled and payment failure events
// @Tags         billing
// @Accept       json
// @Produce      json
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /api/webhooks/billing [post]
func (h *BillingHandler) HandleWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Failed to read request body"))
		return
	}

	if !verifyWebhookSignature(body, c.GetHeader("X-Webhook-Signature")) {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid webhook signature"))
		return
	}

	var event service.WebhookEvent
	if unmarshalErr := json.Unmarshal(body, &event); unmarshalErr != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid webhook payload: "+unmarshalErr.Error()))
		return
	}
	if event.Type == "" || event.SubscriptionID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Missing type or subscription_id"))
		return
	}

	if err := h.billingService.HandleWebhook(c.Request.Context(), event); err != nil {
		// Non-2xx makes the provider retry the event later
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Event processed"))
}

// GetSubscription returns the store's current subscription state
// @Summary      Get subscription
// @Tags         billing
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.SubscriptionResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/billing/subscription [get]
func (h *BillingHandler) GetSubscription(c *gin.Context) {
	subscription, err := h.billingService.GetSubscription(c.Request.Context(), c.GetString("storeID"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, subscription))
}

// verifyWebhookSignature checks the HMAC-SHA256 signature the provider sends
// with every event. With no secret configured the check is skipped, which is
// only acceptable in development.
func verifyWebhookSignature(body []byte, signature string) bool {
	secret := os.Getenv("BILLING_WEBHOOK_SECRET")
	if secret == "" {
		return true
	}
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
