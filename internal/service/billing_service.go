package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eujoaosantiago/velohub/internal/middleware"
	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/eujoaosantiago/velohub/internal/repository"

	"github.com/google/uuid"
)

// Webhook event types emitted by the subscription provider.
const (
	EventSubscriptionCreated  = "subscription.created"
	EventSubscriptionUpdated  = "subscription.updated"
	EventSubscriptionCanceled = "subscription.canceled"
	EventPaymentFailed        = "payment.failed"
)

// --- DTOs ---

// WebhookEvent is the provider's payload. Only the fields we act on are
// bound; everything else rides along in Raw for the audit trail.
type WebhookEvent struct {
	Type             string          `json:"type" binding:"required"`
	StoreID          string          `json:"store_id"`
	SubscriptionID   string          `json:"subscription_id" binding:"required"`
	PlanID           string          `json:"plan_id"`
	Status           string          `json:"status"`
	CurrentPeriodEnd string          `json:"current_period_end"` // RFC3339
	Raw              json.RawMessage `json:"data,omitempty"`
}

type SubscriptionResponse struct {
	StoreID            string `json:"store_id"`
	SubscriptionID     string `json:"subscription_id"`
	PlanID             string `json:"plan_id"`
	SubscriptionStatus string `json:"subscription_status"`
	CurrentPeriodEnd   string `json:"current_period_end,omitempty"`
}

// --- Interface ---

type BillingService interface {
	HandleWebhook(ctx context.Context, event WebhookEvent) error
	GetSubscription(ctx context.Context, storeID string) (SubscriptionResponse, error)
}

type billingService struct {
	storeRepo repository.StoreRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewBillingService(
	storeRepo repository.StoreRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) BillingService {
	return &billingService{
		storeRepo: storeRepo,
		auditRepo: auditRepo,
		txManager: txManager,
	}
}

// --- Implementation ---

// HandleWebhook applies a subscription event to the store it belongs to.
// Events for unknown stores or subscriptions are an error so the provider
// retries them; unknown event types are acknowledged and ignored.
func (s *billingService) HandleWebhook(ctx context.Context, event WebhookEvent) error {
	store, err := s.resolveStore(ctx, event)
	if err != nil {
		return err
	}

	switch event.Type {
	case EventSubscriptionCreated, EventSubscriptionUpdated:
		store.SubscriptionID = event.SubscriptionID
		if event.PlanID != "" {
			store.PlanID = event.PlanID
		}
		store.SubscriptionStatus = mapProviderStatus(event.Status)
		if event.CurrentPeriodEnd != "" {
			end, parseErr := time.Parse(time.RFC3339, event.CurrentPeriodEnd)
			if parseErr != nil {
				return fmt.Errorf("invalid current_period_end: %w", parseErr)
			}
			store.CurrentPeriodEnd = &end
		}
	case EventSubscriptionCanceled:
		store.SubscriptionStatus = model.SubscriptionCanceled
	case EventPaymentFailed:
		store.SubscriptionStatus = model.SubscriptionPastDue
	default:
		return nil
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.storeRepo.Update(txCtx, store); updateErr != nil {
			return fmt.Errorf("failed to update subscription: %w", updateErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, store.ID, "", model.ActionBillingEvent, event.SubscriptionID, event.Type, map[string]interface{}{
			"type":   event.Type,
			"status": store.SubscriptionStatus,
			"plan":   store.PlanID,
		})
	})
	if err != nil {
		return err
	}

	middleware.InvalidateSubscriptionCache(store.ID.String())
	return nil
}

func (s *billingService) GetSubscription(ctx context.Context, storeID string) (SubscriptionResponse, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return SubscriptionResponse{}, errors.New("invalid store id")
	}

	store, err := s.storeRepo.FindByID(ctx, storeUUID)
	if err != nil {
		return SubscriptionResponse{}, fmt.Errorf("store not found: %w", err)
	}

	resp := SubscriptionResponse{
		StoreID:            store.ID.String(),
		SubscriptionID:     store.SubscriptionID,
		PlanID:             store.PlanID,
		SubscriptionStatus: store.SubscriptionStatus,
	}
	if store.CurrentPeriodEnd != nil {
		resp.CurrentPeriodEnd = store.CurrentPeriodEnd.Format(time.RFC3339)
	}
	return resp, nil
}

// --- Helpers ---

func (s *billingService) resolveStore(ctx context.Context, event WebhookEvent) (*model.Store, error) {
	if event.StoreID != "" {
		storeUUID, err := uuid.Parse(event.StoreID)
		if err != nil {
			return nil, errors.New("invalid store_id in webhook event")
		}
		store, err := s.storeRepo.FindByID(ctx, storeUUID)
		if err != nil {
			return nil, fmt.Errorf("store not found: %w", err)
		}
		return store, nil
	}

	store, err := s.storeRepo.FindBySubscriptionID(ctx, event.SubscriptionID)
	if err != nil {
		return nil, fmt.Errorf("no store for subscription %s: %w", event.SubscriptionID, err)
	}
	return store, nil
}

func mapProviderStatus(status string) string {
	switch status {
	case "trialing":
		return model.SubscriptionTrialing
	case "active", "":
		return model.SubscriptionActive
	case "past_due", "unpaid":
		return model.SubscriptionPastDue
	case "canceled", "incomplete_expired":
		return model.SubscriptionCanceled
	default:
		return model.SubscriptionActive
	}
}
