package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/eujoaosantiago/velohub/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type AuditLogResponse struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id,omitempty"`
	UserName   string `json:"user_name,omitempty"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity_name,omitempty"`
	Details    string `json:"details"`
	CreatedAt  string `json:"created_at"`
}

// --- Interface ---

type AuditService interface {
	ListLogs(ctx context.Context, storeID, action string, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// --- Implementation ---

func (s *auditService) ListLogs(ctx context.Context, storeID, action string, page, limit int) ([]AuditLogResponse, int64, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return nil, 0, errors.New("invalid store id")
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	entries, total, err := s.auditRepo.List(ctx, storeUUID, action, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	result := make([]AuditLogResponse, 0, len(entries))
	for _, e := range entries {
		item := AuditLogResponse{
			ID:         e.ID.String(),
			Action:     e.Action,
			EntityID:   e.EntityID,
			EntityName: e.EntityName,
			Details:    e.Details,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		}
		if e.UserID != nil {
			item.UserID = e.UserID.String()
		}
		if e.User != nil {
			item.UserName = e.User.Name
		}
		result = append(result, item)
	}
	return result, total, nil
}

// writeAuditEntry records who did what inside the caller's transaction.
// Shared by every mutating service.
func writeAuditEntry(ctx context.Context, auditRepo repository.AuditRepository, storeID uuid.UUID, userID, action, entityID, entityName string, details map[string]interface{}) error {
	payload, _ := json.Marshal(details)
	entry := &model.AuditLog{
		StoreID:    storeID,
		UserID:     parseUserUUID(userID),
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    string(payload),
	}
	if err := auditRepo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
