package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eujoaosantiago/velohub/internal/finance"
	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/eujoaosantiago/velohub/internal/repository"
)

// --- DTOs ---

type CreateExpenseRequest struct {
	Category    string `json:"category" binding:"required,oneof=MAINTENANCE BODYWORK TIRES DOCUMENTATION MARKETING COMMISSION OTHER"`
	Amount      string `json:"amount" binding:"required"` // decimal string or masked input
	Payee       string `json:"payee"`
	Description string `json:"description"`
	ExpenseDate string `json:"expense_date"` // RFC3339, defaults to now
}

type ExpenseResponse struct {
	ID            string `json:"id"`
	VehicleID     string `json:"vehicle_id"`
	Category      string `json:"category"`
	Amount        string `json:"amount"`
	AmountDisplay string `json:"amount_display"`
	Payee         string `json:"payee,omitempty"`
	Description   string `json:"description"`
	ExpenseDate   string `json:"expense_date"`
	CreatedAt     string `json:"created_at"`
}

type VehicleLedgerResponse struct {
	VehicleID           string            `json:"vehicle_id"`
	Expenses            []ExpenseResponse `json:"expenses"`
	Total               string            `json:"total"`
	OperatingCost       string            `json:"operating_cost"`
	EffectiveCommission string            `json:"effective_commission"`
}

// --- Interface ---

type ExpenseService interface {
	AddExpense(ctx context.Context, storeID, userID, vehicleID string, req CreateExpenseRequest) (ExpenseResponse, error)
	GetLedger(ctx context.Context, storeID, vehicleID string) (VehicleLedgerResponse, error)
	DeleteExpense(ctx context.Context, storeID, userID, id string) error
}

type expenseService struct {
	expenseRepo repository.ExpenseRepository
	vehicleRepo repository.VehicleRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewExpenseService(
	expenseRepo repository.ExpenseRepository,
	vehicleRepo repository.VehicleRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) ExpenseService {
	return &expenseService{
		expenseRepo: expenseRepo,
		vehicleRepo: vehicleRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// --- Implementation ---

func (s *expenseService) AddExpense(ctx context.Context, storeID, userID, vehicleID string, req CreateExpenseRequest) (ExpenseResponse, error) {
	storeUUID, vehicleUUID, err := parseStoreEntity(storeID, vehicleID)
	if err != nil {
		return ExpenseResponse{}, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, storeUUID, vehicleUUID)
	if err != nil {
		return ExpenseResponse{}, fmt.Errorf("vehicle not found: %w", err)
	}
	if vehicle.Status == model.VehicleStatusSold {
		return ExpenseResponse{}, errors.New("cannot add expenses to a sold vehicle: its financials are frozen")
	}

	amount := parseMoney(req.Amount)
	if amount.IsNegative() {
		return ExpenseResponse{}, errors.New("amount must not be negative")
	}

	expense := model.Expense{
		VehicleID:   vehicleUUID,
		StoreID:     storeUUID,
		Category:    req.Category,
		Amount:      amount,
		Payee:       req.Payee,
		Description: req.Description,
		ExpenseDate: time.Now(),
	}
	if req.ExpenseDate != "" {
		d, parseErr := time.Parse(time.RFC3339, req.ExpenseDate)
		if parseErr != nil {
			return ExpenseResponse{}, fmt.Errorf("invalid expense_date: %w", parseErr)
		}
		expense.ExpenseDate = d
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.expenseRepo.Create(txCtx, &expense); createErr != nil {
			return fmt.Errorf("failed to create expense: %w", createErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionCreateExpense, expense.ID.String(), vehicleLabel(*vehicle), map[string]interface{}{
			"vehicle_id": vehicleID,
			"category":   req.Category,
			"amount":     amount.StringFixed(2),
			"payee":      req.Payee,
		})
	})
	if err != nil {
		return ExpenseResponse{}, err
	}

	return toExpenseResponse(expense), nil
}

func (s *expenseService) GetLedger(ctx context.Context, storeID, vehicleID string) (VehicleLedgerResponse, error) {
	storeUUID, vehicleUUID, err := parseStoreEntity(storeID, vehicleID)
	if err != nil {
		return VehicleLedgerResponse{}, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, storeUUID, vehicleUUID)
	if err != nil {
		return VehicleLedgerResponse{}, fmt.Errorf("vehicle not found: %w", err)
	}

	expenses, err := s.expenseRepo.ListByVehicle(ctx, storeUUID, vehicleUUID)
	if err != nil {
		return VehicleLedgerResponse{}, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	items := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		items = append(items, toExpenseResponse(e))
	}

	return VehicleLedgerResponse{
		VehicleID:           vehicleID,
		Expenses:            items,
		Total:               finance.TotalExpenses(expenses).StringFixed(2),
		OperatingCost:       finance.OperatingCost(expenses).StringFixed(2),
		EffectiveCommission: finance.EffectiveCommission(*vehicle).StringFixed(2),
	}, nil
}

func (s *expenseService) DeleteExpense(ctx context.Context, storeID, userID, id string) error {
	storeUUID, expenseUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return err
	}

	expense, err := s.expenseRepo.FindByID(ctx, storeUUID, expenseUUID)
	if err != nil {
		return fmt.Errorf("expense not found: %w", err)
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, storeUUID, expense.VehicleID)
	if err != nil {
		return fmt.Errorf("vehicle not found: %w", err)
	}
	if vehicle.Status == model.VehicleStatusSold {
		return errors.New("cannot remove expenses from a sold vehicle: its financials are frozen")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.expenseRepo.Delete(txCtx, storeUUID, expenseUUID); deleteErr != nil {
			return fmt.Errorf("failed to delete expense: %w", deleteErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionDeleteExpense, id, vehicleLabel(*vehicle), map[string]interface{}{
			"category": expense.Category,
			"amount":   expense.Amount.StringFixed(2),
		})
	})
}

// --- Helpers ---

func toExpenseResponse(e model.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID.String(),
		VehicleID:     e.VehicleID.String(),
		Category:      e.Category,
		Amount:        e.Amount.StringFixed(2),
		AmountDisplay: finance.FormatBRL(e.Amount),
		Payee:         e.Payee,
		Description:   e.Description,
		ExpenseDate:   e.ExpenseDate.Format(time.RFC3339),
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}
