package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eujoaosantiago/velohub/internal/finance"
	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/eujoaosantiago/velohub/internal/repository"
	ws "github.com/eujoaosantiago/velohub/internal/websocket"

	"github.com/google/uuid"
)

// --- DTOs ---

// TradeInIntakeRequest describes the vehicle taken as part of the payment.
// When present it enters the store's inventory as a new AVAILABLE vehicle
// whose purchase price is the trade-in valuation.
type TradeInIntakeRequest struct {
	Brand   string `json:"brand" binding:"required"`
	Model   string `json:"model" binding:"required"`
	Year    int    `json:"year"`
	Plate   string `json:"plate"`
	Color   string `json:"color"`
	Mileage int    `json:"mileage"`
}

type CompleteSaleRequest struct {
	SoldPrice     string `json:"sold_price" binding:"required"` // gross, trade-in included
	SaleDate      string `json:"sale_date"`                     // RFC3339, defaults to now
	PaymentMethod string `json:"payment_method" binding:"required"`
	BuyerID       string `json:"buyer_id"`

	TradeInValue       string                `json:"trade_in_value"`
	TradeInDescription string                `json:"trade_in_description"`
	TradeInIntake      *TradeInIntakeRequest `json:"trade_in_intake"`

	// Commission may be recorded either as the explicit sale field or as a
	// COMMISSION expense line, never both.
	Commission                string `json:"commission"`
	CommissionPayee           string `json:"commission_payee"`
	RecordCommissionAsExpense bool   `json:"record_commission_as_expense"`

	WarrantyTerms string `json:"warranty_terms"`
}

type SaleResponse struct {
	VehicleID     string `json:"vehicle_id"`
	Status        string `json:"status"`
	SoldPrice     string `json:"sold_price"`
	SaleDate      string `json:"sale_date"`
	PaymentMethod string `json:"payment_method"`

	Settlement          finance.Settlement `json:"settlement"`
	ProfitDisplay       string             `json:"profit_display"`
	CashReceivedDisplay string             `json:"cash_received_display"`

	TradeInVehicleID string `json:"trade_in_vehicle_id,omitempty"`
}

// --- Interface ---

type SaleService interface {
	CompleteSale(ctx context.Context, storeID, userID, vehicleID string, req CompleteSaleRequest) (SaleResponse, error)
	GetSettlement(ctx context.Context, storeID, vehicleID string) (finance.Settlement, error)
}

type saleService struct {
	vehicleRepo  repository.VehicleRepository
	expenseRepo  repository.ExpenseRepository
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
	hub          *ws.Hub
}

func NewSaleService(
	vehicleRepo repository.VehicleRepository,
	expenseRepo repository.ExpenseRepository,
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) SaleService {
	return &saleService{
		vehicleRepo:  vehicleRepo,
		expenseRepo:  expenseRepo,
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
		hub:          hub,
	}
}

// --- Implementation ---

// CompleteSale writes the sale facts once, freezes the vehicle as SOLD, and
// returns the settlement. Sale facts, the optional commission expense, the
// optional trade-in intake, and the audit trail commit in a single
// transaction.
func (s *saleService) CompleteSale(ctx context.Context, storeID, userID, vehicleID string, req CompleteSaleRequest) (SaleResponse, error) {
	storeUUID, vehicleUUID, err := parseStoreEntity(storeID, vehicleID)
	if err != nil {
		return SaleResponse{}, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, storeUUID, vehicleUUID)
	if err != nil {
		return SaleResponse{}, fmt.Errorf("vehicle not found: %w", err)
	}
	if vehicle.Status == model.VehicleStatusSold {
		return SaleResponse{}, errors.New("vehicle is already sold")
	}

	soldPrice := parseMoney(req.SoldPrice)
	if soldPrice.IsNegative() {
		return SaleResponse{}, errors.New("sold_price must not be negative")
	}

	saleDate := time.Now()
	if req.SaleDate != "" {
		d, parseErr := time.Parse(time.RFC3339, req.SaleDate)
		if parseErr != nil {
			return SaleResponse{}, fmt.Errorf("invalid sale_date: %w", parseErr)
		}
		saleDate = d
	}

	tradeInValue := parseMoney(req.TradeInValue)
	if tradeInValue.IsNegative() {
		return SaleResponse{}, errors.New("trade_in_value must not be negative")
	}
	if tradeInValue.GreaterThan(soldPrice) {
		return SaleResponse{}, errors.New("trade_in_value cannot exceed sold_price")
	}
	if req.TradeInIntake != nil && tradeInValue.IsZero() {
		return SaleResponse{}, errors.New("trade_in_value is required when a trade-in vehicle is provided")
	}

	commission := parseMoney(req.Commission)
	if commission.IsNegative() {
		return SaleResponse{}, errors.New("commission must not be negative")
	}

	var buyerUUID *uuid.UUID
	if req.BuyerID != "" {
		parsed, parseErr := uuid.Parse(req.BuyerID)
		if parseErr != nil {
			return SaleResponse{}, fmt.Errorf("invalid buyer_id: %w", parseErr)
		}
		if _, findErr := s.customerRepo.FindByID(ctx, storeUUID, parsed); findErr != nil {
			return SaleResponse{}, fmt.Errorf("buyer not found: %w", findErr)
		}
		buyerUUID = &parsed
	}

	// ---- Write sale facts ----
	vehicle.Status = model.VehicleStatusSold
	vehicle.ReservedFor = ""
	vehicle.ReservedUntil = nil
	vehicle.SoldPrice = &soldPrice
	vehicle.SaleDate = &saleDate
	vehicle.PaymentMethod = req.PaymentMethod
	vehicle.BuyerID = buyerUUID
	vehicle.WarrantyTerms = req.WarrantyTerms
	if tradeInValue.IsPositive() {
		vehicle.TradeInValue = &tradeInValue
		vehicle.TradeInDescription = req.TradeInDescription
	}

	var commissionExpense *model.Expense
	if commission.IsPositive() {
		if req.RecordCommissionAsExpense {
			commissionExpense = &model.Expense{
				VehicleID:   vehicleUUID,
				StoreID:     storeUUID,
				Category:    model.ExpenseCommission,
				Amount:      commission,
				Payee:       req.CommissionPayee,
				Description: "sale commission",
				ExpenseDate: saleDate,
			}
			// the ledger line becomes the effective commission; the
			// explicit field stays empty so it is never double-counted
			vehicle.SaleCommission = nil
			vehicle.CommissionPayee = ""
		} else {
			vehicle.SaleCommission = &commission
			vehicle.CommissionPayee = req.CommissionPayee
		}
	}

	var tradeInVehicle *model.Vehicle
	if req.TradeInIntake != nil {
		tradeInVehicle = &model.Vehicle{
			StoreID:            storeUUID,
			Brand:              req.TradeInIntake.Brand,
			Model:              req.TradeInIntake.Model,
			Year:               req.TradeInIntake.Year,
			Plate:              finance.MaskPlate(req.TradeInIntake.Plate),
			Color:              req.TradeInIntake.Color,
			Mileage:            req.TradeInIntake.Mileage,
			PurchasePrice:      tradeInValue,
			PurchaseDate:       &saleDate,
			Status:             model.VehicleStatusAvailable,
			TradeInDescription: req.TradeInDescription,
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.vehicleRepo.Update(txCtx, vehicle); updateErr != nil {
			return fmt.Errorf("failed to write sale: %w", updateErr)
		}

		if commissionExpense != nil {
			if createErr := s.expenseRepo.Create(txCtx, commissionExpense); createErr != nil {
				return fmt.Errorf("failed to record commission expense: %w", createErr)
			}
		}

		if tradeInVehicle != nil {
			if createErr := s.vehicleRepo.Create(txCtx, tradeInVehicle); createErr != nil {
				return fmt.Errorf("failed to create trade-in intake vehicle: %w", createErr)
			}
			if auditErr := writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionTradeInIntake, tradeInVehicle.ID.String(), vehicleLabel(*tradeInVehicle), map[string]interface{}{
				"traded_against": vehicleID,
				"valuation":      tradeInValue.StringFixed(2),
			}); auditErr != nil {
				return auditErr
			}
		}

		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionSellVehicle, vehicleID, vehicleLabel(*vehicle), map[string]interface{}{
			"sold_price":     soldPrice.StringFixed(2),
			"payment_method": req.PaymentMethod,
			"trade_in_value": tradeInValue.StringFixed(2),
			"commission":     commission.StringFixed(2),
		})
	})
	if err != nil {
		return SaleResponse{}, err
	}

	// settle against the ledger as committed, commission line included
	if commissionExpense != nil {
		vehicle.Expenses = append(vehicle.Expenses, *commissionExpense)
	}
	settlement := finance.SettleSale(*vehicle)

	s.broadcastSold(*vehicle, settlement)

	resp := SaleResponse{
		VehicleID:           vehicleID,
		Status:              vehicle.Status,
		SoldPrice:           soldPrice.StringFixed(2),
		SaleDate:            saleDate.Format(time.RFC3339),
		PaymentMethod:       req.PaymentMethod,
		Settlement:          settlement,
		ProfitDisplay:       finance.FormatBRL(settlement.Profit),
		CashReceivedDisplay: finance.FormatBRL(settlement.CashReceived),
	}
	if tradeInVehicle != nil {
		resp.TradeInVehicleID = tradeInVehicle.ID.String()
	}
	return resp, nil
}

// GetSettlement recomputes the committed settlement of a sold vehicle.
func (s *saleService) GetSettlement(ctx context.Context, storeID, vehicleID string) (finance.Settlement, error) {
	storeUUID, vehicleUUID, err := parseStoreEntity(storeID, vehicleID)
	if err != nil {
		return finance.Settlement{}, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, storeUUID, vehicleUUID)
	if err != nil {
		return finance.Settlement{}, fmt.Errorf("vehicle not found: %w", err)
	}
	if vehicle.Status != model.VehicleStatusSold {
		return finance.Settlement{}, errors.New("vehicle is not sold")
	}

	return finance.SettleSale(*vehicle), nil
}

func (s *saleService) broadcastSold(vehicle model.Vehicle, settlement finance.Settlement) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(ws.Event{
		Event: "vehicle.sold",
		Data: map[string]interface{}{
			"id":     vehicle.ID.String(),
			"brand":  vehicle.Brand,
			"model":  vehicle.Model,
			"profit": settlement.Profit.StringFixed(2),
		},
	})
	s.hub.Broadcast <- payload
}
