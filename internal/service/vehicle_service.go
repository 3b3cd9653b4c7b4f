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
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateVehicleRequest struct {
	Brand             string `json:"brand" binding:"required"`
	Model             string `json:"model" binding:"required"`
	Year              int    `json:"year"`
	Plate             string `json:"plate"`
	Color             string `json:"color"`
	Mileage           int    `json:"mileage"`
	PurchasePrice     string `json:"purchase_price" binding:"required"` // decimal string or masked input
	PurchaseDate      string `json:"purchase_date"`                     // RFC3339
	ExpectedSalePrice string `json:"expected_sale_price"`
	ReferencePrice    string `json:"reference_price"`
}

type UpdateVehicleRequest struct {
	Brand             string `json:"brand"`
	Model             string `json:"model"`
	Year              int    `json:"year"`
	Plate             string `json:"plate"`
	Color             string `json:"color"`
	Mileage           int    `json:"mileage"`
	PurchasePrice     string `json:"purchase_price"`
	ExpectedSalePrice string `json:"expected_sale_price"`
	ReferencePrice    string `json:"reference_price"`
}

type ChangeStatusRequest struct {
	Status        string `json:"status" binding:"required,oneof=AVAILABLE RESERVED PREPARATION"`
	ReservedFor   string `json:"reserved_for"`
	ReservedUntil string `json:"reserved_until"` // RFC3339
}

type VehicleResponse struct {
	ID      string `json:"id"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`
	Year    int    `json:"year"`
	Plate   string `json:"plate"`
	Color   string `json:"color"`
	Mileage int    `json:"mileage"`
	Status  string `json:"status"`

	PurchasePrice     string `json:"purchase_price"`
	PurchaseDate      string `json:"purchase_date,omitempty"`
	ExpectedSalePrice string `json:"expected_sale_price"`
	ReferencePrice    string `json:"reference_price"`

	ReservedFor   string `json:"reserved_for,omitempty"`
	ReservedUntil string `json:"reserved_until,omitempty"`

	TotalExpenses   string `json:"total_expenses"`
	ProjectedProfit string `json:"projected_profit,omitempty"` // unsold only

	// Sold only
	SoldPrice     string              `json:"sold_price,omitempty"`
	SaleDate      string              `json:"sale_date,omitempty"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	Settlement    *finance.Settlement `json:"settlement,omitempty"`

	PriceDisplay string `json:"price_display"` // expected (or sold) price as shown in listings
	CreatedAt    string `json:"created_at"`
}

// --- Interface ---

type VehicleService interface {
	CreateVehicle(ctx context.Context, storeID, userID string, req CreateVehicleRequest) (VehicleResponse, error)
	GetVehicle(ctx context.Context, storeID, id string) (VehicleResponse, error)
	ListVehicles(ctx context.Context, storeID string, filter repository.VehicleFilter, page, limit int) ([]VehicleResponse, int64, error)
	UpdateVehicle(ctx context.Context, storeID, userID, id string, req UpdateVehicleRequest) (VehicleResponse, error)
	ChangeStatus(ctx context.Context, storeID, userID, id string, req ChangeStatusRequest) (VehicleResponse, error)
	DeleteVehicle(ctx context.Context, storeID, userID, id string) error
}

type vehicleService struct {
	vehicleRepo repository.VehicleRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
	hub         *ws.Hub
}

func NewVehicleService(
	vehicleRepo repository.VehicleRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) VehicleService {
	return &vehicleService{
		vehicleRepo: vehicleRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
		hub:         hub,
	}
}

// --- Implementation ---

func (s *vehicleService) CreateVehicle(ctx context.Context, storeID, userID string, req CreateVehicleRequest) (VehicleResponse, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return VehicleResponse{}, errors.New("invalid store id")
	}

	purchasePrice := parseMoney(req.PurchasePrice)
	if purchasePrice.IsNegative() {
		return VehicleResponse{}, errors.New("purchase_price must not be negative")
	}

	vehicle := model.Vehicle{
		StoreID:           storeUUID,
		Brand:             req.Brand,
		Model:             req.Model,
		Year:              req.Year,
		Plate:             finance.MaskPlate(req.Plate),
		Color:             req.Color,
		Mileage:           req.Mileage,
		PurchasePrice:     purchasePrice,
		ExpectedSalePrice: parseMoney(req.ExpectedSalePrice),
		ReferencePrice:    parseMoney(req.ReferencePrice),
		Status:            model.VehicleStatusAvailable,
	}

	if req.PurchaseDate != "" {
		d, parseErr := time.Parse(time.RFC3339, req.PurchaseDate)
		if parseErr != nil {
			return VehicleResponse{}, fmt.Errorf("invalid purchase_date: %w", parseErr)
		}
		vehicle.PurchaseDate = &d
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.vehicleRepo.Create(txCtx, &vehicle); createErr != nil {
			return fmt.Errorf("failed to create vehicle: %w", createErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionCreateVehicle, vehicle.ID.String(), vehicleLabel(vehicle), map[string]interface{}{
			"brand":          req.Brand,
			"model":          req.Model,
			"plate":          vehicle.Plate,
			"purchase_price": purchasePrice.StringFixed(2),
		})
	})
	if err != nil {
		return VehicleResponse{}, err
	}

	s.broadcast("vehicle.created", vehicle)
	return toVehicleResponse(vehicle), nil
}

func (s *vehicleService) GetVehicle(ctx context.Context, storeID, id string) (VehicleResponse, error) {
	storeUUID, vehicleUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return VehicleResponse{}, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, storeUUID, vehicleUUID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("vehicle not found: %w", err)
	}
	return toVehicleResponse(*vehicle), nil
}

func (s *vehicleService) ListVehicles(ctx context.Context, storeID string, filter repository.VehicleFilter, page, limit int) ([]VehicleResponse, int64, error) {
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

	vehicles, total, err := s.vehicleRepo.List(ctx, storeUUID, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch vehicles: %w", err)
	}

	result := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		result = append(result, toVehicleResponse(v))
	}
	return result, total, nil
}

func (s *vehicleService) UpdateVehicle(ctx context.Context, storeID, userID, id string, req UpdateVehicleRequest) (VehicleResponse, error) {
	storeUUID, vehicleUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return VehicleResponse{}, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, storeUUID, vehicleUUID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("vehicle not found: %w", err)
	}
	if vehicle.Status == model.VehicleStatusSold {
		return VehicleResponse{}, errors.New("sold vehicles are frozen and cannot be edited")
	}

	if req.Brand != "" {
		vehicle.Brand = req.Brand
	}
	if req.Model != "" {
		vehicle.Model = req.Model
	}
	if req.Year != 0 {
		vehicle.Year = req.Year
	}
	if req.Plate != "" {
		vehicle.Plate = finance.MaskPlate(req.Plate)
	}
	if req.Color != "" {
		vehicle.Color = req.Color
	}
	if req.Mileage != 0 {
		vehicle.Mileage = req.Mileage
	}
	if req.PurchasePrice != "" {
		p := parseMoney(req.PurchasePrice)
		if p.IsNegative() {
			return VehicleResponse{}, errors.New("purchase_price must not be negative")
		}
		vehicle.PurchasePrice = p
	}
	if req.ExpectedSalePrice != "" {
		vehicle.ExpectedSalePrice = parseMoney(req.ExpectedSalePrice)
	}
	if req.ReferencePrice != "" {
		vehicle.ReferencePrice = parseMoney(req.ReferencePrice)
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.vehicleRepo.Update(txCtx, vehicle); updateErr != nil {
			return fmt.Errorf("failed to update vehicle: %w", updateErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionUpdateVehicle, vehicle.ID.String(), vehicleLabel(*vehicle), map[string]interface{}{
			"brand": vehicle.Brand,
			"model": vehicle.Model,
			"plate": vehicle.Plate,
		})
	})
	if err != nil {
		return VehicleResponse{}, err
	}

	return toVehicleResponse(*vehicle), nil
}

// ChangeStatus moves a vehicle between the unsold states. Selling goes
// through SaleService; SOLD is deliberately absent from the binding above.
// Reservation metadata only survives in the RESERVED state.
func (s *vehicleService) ChangeStatus(ctx context.Context, storeID, userID, id string, req ChangeStatusRequest) (VehicleResponse, error) {
	storeUUID, vehicleUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return VehicleResponse{}, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, storeUUID, vehicleUUID)
	if err != nil {
		return VehicleResponse{}, fmt.Errorf("vehicle not found: %w", err)
	}
	if vehicle.Status == model.VehicleStatusSold {
		return VehicleResponse{}, errors.New("sold vehicles cannot change status")
	}

	vehicle.Status = req.Status
	vehicle.ReservedFor = ""
	vehicle.ReservedUntil = nil

	if req.Status == model.VehicleStatusReserved {
		vehicle.ReservedFor = req.ReservedFor
		if req.ReservedUntil != "" {
			until, parseErr := time.Parse(time.RFC3339, req.ReservedUntil)
			if parseErr != nil {
				return VehicleResponse{}, fmt.Errorf("invalid reserved_until: %w", parseErr)
			}
			vehicle.ReservedUntil = &until
		}
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.vehicleRepo.Update(txCtx, vehicle); updateErr != nil {
			return fmt.Errorf("failed to update vehicle status: %w", updateErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionReserveVehicle, vehicle.ID.String(), vehicleLabel(*vehicle), map[string]interface{}{
			"status":       req.Status,
			"reserved_for": vehicle.ReservedFor,
		})
	})
	if err != nil {
		return VehicleResponse{}, err
	}

	return toVehicleResponse(*vehicle), nil
}

func (s *vehicleService) DeleteVehicle(ctx context.Context, storeID, userID, id string) error {
	storeUUID, vehicleUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, storeUUID, vehicleUUID)
	if err != nil {
		return fmt.Errorf("vehicle not found: %w", err)
	}
	if vehicle.Status == model.VehicleStatusSold {
		return errors.New("sold vehicles cannot be deleted")
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.vehicleRepo.Delete(txCtx, storeUUID, vehicleUUID); deleteErr != nil {
			return fmt.Errorf("failed to delete vehicle: %w", deleteErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionDeleteVehicle, id, vehicleLabel(*vehicle), nil)
	})
}

// --- Helpers ---

func (s *vehicleService) broadcast(event string, vehicle model.Vehicle) {
	if s.hub == nil {
		return
	}
	payload, _ := json.Marshal(ws.Event{
		Event: event,
		Data: map[string]interface{}{
			"id":     vehicle.ID.String(),
			"brand":  vehicle.Brand,
			"model":  vehicle.Model,
			"status": vehicle.Status,
		},
	})
	s.hub.Broadcast <- payload
}

func vehicleLabel(v model.Vehicle) string {
	return v.Brand + " " + v.Model
}

// parseMoney accepts both plain decimal strings ("1234.56") and masked UI
// input ("R$ 1.234,56"). It never fails; unparseable input counts as zero.
func parseMoney(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return finance.ParseAmount(s)
}

func parseStoreEntity(storeID, entityID string) (uuid.UUID, uuid.UUID, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("invalid store id")
	}
	entityUUID, err := uuid.Parse(entityID)
	if err != nil {
		return uuid.Nil, uuid.Nil, errors.New("invalid id")
	}
	return storeUUID, entityUUID, nil
}

func parseUserUUID(userID string) *uuid.UUID {
	if userID == "" {
		return nil
	}
	parsed, err := uuid.Parse(userID)
	if err != nil {
		return nil
	}
	return &parsed
}

func toVehicleResponse(v model.Vehicle) VehicleResponse {
	resp := VehicleResponse{
		ID:                v.ID.String(),
		Brand:             v.Brand,
		Model:             v.Model,
		Year:              v.Year,
		Plate:             v.Plate,
		Color:             v.Color,
		Mileage:           v.Mileage,
		Status:            v.Status,
		PurchasePrice:     v.PurchasePrice.StringFixed(2),
		ExpectedSalePrice: v.ExpectedSalePrice.StringFixed(2),
		ReferencePrice:    v.ReferencePrice.StringFixed(2),
		ReservedFor:       v.ReservedFor,
		TotalExpenses:     finance.TotalExpenses(v.Expenses).StringFixed(2),
		PriceDisplay:      finance.FormatBRL(v.ExpectedSalePrice),
		CreatedAt:         v.CreatedAt.Format(time.RFC3339),
	}

	if v.PurchaseDate != nil {
		resp.PurchaseDate = v.PurchaseDate.Format(time.RFC3339)
	}
	if v.ReservedUntil != nil {
		resp.ReservedUntil = v.ReservedUntil.Format(time.RFC3339)
	}

	if v.Status == model.VehicleStatusSold {
		settlement := finance.SettleSale(v)
		resp.Settlement = &settlement
		resp.PriceDisplay = finance.FormatBRL(settlement.GrossRevenue)
		if v.SoldPrice != nil {
			resp.SoldPrice = v.SoldPrice.StringFixed(2)
		}
		if v.SaleDate != nil {
			resp.SaleDate = v.SaleDate.Format(time.RFC3339)
		}
		resp.PaymentMethod = v.PaymentMethod
	} else {
		resp.ProjectedProfit = finance.ProjectedProfit(v).StringFixed(2)
	}

	return resp
}
