package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eujoaosantiago/velohub/internal/finance"
	"github.com/eujoaosantiago/velohub/internal/model"
	"github.com/eujoaosantiago/velohub/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type CustomerRequest struct {
	Name         string `json:"name" binding:"required"`
	CPF          string `json:"cpf"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Notes        string `json:"notes"`
}

type CustomerResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CPF          string `json:"cpf,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	CEP          string `json:"cep,omitempty"`
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CreatedAt    string `json:"created_at"`
}

// --- Interface ---

type CustomerService interface {
	CreateCustomer(ctx context.Context, storeID, userID string, req CustomerRequest) (CustomerResponse, error)
	GetCustomer(ctx context.Context, storeID, id string) (CustomerResponse, error)
	ListCustomers(ctx context.Context, storeID, search string, page, limit int) ([]CustomerResponse, int64, error)
	UpdateCustomer(ctx context.Context, storeID, userID, id string, req CustomerRequest) (CustomerResponse, error)
	DeleteCustomer(ctx context.Context, storeID, userID, id string) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	auditRepo    repository.AuditRepository
	txManager    repository.TransactionManager
}

func NewCustomerService(
	customerRepo repository.CustomerRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		auditRepo:    auditRepo,
		txManager:    txManager,
	}
}

// --- Implementation ---

func (s *customerService) CreateCustomer(ctx context.Context, storeID, userID string, req CustomerRequest) (CustomerResponse, error) {
	storeUUID, err := uuid.Parse(storeID)
	if err != nil {
		return CustomerResponse{}, errors.New("invalid store id")
	}

	if req.CPF != "" && !finance.ValidCPF(req.CPF) {
		return CustomerResponse{}, errors.New("invalid cpf")
	}

	customer := model.Customer{
		StoreID:      storeUUID,
		Name:         req.Name,
		CPF:          req.CPF,
		Phone:        finance.MaskPhone(req.Phone),
		Email:        req.Email,
		CEP:          finance.MaskCEP(req.CEP),
		Street:       req.Street,
		Number:       req.Number,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		Notes:        req.Notes,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.customerRepo.Create(txCtx, &customer); createErr != nil {
			return fmt.Errorf("failed to create customer: %w", createErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionCreateCustomer, customer.ID.String(), req.Name, nil)
	})
	if err != nil {
		return CustomerResponse{}, err
	}

	return toCustomerResponse(customer), nil
}

func (s *customerService) GetCustomer(ctx context.Context, storeID, id string) (CustomerResponse, error) {
	storeUUID, customerUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return CustomerResponse{}, err
	}

	customer, err := s.customerRepo.FindByID(ctx, storeUUID, customerUUID)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("customer not found: %w", err)
	}
	return toCustomerResponse(*customer), nil
}

func (s *customerService) ListCustomers(ctx context.Context, storeID, search string, page, limit int) ([]CustomerResponse, int64, error) {
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

	customers, total, err := s.customerRepo.List(ctx, storeUUID, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch customers: %w", err)
	}

	result := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		result = append(result, toCustomerResponse(c))
	}
	return result, total, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, storeID, userID, id string, req CustomerRequest) (CustomerResponse, error) {
	storeUUID, customerUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return CustomerResponse{}, err
	}

	customer, err := s.customerRepo.FindByID(ctx, storeUUID, customerUUID)
	if err != nil {
		return CustomerResponse{}, fmt.Errorf("customer not found: %w", err)
	}

	if req.CPF != "" && !finance.ValidCPF(req.CPF) {
		return CustomerResponse{}, errors.New("invalid cpf")
	}

	customer.Name = req.Name
	customer.CPF = req.CPF
	customer.Phone = finance.MaskPhone(req.Phone)
	customer.Email = req.Email
	customer.CEP = finance.MaskCEP(req.CEP)
	customer.Street = req.Street
	customer.Number = req.Number
	customer.Neighborhood = req.Neighborhood
	customer.City = req.City
	customer.State = req.State
	customer.Notes = req.Notes

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if updateErr := s.customerRepo.Update(txCtx, customer); updateErr != nil {
			return fmt.Errorf("failed to update customer: %w", updateErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionUpdateCustomer, id, req.Name, nil)
	})
	if err != nil {
		return CustomerResponse{}, err
	}

	return toCustomerResponse(*customer), nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, storeID, userID, id string) error {
	storeUUID, customerUUID, err := parseStoreEntity(storeID, id)
	if err != nil {
		return err
	}

	customer, err := s.customerRepo.FindByID(ctx, storeUUID, customerUUID)
	if err != nil {
		return fmt.Errorf("customer not found: %w", err)
	}

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if deleteErr := s.customerRepo.Delete(txCtx, storeUUID, customerUUID); deleteErr != nil {
			return fmt.Errorf("failed to delete customer: %w", deleteErr)
		}
		return writeAuditEntry(txCtx, s.auditRepo, storeUUID, userID, model.ActionDeleteCustomer, id, customer.Name, nil)
	})
}

// --- Helpers ---

func toCustomerResponse(c model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		CPF:          c.CPF,
		Phone:        c.Phone,
		Email:        c.Email,
		CEP:          c.CEP,
		Street:       c.Street,
		Number:       c.Number,
		Neighborhood: c.Neighborhood,
		City:         c.City,
		State:        c.State,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
	}
}
