package repository

import (
	"context"

	"github.com/eujoaosantiago/velohub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Expense, error)
	ListByVehicle(ctx context.Context, storeID, vehicleID uuid.UUID) ([]model.Expense, error)
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *model.Expense) error {
	return GetDB(ctx, r.db).Create(expense).Error
}

func (r *expenseRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Expense, error) {
	var expense model.Expense
	if err := GetDB(ctx, r.db).First(&expense, "id = ? AND store_id = ?", id, storeID).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (r *expenseRepository) ListByVehicle(ctx context.Context, storeID, vehicleID uuid.UUID) ([]model.Expense, error) {
	var expenses []model.Expense
	err := GetDB(ctx, r.db).
		Where("store_id = ? AND vehicle_id = ?", storeID, vehicleID).
		Order("expense_date asc, created_at asc").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *expenseRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&model.Expense{}).Error
}
