package repository

import (
	"context"

	"github.com/eujoaosantiago/velohub/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VehicleFilter narrows listing queries. Zero values are no-ops.
type VehicleFilter struct {
	Status string
	Brand  string
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Vehicle, error)
	List(ctx context.Context, storeID uuid.UUID, filter VehicleFilter, page, limit int) ([]model.Vehicle, int64, error)
	ListAll(ctx context.Context, storeID uuid.UUID) ([]model.Vehicle, error)
	Update(ctx context.Context, vehicle *model.Vehicle) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}

type vehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Create(vehicle).Error
}

// FindByID always preloads the expense ledger. Every financial figure
// derived from a vehicle needs it.
func (r *vehicleRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := GetDB(ctx, r.db).
		Preload("Expenses").
		Preload("Buyer").
		First(&vehicle, "id = ? AND store_id = ?", id, storeID).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, storeID uuid.UUID, filter VehicleFilter, page, limit int) ([]model.Vehicle, int64, error) {
	var vehicles []model.Vehicle
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Vehicle{}).Where("store_id = ?", storeID)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Brand != "" {
		db = db.Where("brand = ?", filter.Brand)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Expenses").Order("created_at desc").Offset(offset).Limit(limit).Find(&vehicles).Error; err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

// ListAll loads the full store inventory with expenses, the snapshot the
// reporting rollups operate on.
func (r *vehicleRepository) ListAll(ctx context.Context, storeID uuid.UUID) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := GetDB(ctx, r.db).
		Preload("Expenses").
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) error {
	return GetDB(ctx, r.db).Save(vehicle).Error
}

func (r *vehicleRepository) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	return GetDB(ctx, r.db).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&model.Vehicle{}).Error
}
