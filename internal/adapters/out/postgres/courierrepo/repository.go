package courierrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements CourierRepository using GORM.
type GormCourierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB, tracker aggregateTracker) *GormCourierRepository {
	return &GormCourierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing courier to the database, guarded by the record
// version. The UPDATE is conditional on the version the aggregate was loaded
// with; zero affected rows means another writer got there first and the call
// fails with ConcurrentModificationError without touching the workload.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).
		Model(&CourierDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"name":              dto.Name,
			"last_fulfilled_at": dto.LastFulfilledAt,
			"version":           dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("courier", aggregate.ID().String())
	}

	// Reconcile the pending workload with the aggregate's current state.
	// The delivery_id primary key rejects a delivery already held by
	// another courier.
	if err := r.db.WithContext(ctx).
		Where("courier_id = ?", dto.ID).
		Delete(&PendingDeliveryDTO{}).Error; err != nil {
		return err
	}

	if len(dto.PendingDeliveries) > 0 {
		if err := r.db.WithContext(ctx).Create(&dto.PendingDeliveries).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).
		Preload("PendingDeliveries").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAll retrieves every registered courier.
func (r *GormCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).
		Preload("PendingDeliveries").
		Order("name ASC, id ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetLeastRecentlyFulfilled retrieves up to limit couriers ordered by
// fairness clock ascending, ties broken by id ascending.
func (r *GormCourierRepository) GetLeastRecentlyFulfilled(ctx context.Context, limit int) ([]*courier.Courier, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).
		Preload("PendingDeliveries").
		Order("last_fulfilled_at ASC, id ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindByPendingDelivery retrieves the courier currently holding the given
// delivery in its pending workload.
func (r *GormCourierRepository) FindByPendingDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) (*courier.Courier, error) {
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	var row PendingDeliveryDTO
	if err := r.db.WithContext(ctx).
		First(&row, "delivery_id = ?", deliveryID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", deliveryID.String())
		}
		return nil, err
	}

	courierID, err := kernel.UUIDFromBytes(row.CourierID[:])
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, courierID)
}

func toDomainSlice(dtos []CourierDTO) ([]*courier.Courier, error) {
	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, aggregate)
	}

	return couriers, nil
}
