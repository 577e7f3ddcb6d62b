// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. It implements the repository pattern for the
// courier aggregate, including the optimistic-concurrency version guard the
// event consumers rely on.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. Version is the optimistic-concurrency guard: every successful
// update increments it, and a conditional update on a stale version writes
// nothing.
type CourierDTO struct {
	ID                uuid.UUID            `gorm:"type:uuid;primaryKey"`
	Name              string               `gorm:"type:varchar(255);not null"`
	LastFulfilledAt   time.Time            `gorm:"type:timestamptz;not null;index"`
	Version           int                  `gorm:"type:int;not null"`
	PendingDeliveries []PendingDeliveryDTO `gorm:"foreignKey:CourierID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// PendingDeliveryDTO represents one delivery in a courier's pending
// workload. DeliveryID is the primary key, so the database enforces that a
// delivery is held by at most one courier at a time.
type PendingDeliveryDTO struct {
	DeliveryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CourierID  uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName specifies the database table name for pending workload entries.
func (PendingDeliveryDTO) TableName() string {
	return "pending_deliveries"
}

// fromDomain converts a courier domain aggregate to its database representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	courierID := aggregate.ID().Bytes()

	pending := make([]PendingDeliveryDTO, 0, len(aggregate.PendingDeliveries()))
	for _, deliveryID := range aggregate.PendingDeliveries() {
		pending = append(pending, PendingDeliveryDTO{
			DeliveryID: deliveryID.Bytes(),
			CourierID:  courierID,
		})
	}

	return CourierDTO{
		ID:                courierID,
		Name:              aggregate.Name(),
		LastFulfilledAt:   aggregate.LastFulfilledAt(),
		Version:           aggregate.Version(),
		PendingDeliveries: pending,
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pending := make([]kernel.UUID, 0, len(dto.PendingDeliveries))
	for _, row := range dto.PendingDeliveries {
		deliveryID, rowErr := kernel.UUIDFromBytes(row.DeliveryID[:])
		if rowErr != nil {
			return nil, rowErr
		}
		pending = append(pending, deliveryID)
	}

	return courier.RestoreCourier(id, dto.Name, pending, dto.LastFulfilledAt, dto.Version)
}
