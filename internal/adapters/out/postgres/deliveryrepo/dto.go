// Package deliveryrepo provides data transfer objects and mapping functions
// for delivery persistence. It implements the repository pattern for the
// delivery aggregate, handling conversion between domain entities and their
// database representation.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Preparation details live in an associated table so a bare
// draft needs no detail row.
type DeliveryDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Status      string      `gorm:"type:varchar(32);not null;index"`
	CourierID   *uuid.UUID  `gorm:"type:uuid;index"`
	PlacedAt    *time.Time  `gorm:"type:timestamptz"`
	PickedUpAt  *time.Time  `gorm:"type:timestamptz"`
	FulfilledAt *time.Time  `gorm:"type:timestamptz"`
	Details     *DetailsDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// ContactPointDTO represents the embedded contact data of one side of a
// delivery within the details table.
type ContactPointDTO struct {
	ZipCode    string `gorm:"type:varchar(16);not null"`
	Street     string `gorm:"type:varchar(255);not null"`
	Number     string `gorm:"type:varchar(32);not null"`
	Complement string `gorm:"type:varchar(255)"`
	Name       string `gorm:"type:varchar(255);not null"`
	Phone      string `gorm:"type:varchar(32);not null"`
}

// DetailsDTO represents the database structure for a delivery's preparation
// details. One row per prepared delivery, keyed by the delivery id.
type DetailsDTO struct {
	DeliveryID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Sender                  ContactPointDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Recipient               ContactPointDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	DistanceFee             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CourierPayout           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExpectedDeliverySeconds int64           `gorm:"not null"`
}

// TableName specifies the database table name for preparation details.
func (DetailsDTO) TableName() string {
	return "delivery_preparation_details"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	deliveryID := aggregate.ID().Bytes()

	var courierID *uuid.UUID
	if aggregate.CourierID() != nil {
		raw := aggregate.CourierID().Bytes()
		courierID = &raw
	}

	dto := DeliveryDTO{
		ID:          deliveryID,
		Status:      aggregate.Status().String(),
		CourierID:   courierID,
		PlacedAt:    aggregate.PlacedAt(),
		PickedUpAt:  aggregate.PickedUpAt(),
		FulfilledAt: aggregate.FulfilledAt(),
	}

	if details := aggregate.PreparationDetails(); details != nil {
		dto.Details = &DetailsDTO{
			DeliveryID:              deliveryID,
			Sender:                  contactPointFromDomain(details.Sender()),
			Recipient:               contactPointFromDomain(details.Recipient()),
			DistanceFee:             details.DistanceFee(),
			CourierPayout:           details.CourierPayout(),
			ExpectedDeliverySeconds: int64(details.ExpectedDeliveryTime() / time.Second),
		}
	}

	return dto
}

func contactPointFromDomain(cp delivery.ContactPoint) ContactPointDTO {
	return ContactPointDTO{
		ZipCode:    cp.ZipCode(),
		Street:     cp.Street(),
		Number:     cp.Number(),
		Complement: cp.Complement(),
		Name:       cp.Name(),
		Phone:      cp.Phone(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate using RestoreDelivery, so cross-field
// consistency of persisted data is re-validated on every load.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		restored, cErr := kernel.UUIDFromBytes(dto.CourierID[:])
		if cErr != nil {
			return nil, cErr
		}
		courierID = &restored
	}

	var details *delivery.PreparationDetails
	if dto.Details != nil {
		restored, dErr := detailsToDomain(*dto.Details)
		if dErr != nil {
			return nil, dErr
		}
		details = &restored
	}

	return delivery.RestoreDelivery(
		id,
		status,
		details,
		courierID,
		dto.PlacedAt,
		dto.PickedUpAt,
		dto.FulfilledAt,
	)
}

func detailsToDomain(dto DetailsDTO) (delivery.PreparationDetails, error) {
	sender, err := contactPointToDomain(dto.Sender)
	if err != nil {
		return delivery.PreparationDetails{}, err
	}

	recipient, err := contactPointToDomain(dto.Recipient)
	if err != nil {
		return delivery.PreparationDetails{}, err
	}

	return delivery.NewPreparationDetails(
		sender,
		recipient,
		dto.DistanceFee,
		dto.CourierPayout,
		time.Duration(dto.ExpectedDeliverySeconds)*time.Second,
	)
}

func contactPointToDomain(dto ContactPointDTO) (delivery.ContactPoint, error) {
	return delivery.NewContactPoint(
		dto.ZipCode,
		dto.Street,
		dto.Number,
		dto.Complement,
		dto.Name,
		dto.Phone,
	)
}
