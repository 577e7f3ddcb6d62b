package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUncompletedDeliveriesQueryHandler retrieves deliveries pending
// fulfillment from the database. Fulfilled deliveries are excluded; they
// remain in storage only as an audit trail.
type GetUncompletedDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetUncompletedDeliveriesQueryHandler creates a handler for active delivery queries.
// Requires a GORM database connection for query execution.
func NewGetUncompletedDeliveriesQueryHandler(db *gorm.DB) GetUncompletedDeliveriesQueryHandler {
	return GetUncompletedDeliveriesQueryHandler{db: db}
}

// Handle executes the query to retrieve all unfulfilled deliveries.
// Results are ordered by placement time ascending with drafts last.
func (h GetUncompletedDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedDeliveriesQuery,
) ([]GetUncompletedDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetUncompletedDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			courier_id,
			placed_at
		FROM deliveries
		WHERE status != ?
		ORDER BY placed_at ASC NULLS LAST, id
	`, delivery.Fulfilled.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUncompletedDeliveriesQueryResponse
		var id uuid.UUID
		var courierID *uuid.UUID
		var placedAt *time.Time

		err = rows.Scan(
			&id,
			&resp.Status,
			&courierID,
			&placedAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID

		if courierID != nil {
			restored, cErr := kernel.UUIDFromBytes(courierID[:])
			if cErr != nil {
				return nil, cErr
			}
			resp.CourierID = &restored
		}
		resp.PlacedAt = placedAt

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
