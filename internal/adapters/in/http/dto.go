// Package http provides the inbound REST adapters for both services. The
// delivery-tracking server exposes the delivery lifecycle; the courier
// server exposes fleet registration and payout estimation. Handlers bind
// JSON, build validated commands and queries, and map domain errors to
// status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrorResponse is the JSON error body returned by both servers.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ContactPointRequest carries one side of a delivery in request bodies.
type ContactPointRequest struct {
	ZipCode    string `json:"zipCode"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

// DeliveryDetailsRequest is the body for drafting a delivery and for
// replacing a draft's details.
type DeliveryDetailsRequest struct {
	Sender                      ContactPointRequest `json:"sender"`
	Recipient                   ContactPointRequest `json:"recipient"`
	DistanceFee                 decimal.Decimal     `json:"distanceFee"`
	CourierPayout               decimal.Decimal     `json:"courierPayout"`
	ExpectedDeliveryTimeMinutes int64               `json:"expectedDeliveryTimeMinutes"`
}

// toDomain builds the validated details value object from the request body.
func (r DeliveryDetailsRequest) toDomain() (delivery.PreparationDetails, error) {
	sender, err := delivery.NewContactPoint(
		r.Sender.ZipCode, r.Sender.Street, r.Sender.Number,
		r.Sender.Complement, r.Sender.Name, r.Sender.Phone,
	)
	if err != nil {
		return delivery.PreparationDetails{}, errs.NewValueIsInvalidErrorWithCause("sender", err)
	}

	recipient, err := delivery.NewContactPoint(
		r.Recipient.ZipCode, r.Recipient.Street, r.Recipient.Number,
		r.Recipient.Complement, r.Recipient.Name, r.Recipient.Phone,
	)
	if err != nil {
		return delivery.PreparationDetails{}, errs.NewValueIsInvalidErrorWithCause("recipient", err)
	}

	return delivery.NewPreparationDetails(
		sender,
		recipient,
		r.DistanceFee,
		r.CourierPayout,
		time.Duration(r.ExpectedDeliveryTimeMinutes)*time.Minute,
	)
}

// PickUpRequest is the body for the pickup operation.
type PickUpRequest struct {
	CourierID string `json:"courierId"`
}

// DraftDeliveryResponse returns the allocated delivery id.
type DraftDeliveryResponse struct {
	ID string `json:"id"`
}

// ContactPointResponse mirrors ContactPointRequest in response bodies.
type ContactPointResponse struct {
	ZipCode    string `json:"zipCode"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
}

// DeliveryDetailsResponse carries the preparation details in responses.
type DeliveryDetailsResponse struct {
	Sender                      ContactPointResponse `json:"sender"`
	Recipient                   ContactPointResponse `json:"recipient"`
	DistanceFee                 decimal.Decimal      `json:"distanceFee"`
	CourierPayout               decimal.Decimal      `json:"courierPayout"`
	TotalCost                   decimal.Decimal      `json:"totalCost"`
	ExpectedDeliveryTimeMinutes int64                `json:"expectedDeliveryTimeMinutes"`
}

// DeliveryResponse is the full delivery read model. CourierID is null until
// a courier picks the delivery up; during the assignment window that null is
// the designed answer, not an error.
type DeliveryResponse struct {
	ID          string                   `json:"id"`
	Status      string                   `json:"status"`
	Details     *DeliveryDetailsResponse `json:"details,omitempty"`
	CourierID   *string                  `json:"courierId"`
	PlacedAt    *time.Time               `json:"placedAt,omitempty"`
	PickedUpAt  *time.Time               `json:"pickedUpAt,omitempty"`
	FulfilledAt *time.Time               `json:"fulfilledAt,omitempty"`
}

// DeliverySummaryResponse is the list read model for active deliveries.
type DeliverySummaryResponse struct {
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	CourierID *string    `json:"courierId"`
	PlacedAt  *time.Time `json:"placedAt,omitempty"`
}

// RegisterCourierRequest is the body for courier registration.
type RegisterCourierRequest struct {
	Name string `json:"name"`
}

// UpdateCourierRequest is the body for updating a courier's profile.
type UpdateCourierRequest struct {
	Name string `json:"name"`
}

// RegisterCourierResponse returns the allocated courier id.
type RegisterCourierResponse struct {
	ID string `json:"id"`
}

// CourierResponse is the courier read model.
type CourierResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	PendingCount    int       `json:"pendingCount"`
	LastFulfilledAt time.Time `json:"lastFulfilledAt"`
}

// CourierDetailResponse is the single-courier read model, including the ids
// of the deliveries currently held.
type CourierDetailResponse struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	PendingDeliveries []string  `json:"pendingDeliveries"`
	LastFulfilledAt   time.Time `json:"lastFulfilledAt"`
}

// DeliveryCourierResponse exposes the courier currently carrying a delivery.
// CourierID is null while the delivery waits for assignment; that is a
// designed state, not an error.
type DeliveryCourierResponse struct {
	CourierID *string `json:"courierId"`
}

// PayoutCalculationRequest is the body for payout estimation.
type PayoutCalculationRequest struct {
	DistanceInKm decimal.Decimal `json:"distanceInKm"`
}

// PayoutCalculationResponse carries the estimated payout fee.
type PayoutCalculationResponse struct {
	DistanceInKm decimal.Decimal `json:"distanceInKm"`
	PayoutFee    decimal.Decimal `json:"payoutFee"`
}

func deliveryResponseFromQuery(q queries.GetDeliveryQueryResponse) DeliveryResponse {
	resp := DeliveryResponse{
		ID:          q.ID.String(),
		Status:      q.Status,
		PlacedAt:    q.PlacedAt,
		PickedUpAt:  q.PickedUpAt,
		FulfilledAt: q.FulfilledAt,
	}

	if q.CourierID != nil {
		courierID := q.CourierID.String()
		resp.CourierID = &courierID
	}

	if q.Details != nil {
		resp.Details = &DeliveryDetailsResponse{
			Sender:                      ContactPointResponse(q.Details.Sender),
			Recipient:                   ContactPointResponse(q.Details.Recipient),
			DistanceFee:                 q.Details.DistanceFee,
			CourierPayout:               q.Details.CourierPayout,
			TotalCost:                   q.Details.TotalCost,
			ExpectedDeliveryTimeMinutes: int64(q.Details.ExpectedDeliveryTime / time.Minute),
		}
	}

	return resp
}

// statusFor maps domain errors to HTTP status codes. Out-of-order lifecycle
// calls are conflicts, not client formatting errors.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState), errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid), errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrTransientEstimation):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
