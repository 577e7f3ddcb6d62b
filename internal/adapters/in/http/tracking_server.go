package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// TrackingServer handles the delivery-tracking REST API: drafting, detail
// edits, lifecycle transitions, and delivery read models.
type TrackingServer struct {
	draftHandler    commands.DraftDeliveryCommandHandler
	editHandler     commands.EditDeliveryDetailsCommandHandler
	placeHandler    commands.PlaceDeliveryCommandHandler
	pickUpHandler   commands.PickUpDeliveryCommandHandler
	completeHandler commands.CompleteDeliveryCommandHandler

	getDeliveryHandler    queries.GetDeliveryQueryHandler
	getUncompletedHandler queries.GetUncompletedDeliveriesQueryHandler
}

// NewTrackingServer creates the delivery-tracking HTTP server.
func NewTrackingServer(
	draftHandler commands.DraftDeliveryCommandHandler,
	editHandler commands.EditDeliveryDetailsCommandHandler,
	placeHandler commands.PlaceDeliveryCommandHandler,
	pickUpHandler commands.PickUpDeliveryCommandHandler,
	completeHandler commands.CompleteDeliveryCommandHandler,
	getDeliveryHandler queries.GetDeliveryQueryHandler,
	getUncompletedHandler queries.GetUncompletedDeliveriesQueryHandler,
) *TrackingServer {
	return &TrackingServer{
		draftHandler:          draftHandler,
		editHandler:           editHandler,
		placeHandler:          placeHandler,
		pickUpHandler:         pickUpHandler,
		completeHandler:       completeHandler,
		getDeliveryHandler:    getDeliveryHandler,
		getUncompletedHandler: getUncompletedHandler,
	}
}

// RegisterRoutes binds the delivery-tracking routes on the echo instance.
func (s *TrackingServer) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1/deliveries")
	api.POST("", s.DraftDelivery)
	api.GET("", s.GetUncompletedDeliveries)
	api.GET("/:deliveryId", s.GetDelivery)
	api.GET("/:deliveryId/courier", s.GetDeliveryCourier)
	api.PUT("/:deliveryId", s.EditDeliveryDetails)
	api.POST("/:deliveryId/placement", s.PlaceDelivery)
	api.POST("/:deliveryId/pickups", s.PickUpDelivery)
	api.POST("/:deliveryId/completion", s.CompleteDelivery)
}

// DraftDelivery handles POST /api/v1/deliveries.
func (s *TrackingServer) DraftDelivery(ctx echo.Context) error {
	var body DeliveryDetailsRequest
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	details, err := body.toDomain()
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewDraftDeliveryCommand(details)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	deliveryID, err := s.draftHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	return ctx.JSON(http.StatusCreated, DraftDeliveryResponse{ID: deliveryID.String()})
}

// EditDeliveryDetails handles PUT /api/v1/deliveries/:deliveryId.
func (s *TrackingServer) EditDeliveryDetails(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "deliveryId")
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	var body DeliveryDetailsRequest
	if err = ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	details, err := body.toDomain()
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewEditDeliveryDetailsCommand(deliveryID, details)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.editHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetDelivery handles GET /api/v1/deliveries/:deliveryId.
func (s *TrackingServer) GetDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "deliveryId")
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	return ctx.JSON(http.StatusOK, deliveryResponseFromQuery(resp))
}

// GetDeliveryCourier handles GET /api/v1/deliveries/:deliveryId/courier.
// Responds 200 with a null courierId while the delivery waits for assignment.
func (s *TrackingServer) GetDeliveryCourier(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "deliveryId")
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	query, err := queries.NewGetDeliveryQuery(deliveryID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.getDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	body := DeliveryCourierResponse{}
	if resp.CourierID != nil {
		courierID := resp.CourierID.String()
		body.CourierID = &courierID
	}

	return ctx.JSON(http.StatusOK, body)
}

// GetUncompletedDeliveries handles GET /api/v1/deliveries.
func (s *TrackingServer) GetUncompletedDeliveries(ctx echo.Context) error {
	deliveries, err := s.getUncompletedHandler.Handle(
		ctx.Request().Context(),
		queries.NewGetUncompletedDeliveriesQuery(),
	)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	response := make([]DeliverySummaryResponse, len(deliveries))
	for i, d := range deliveries {
		summary := DeliverySummaryResponse{
			ID:       d.ID.String(),
			Status:   d.Status,
			PlacedAt: d.PlacedAt,
		}
		if d.CourierID != nil {
			courierID := d.CourierID.String()
			summary.CourierID = &courierID
		}
		response[i] = summary
	}

	return ctx.JSON(http.StatusOK, response)
}

// PlaceDelivery handles POST /api/v1/deliveries/:deliveryId/placement.
func (s *TrackingServer) PlaceDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "deliveryId")
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewPlaceDeliveryCommand(deliveryID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.placeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PickUpDelivery handles POST /api/v1/deliveries/:deliveryId/pickups.
func (s *TrackingServer) PickUpDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "deliveryId")
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	var body PickUpRequest
	if err = ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(body.CourierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid courierId")
	}

	cmd, err := commands.NewPickUpDeliveryCommand(deliveryID, courierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.pickUpHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:deliveryId/completion.
func (s *TrackingServer) CompleteDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "deliveryId")
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	cmd, err := commands.NewCompleteDeliveryCommand(deliveryID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.completeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

func pathUUID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, ErrorResponse{Code: code, Message: message})
}
