package http

import (
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CourierServer handles the courier REST API: fleet registration, fleet
// listing, and payout estimation.
type CourierServer struct {
	registerHandler    commands.RegisterCourierCommandHandler
	updateHandler      commands.UpdateCourierCommandHandler
	getCouriersHandler queries.GetAllCouriersQueryHandler
	getCourierHandler  queries.GetCourierQueryHandler
	payoutHandler      queries.CalculatePayoutQueryHandler
}

// NewCourierServer creates the courier HTTP server.
func NewCourierServer(
	registerHandler commands.RegisterCourierCommandHandler,
	updateHandler commands.UpdateCourierCommandHandler,
	getCouriersHandler queries.GetAllCouriersQueryHandler,
	getCourierHandler queries.GetCourierQueryHandler,
	payoutHandler queries.CalculatePayoutQueryHandler,
) *CourierServer {
	return &CourierServer{
		registerHandler:    registerHandler,
		updateHandler:      updateHandler,
		getCouriersHandler: getCouriersHandler,
		getCourierHandler:  getCourierHandler,
		payoutHandler:      payoutHandler,
	}
}

// RegisterRoutes binds the courier routes on the echo instance.
func (s *CourierServer) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1/couriers")
	api.POST("", s.RegisterCourier)
	api.GET("", s.GetAllCouriers)
	api.GET("/:courierId", s.GetCourier)
	api.PUT("/:courierId", s.UpdateCourier)
	api.POST("/payout-calculation", s.CalculatePayout)
}

// RegisterCourier handles POST /api/v1/couriers.
func (s *CourierServer) RegisterCourier(ctx echo.Context) error {
	var body RegisterCourierRequest
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	courierID := kernel.NewUUID()

	cmd, err := commands.NewRegisterCourierCommand(courierID, body.Name)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.registerHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	return ctx.JSON(http.StatusCreated, RegisterCourierResponse{ID: courierID.String()})
}

// GetAllCouriers handles GET /api/v1/couriers.
func (s *CourierServer) GetAllCouriers(ctx echo.Context) error {
	couriers, err := s.getCouriersHandler.Handle(
		ctx.Request().Context(),
		queries.NewGetAllCouriersQuery(),
	)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	response := make([]CourierResponse, len(couriers))
	for i, c := range couriers {
		response[i] = CourierResponse{
			ID:              c.ID.String(),
			Name:            c.Name,
			PendingCount:    c.PendingCount,
			LastFulfilledAt: c.LastFulfilledAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateCourier handles PUT /api/v1/couriers/:courierId.
func (s *CourierServer) UpdateCourier(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	var body UpdateCourierRequest
	if err = ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	cmd, err := commands.NewUpdateCourierCommand(courierID, body.Name)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	if err = s.updateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCourier handles GET /api/v1/couriers/:courierId.
func (s *CourierServer) GetCourier(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	query, err := queries.NewGetCourierQuery(courierID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.getCourierHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	pending := make([]string, len(resp.PendingDeliveries))
	for i, id := range resp.PendingDeliveries {
		pending[i] = id.String()
	}

	return ctx.JSON(http.StatusOK, CourierDetailResponse{
		ID:                resp.ID.String(),
		Name:              resp.Name,
		PendingDeliveries: pending,
		LastFulfilledAt:   resp.LastFulfilledAt,
	})
}

// CalculatePayout handles POST /api/v1/couriers/payout-calculation.
func (s *CourierServer) CalculatePayout(ctx echo.Context) error {
	var body PayoutCalculationRequest
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "invalid request body")
	}

	query, err := queries.NewCalculatePayoutQuery(body.DistanceInKm)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, err.Error())
	}

	resp, err := s.payoutHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, statusFor(err), err.Error())
	}

	return ctx.JSON(http.StatusOK, PayoutCalculationResponse{
		DistanceInKm: resp.DistanceInKm,
		PayoutFee:    resp.PayoutFee,
	})
}
