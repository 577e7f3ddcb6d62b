package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the application layer to the outbound adapters.
// The tracking service passes its Kafka publisher so committed domain events
// reach the broker; the courier service consumes events and passes nil.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
}

func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, publisher),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateDraftDeliveryCommandHandler() commands.DraftDeliveryCommandHandler {
	return commands.NewDraftDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateEditDeliveryDetailsCommandHandler() commands.EditDeliveryDetailsCommandHandler {
	return commands.NewEditDeliveryDetailsCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreatePlaceDeliveryCommandHandler() commands.PlaceDeliveryCommandHandler {
	return commands.NewPlaceDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreatePickUpDeliveryCommandHandler() commands.PickUpDeliveryCommandHandler {
	return commands.NewPickUpDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.deliveryUoWFactory())
}

func (c *CompositionRoot) CreateRegisterCourierCommandHandler() commands.RegisterCourierCommandHandler {
	return commands.NewRegisterCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierCommandHandler() commands.UpdateCourierCommandHandler {
	return commands.NewUpdateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateFulfillDeliveryCommandHandler() commands.FulfillDeliveryCommandHandler {
	return commands.NewFulfillDeliveryCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateGetDeliveryQueryHandler() queries.GetDeliveryQueryHandler {
	return queries.NewGetDeliveryQueryHandler(c.uowFactory.Create().DeliveryRepository())
}

func (c *CompositionRoot) CreateGetUncompletedDeliveriesQueryHandler() queries.GetUncompletedDeliveriesQueryHandler {
	return queries.NewGetUncompletedDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllCouriersQueryHandler() queries.GetAllCouriersQueryHandler {
	return queries.NewGetAllCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCourierQueryHandler() queries.GetCourierQueryHandler {
	return queries.NewGetCourierQueryHandler(c.uowFactory.Create().CourierRepository())
}

func (c *CompositionRoot) CreateCalculatePayoutQueryHandler() (queries.CalculatePayoutQueryHandler, error) {
	injector := services.NewRandomFaultInjector(
		services.DefaultFailureRate,
		services.DefaultMaxLatency,
	)

	estimator, err := services.NewPayoutEstimator(injector)
	if err != nil {
		return queries.CalculatePayoutQueryHandler{}, err
	}

	retrying, err := services.NewRetryingEstimator(
		estimator,
		services.DefaultRetryConfig(),
		c.logger,
	)
	if err != nil {
		return queries.CalculatePayoutQueryHandler{}, err
	}

	return queries.NewCalculatePayoutQueryHandler(retrying), nil
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

// MigrateTracking creates the delivery-side schema.
func MigrateTracking(db *gorm.DB) error {
	return db.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &deliveryrepo.DetailsDTO{})
}

// MigrateCourier creates the courier-side schema.
func MigrateCourier(db *gorm.DB) error {
	return db.AutoMigrate(&courierrepo.CourierDTO{}, &courierrepo.PendingDeliveryDTO{})
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}
