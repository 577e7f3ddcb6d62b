package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetUncompletedDeliveriesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetUncompletedDeliveriesQueryHandler
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&deliveryrepo.DeliveryDTO{}, &deliveryrepo.DetailsDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetUncompletedDeliveriesQueryHandler(db)
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE delivery_preparation_details, deliveries").Error
	suite.Require().NoError(err)
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) preparedDelivery() *delivery.Delivery {
	sender, err := delivery.NewContactPoint(
		"01001-000", "Av. Paulista", "1000", "", "Ana Souza", "+55 11 91234-5678",
	)
	suite.Require().NoError(err)

	recipient, err := delivery.NewContactPoint(
		"04538-133", "R. Funchal", "418", "apt 12", "Bruno Lima", "+55 11 99876-5432",
	)
	suite.Require().NoError(err)

	details, err := delivery.NewPreparationDetails(
		sender,
		recipient,
		decimal.NewFromFloat(15.00),
		decimal.NewFromFloat(5.00),
		45*time.Minute,
	)
	suite.Require().NoError(err)

	aggregate := delivery.New()
	suite.Require().NoError(aggregate.EditPreparationDetails(details))
	return aggregate
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) save(aggregate *delivery.Delivery) {
	aggregate.ClearDomainEvents()
	repo := deliveryrepo.NewGormDeliveryRepository(suite.db, newSeedingTracker())
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetUncompletedDeliveriesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) TestHandle_ExcludesFulfilledDeliveries() {
	active := suite.preparedDelivery()
	suite.Require().NoError(active.Place())
	suite.save(active)

	courierID := kernel.NewUUID()
	fulfilled := suite.preparedDelivery()
	suite.Require().NoError(fulfilled.Place())
	suite.Require().NoError(fulfilled.PickUp(courierID))
	suite.Require().NoError(fulfilled.Complete())
	suite.save(fulfilled)

	query := queries.NewGetUncompletedDeliveriesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(active.ID(), result[0].ID)
	suite.Equal(delivery.WaitingForCourier.String(), result[0].Status)
	suite.Nil(result[0].CourierID)
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) TestHandle_OrdersByPlacementWithDraftsLast() {
	draft := suite.preparedDelivery()
	suite.save(draft)

	first := suite.preparedDelivery()
	suite.Require().NoError(first.Place())
	suite.save(first)

	time.Sleep(10 * time.Millisecond)

	second := suite.preparedDelivery()
	suite.Require().NoError(second.Place())
	suite.save(second)

	query := queries.NewGetUncompletedDeliveriesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal(first.ID(), result[0].ID)
	suite.Equal(second.ID(), result[1].ID)
	suite.Equal(draft.ID(), result[2].ID)
	suite.Equal(delivery.Draft.String(), result[2].Status)
	suite.Nil(result[2].PlacedAt)
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) TestHandle_ExposesAssignedCourier() {
	courierID := kernel.NewUUID()

	aggregate := suite.preparedDelivery()
	suite.Require().NoError(aggregate.Place())
	suite.Require().NoError(aggregate.PickUp(courierID))
	suite.save(aggregate)

	query := queries.NewGetUncompletedDeliveriesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(delivery.PickedUp.String(), result[0].Status)
	suite.Require().NotNil(result[0].CourierID)
	suite.True(courierID.IsEqual(*result[0].CourierID))
	suite.Require().NotNil(result[0].PlacedAt)
}

func (suite *GetUncompletedDeliveriesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetUncompletedDeliveriesQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetUncompletedDeliveriesQuery constructor")
}

func TestGetUncompletedDeliveriesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetUncompletedDeliveriesQueryHandlerTestSuite))
}
