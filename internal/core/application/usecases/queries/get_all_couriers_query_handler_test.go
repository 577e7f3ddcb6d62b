package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository tracker dependency; query
// tests only need repositories for seeding, not change tracking.
type mockAggregateTracker struct {
	mock.Mock
}

func (m *mockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

func newSeedingTracker() *mockAggregateTracker {
	tracker := new(mockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	return tracker
}

type GetAllCouriersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetAllCouriersQueryHandler
}

func (suite *GetAllCouriersQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&courierrepo.CourierDTO{}, &courierrepo.PendingDeliveryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetAllCouriersQueryHandler(db)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetAllCouriersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE pending_deliveries, couriers").Error
	suite.Require().NoError(err)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) seedCourier(
	name string,
	clock time.Time,
	pending ...kernel.UUID,
) *courier.Courier {
	aggregate, err := courier.RestoreCourier(kernel.NewUUID(), name, pending, clock, 0)
	suite.Require().NoError(err)

	repo := courierrepo.NewGormCourierRepository(suite.db, newSeedingTracker())
	suite.Require().NoError(repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetAllCouriersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_WithCouriers_ReturnsAllCouriersOrderedByName() {
	clock := time.Now().UTC().Truncate(time.Second)

	charlie := suite.seedCourier("Charlie", clock, kernel.NewUUID())
	alice := suite.seedCourier("Alice", clock.Add(-time.Hour))
	bob := suite.seedCourier("Bob", clock, kernel.NewUUID(), kernel.NewUUID())

	query := queries.NewGetAllCouriersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal("Alice", result[0].Name)
	suite.Equal(alice.ID(), result[0].ID)
	suite.Equal(0, result[0].PendingCount)
	suite.WithinDuration(alice.LastFulfilledAt(), result[0].LastFulfilledAt, time.Second)

	suite.Equal("Bob", result[1].Name)
	suite.Equal(bob.ID(), result[1].ID)
	suite.Equal(2, result[1].PendingCount)

	suite.Equal("Charlie", result[2].Name)
	suite.Equal(charlie.ID(), result[2].ID)
	suite.Equal(1, result[2].PendingCount)
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetAllCouriersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetAllCouriersQuery constructor")
}

func (suite *GetAllCouriersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	clock := time.Now().UTC()
	for range 50 {
		suite.seedCourier("Courier", clock)
	}

	query := queries.NewGetAllCouriersQuery()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetAllCouriersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetAllCouriersQueryHandlerTestSuite))
}
