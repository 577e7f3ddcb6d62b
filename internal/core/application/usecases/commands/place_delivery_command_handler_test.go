package commands_test

import (
	"context"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlaceDeliveryRepository struct{ mock.Mock }

func (m *MockPlaceDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockPlaceDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockPlaceDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockPlaceDeliveryRepository) GetAllUncompleted(ctx context.Context) ([]*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

type MockPlaceUoW struct{ mock.Mock }

func (m *MockPlaceUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlaceUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlaceUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockPlaceUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

type MockPlaceUoWFactory struct{ mock.Mock }

func (m *MockPlaceUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

func draftedDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()

	aggregate := delivery.New()
	require.NoError(t, aggregate.EditPreparationDetails(draftDetails(t)))
	return aggregate
}

func TestPlaceDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	aggregate := draftedDelivery(t)
	cmd, err := commands.NewPlaceDeliveryCommand(aggregate.ID())
	require.NoError(t, err)

	repo := new(MockPlaceDeliveryRepository)
	uow := new(MockPlaceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*delivery.Delivery")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.WaitingForCourier, aggregate.Status())
	require.Len(t, aggregate.DomainEvents(), 1)
	assert.Equal(t, delivery.DeliveryPlacedEventName, aggregate.DomainEvents()[0].EventName())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceDeliveryCommandHandler_Handle_AlreadyPlaced(t *testing.T) {
	ctx := t.Context()

	aggregate := draftedDelivery(t)
	require.NoError(t, aggregate.Place())
	aggregate.ClearDomainEvents()

	cmd, err := commands.NewPlaceDeliveryCommand(aggregate.ID())
	require.NoError(t, err)

	repo := new(MockPlaceDeliveryRepository)
	uow := new(MockPlaceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Empty(t, aggregate.DomainEvents())
	repo.AssertNotCalled(t, "Update", ctx, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestPlaceDeliveryCommandHandler_Handle_DeliveryNotFound(t *testing.T) {
	ctx := t.Context()

	deliveryID := kernel.NewUUID()
	cmd, err := commands.NewPlaceDeliveryCommand(deliveryID)
	require.NoError(t, err)

	repo := new(MockPlaceDeliveryRepository)
	uow := new(MockPlaceUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DeliveryRepository").Return(repo).Once(),
		repo.On("Get", ctx, deliveryID).
			Return(nil, errs.NewObjectNotFoundError("delivery", deliveryID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceDeliveryCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestPlaceDeliveryCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceDeliveryCommand{} // not constructed properly

	factory := new(MockPlaceUoWFactory)
	handler := commands.NewPlaceDeliveryCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrPlaceDeliveryCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
