package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func registeredCourier(t *testing.T, name string) *courier.Courier {
	t.Helper()

	c, err := courier.RestoreCourier(
		kernel.NewUUID(), name, nil, time.Now().UTC(), 1,
	)
	require.NoError(t, err)
	return c
}

func TestUpdateCourierCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := registeredCourier(t, "John Courier")

	cmd, err := commands.NewUpdateCourierCommand(aggregate.ID(), "Johnny Courier")
	require.NoError(t, err)

	repo := new(MockAssignCourierRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "Johnny Courier", aggregate.Name())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestUpdateCourierCommandHandler_Handle_CourierNotFound(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewUpdateCourierCommand(courierID, "Johnny Courier")
	require.NoError(t, err)

	repo := new(MockAssignCourierRepository)
	uow := new(MockAssignUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Get", ctx, courierID).
			Return(nil, errs.NewObjectNotFoundError("courier", courierID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockAssignUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewUpdateCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestUpdateCourierCommandHandler_Handle_RetriesVersionConflict(t *testing.T) {
	ctx := t.Context()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewUpdateCourierCommand(courierID, "Johnny Courier")
	require.NoError(t, err)

	conflict := errs.NewConcurrentModificationError("courier", courierID)

	repo := new(MockAssignCourierRepository)
	uow := new(MockAssignUoW)
	factory := new(MockAssignUoWFactory)

	factory.On("Create").Return(uow).Twice()
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("CourierRepository").Return(repo).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()
	// A fresh aggregate per attempt, as a reload would produce.
	repo.On("Get", ctx, courierID).Return(registeredCourier(t, "John Courier"), nil).Once()
	repo.On("Get", ctx, courierID).Return(registeredCourier(t, "John Courier"), nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(conflict).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*courier.Courier")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	handler := commands.NewUpdateCourierCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestNewUpdateCourierCommand_EmptyName(t *testing.T) {
	_, err := commands.NewUpdateCourierCommand(kernel.NewUUID(), "")

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrCourierNameIsRequired)
}

func TestUpdateCourierCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.UpdateCourierCommand{} // not constructed properly

	factory := new(MockAssignUoWFactory)
	handler := commands.NewUpdateCourierCommandHandler(factory)
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrUpdateCourierCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
