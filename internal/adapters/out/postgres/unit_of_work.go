// Package postgres provides the GORM-based implementation of the Unit of
// Work pattern. The unit of work owns the database transaction, hands out
// repositories bound to it, and tracks every aggregate the repositories
// touch. After a successful commit it drains the domain events collected by
// the tracked aggregates and hands them to the event publisher, so events
// never describe state that was rolled back.
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/adapters/out/postgres/deliveryrepo"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventCarrier is implemented by aggregates that collect domain events.
type eventCarrier interface {
	DomainEvents() []delivery.DomainEvent
	ClearDomainEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances using a shared GORM
// database connection. Each business operation gets a fresh instance with
// its own transaction state.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The publisher may be nil for services that never raise domain
// events (the courier side consumes events, it does not produce them).
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher}
}

// Create produces a new UnitOfWork ready for a business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks aggregate
// changes for post-commit event publishing.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Repeated calls on the same instance are safe and do not nest transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction and then publishes the domain
// events collected by tracked aggregates. A publish failure after a
// successful commit is returned to the caller, but the committed state
// stands; the broker side must tolerate the resulting gap or redelivery.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if err := uow.tx.Commit().Error; err != nil {
		uow.tx = nil
		return err
	}
	uow.tx = nil

	return uow.publishTrackedEvents(ctx)
}

// Rollback discards all changes made within the current transaction along
// with any domain events collected by tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// DeliveryRepository returns a delivery repository bound to the current
// transaction if one is active, or to the main connection otherwise.
func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return deliveryrepo.NewGormDeliveryRepository(db, uow)
}

// CourierRepository returns a courier repository bound to the current
// transaction if one is active, or to the main connection otherwise.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return courierrepo.NewGormCourierRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit
// of work. Called by the repositories on Add and Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) publishTrackedEvents(ctx context.Context) error {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = uow.trackedAggregates[:0]

	if uow.publisher == nil {
		return nil
	}

	for _, t := range tracked {
		carrier, ok := t.Aggregate.(eventCarrier)
		if !ok {
			continue
		}

		events := carrier.DomainEvents()
		if len(events) == 0 {
			continue
		}

		if err := uow.publisher.Publish(ctx, events...); err != nil {
			return err
		}
		carrier.ClearDomainEvents()
	}

	return nil
}
