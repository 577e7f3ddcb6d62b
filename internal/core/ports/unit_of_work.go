package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control, tracks aggregate changes, and publishes the domain
// events collected by tracked aggregates after a successful commit.
// Client code must explicitly manage the transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction and then publishes the domain
	// events collected by tracked aggregates. Returns an error if no
	// transaction is active or the commit fails; a publish failure after a
	// successful commit is also returned, but the committed state stands.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and discards any
	// collected domain events.
	Rollback(ctx context.Context) error

	// DeliveryRepository returns a DeliveryRepository bound to the current
	// transaction started by Begin().
	DeliveryRepository() DeliveryRepository

	// CourierRepository returns a CourierRepository bound to the current
	// transaction started by Begin().
	CourierRepository() CourierRepository
}
