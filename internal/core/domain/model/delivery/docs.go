// Package delivery contains the Delivery aggregate and its supporting value
// objects for the delivery-tracking bounded context.
//
// A Delivery owns its lifecycle state machine: it is drafted, prepared with
// sender/recipient details, placed for courier assignment, picked up by a
// courier, and finally fulfilled. The aggregate enforces that the status only
// ever advances through Draft -> WaitingForCourier -> PickedUp -> Fulfilled,
// never skipping and never reversing, and that a failed transition leaves the
// aggregate exactly as it was before the call.
//
// State transitions raise domain events (DeliveryPlacedEvent,
// DeliveryPickedUpEvent, DeliveryFulfilledEvent) which are collected on the
// aggregate and drained by the unit of work after a successful commit, to be
// translated into integration events for the courier-management service.
package delivery
