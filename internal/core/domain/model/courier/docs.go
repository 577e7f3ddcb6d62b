// Package courier contains the Courier aggregate for the courier-management
// bounded context.
//
// A Courier owns its workload (the set of delivery ids assigned to it and not
// yet fulfilled) and a fairness clock: the timestamp of its last fulfilled
// delivery, initialized to the registration time so freshly onboarded
// couriers rank first for assignment. The dispatcher orders the population by
// this clock; a courier that just finished a job sorts to the back of the
// queue.
//
// The cross-population invariant (a delivery id appears in at most one
// courier's workload) is enforced by the dispatcher together with the
// persistence layer's conditional writes; within a single courier, duplicate
// assignment is rejected and fulfilling an unheld delivery fails with
// AssignmentNotFoundError.
package courier
