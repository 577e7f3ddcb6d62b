// Package services contains stateless domain services of the
// courier-management context: the CourierDispatcher, which selects the next
// courier for an incoming delivery using the fairness clock, and the
// PayoutEstimator, which computes courier payout from a distance with an
// explicit, configurable fault-injection strategy for exercising the caller's
// retry and timeout policy.
package services
