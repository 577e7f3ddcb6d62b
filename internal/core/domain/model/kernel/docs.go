// Package kernel contains shared value objects used across the domain model.
// These are the building blocks that aggregates in both bounded contexts
// (delivery tracking and courier management) rely on: identifier types and
// construction-validation helpers.
package kernel
