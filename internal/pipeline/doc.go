// Package pipeline fans simulation tasks out over a bounded worker pool
// and collects results indexed by submission order.
//
// The only contract to implement is Invoker (RunOne).
// This keeps the dispatcher swappable and testable.
package pipeline
