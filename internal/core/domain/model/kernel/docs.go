// Package kernel provides core domain primitives for the dinner service.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - Window: the calendar-day value object that scopes inventory capacity
//     accounting, resolved from a delivery time
//   - DaysUntil: whole-calendar-day arithmetic shared by the pre-order
//     exemption, the change-fee window and reservation expiry
//
// These primitives enforce domain invariants and validation rules, ensuring
// that domain objects are always in a valid state. They are designed to be
// immutable and thread-safe, making them suitable for concurrent use.
package kernel
