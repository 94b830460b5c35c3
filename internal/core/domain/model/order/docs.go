// Package order provides domain entities and business logic for dinner
// reservation management. It implements the Order aggregate root with
// lifecycle management, state transitions and change policy.
//
// The package includes:
//   - Order: The aggregate root that manages reservation details and lifecycle
//   - Status: A state machine for the kitchen workflow (pending through delivered)
//   - ApprovalStatus: A state machine for the admin review track
//
// Key business rules:
//   - Orders must reference a customer, dinner type, serving style, delivery
//     time and address
//   - Status transitions follow an explicit table; delivered and cancelled
//     are final
//   - In-place modification requires at least three hours before delivery
//   - Reservation changes close one day before the reservation date and incur
//     a flat fee inside the late-change window
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
