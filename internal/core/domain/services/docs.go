// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the dinner reservation
// system. It implements complex business workflows that don't naturally
// belong to a single aggregate root.
//
// The package includes:
//   - CapacityLedger: per-window inventory accounting with prepare/commit
//     reservation handling and the maintenance mutation surface
//   - AssignmentPlanner: courier run planning with travel estimates, shift
//     bounds, load balancing and overlap checks
//   - QuoteEngine: pricing and settling reservation change requests with
//     payment-first approval
//   - PricingService: catalog-based order totals and the loyalty discount
//   - TravelEstimator: deterministic one-way travel time heuristic
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services
