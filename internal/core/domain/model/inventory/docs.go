// Package inventory provides the capacity side of the domain: per-item stock
// rows with daily window capacity, and the reservations orders hold against
// those windows.
//
// Capacity is windowed per delivery day. A reservation counts against its
// window until it is consumed by the kitchen, released by a cancellation, or
// purged after its expiry.
package inventory
