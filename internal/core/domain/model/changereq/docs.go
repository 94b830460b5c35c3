// Package changereq provides the reservation change side of the domain:
// change requests with their quoted money movement and a settlement state
// machine that keeps at most one active request per order.
package changereq
