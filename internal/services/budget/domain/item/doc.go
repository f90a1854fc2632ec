// Package item provides the budget line-item model and its state machines.
//
// Two item kinds exist: products (purchasable goods owned by a room or a
// wishlist) and services (contracted material deliveries or labor owned by
// a project). Both carry a planning status that decides how they count
// toward budget totals, and a fulfillment status that tracks procurement
// once an item is approved.
//
// # Planning
//
// Planning transitions are validated by explicit per-kind transition tables.
// The planning status is the authority for budget classification: rejected
// items drop out of every total, approved items count as committed money.
//
// # Fulfillment
//
// Fulfillment is only reachable after approval and is deliberately
// permissive: any fulfillment state can move to any other state of the same
// value set. For products, paid and delivered are the two states that count
// as spent.
//
// All transition functions are pure: they return an updated copy or an
// error, and never mutate their input.
package item
