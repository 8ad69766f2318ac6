// Package models defines the core domain models for FairShare.
//
// # Models
//
//   - Person: someone sharing the bill, identified by an ID unique within the bill
//   - Item: a priced line item assigned to zero or more people
//   - Bill: people, items, tax and tip policy; the allocation engine's input
//   - SplitResult: one person's share of a bill
//   - Breakdown: the allocation engine's output, keyed by person ID
//
// All monetary values use decimal.Decimal so that shares add up exactly.
//
// # Design Principles
//
// 1. **Values, not entities**: a Bill is assembled by a collaborator (the
// wizard, an RPC caller) and passed by value; a Breakdown is derived on demand
// and never stored.
//  2. **IDs over pointers**: items reference people by ID string.
//  3. **Validation at the edge**: Validate is for collaborators; the allocation
//     engine accepts any structurally valid Bill.
package models
