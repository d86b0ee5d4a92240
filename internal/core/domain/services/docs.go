// Package services provides domain services for ParcelMyBox: pricing logic and
// ticket distribution that do not belong to a single aggregate.
//
// The package includes:
//   - QuoteCalculator: prices a parcel over a route from the zone/service rate table
//   - TicketAssigner: picks the next staff member for a support ticket, round-robin
package services
