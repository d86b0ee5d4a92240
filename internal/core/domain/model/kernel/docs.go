// Package kernel provides the value objects shared by every ParcelMyBox aggregate.
//
// The package includes:
//   - UUID: entity identifier that rejects the nil UUID
//   - Money: non-negative amount in minor units of one currency
//   - PostalAddress: immutable, normalised postal address
//   - Actor: the authenticated user a command or query runs for
//   - DateOf / IsBeforeDay: calendar-day helpers used for due and pickup dates
//
// Value objects are created through constructors that enforce their invariants
// and embed a guard.ConstructorGuard so zero values fail Validate.
package kernel
