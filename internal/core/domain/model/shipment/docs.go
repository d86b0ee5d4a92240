// Package shipment provides the Shipment aggregate and its value objects.
//
// The package includes:
//   - Shipment: booked parcel with tracking history and status lifecycle
//   - Status / ServiceLevel: enumerations with validated transitions and parsing
//   - Parcel: weight and dimensions, including volumetric weight
//   - Party: sender or recipient snapshot
//   - TrackingEvent: one entry of the tracking history
//   - NewTrackingNumber / NormalizeTrackingNumber: "PMB" + 10 label-safe characters
package shipment
