// Package billing holds bills and invoices, the two payable documents of the
// portal.
//
// A Bill is raised automatically for a booked shipment or manually by staff and
// carries a single amount. An Invoice is an itemised document with lines and a
// tax rate. Both share one lifecycle:
//
//	PENDING ─> PAID
//	   │  ╲
//	   │   ─> CANCELLED
//	   ▼          ▲
//	OVERDUE ──────┤
//	   └─────> PAID
//
// A document becomes OVERDUE only when it is still PENDING and its due date lies
// strictly before the current calendar day.
package billing
