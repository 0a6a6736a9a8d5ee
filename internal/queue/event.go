// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published after a reservation has been
// persisted.  It carries enough context for downstream consumers to
// log or run analytics without querying the primary database.  The
// pickup code is included because the consumer's log doubles as an
// audit trail for pickup disputes.
type ReservationCreatedEvent struct {
    ReservationID uint64 `json:"reservation_id"`
    OfferID       uint64 `json:"offer_id"`
    OfferTitle    string `json:"offer_title"`
    City          string `json:"city"`
    UserName      string `json:"user_name"`
    PickupCode    string `json:"pickup_code"`
    QuantityLeft  int64  `json:"quantity_left"`
    ReservedAt    string `json:"reserved_at"`
}
