package model

import "time"

// Reservation status values.  Only StatusReserved is produced by the
// reservation flow; the other states exist for future pickup and
// cancellation endpoints.
const (
    StatusReserved  = "reserved"
    StatusPickedUp  = "picked_up"
    StatusCancelled = "cancelled"
)

// Reservation records a claim on one unit of an offer's quantity.  A
// reservation only ever exists when the referenced offer's quantity
// was successfully decremented at creation time.
//
// Fields:
//  ID         – primary key identifier.
//  OfferID    – offer from which one bag was claimed.
//  UserName   – name given at pickup.
//  UserPhone  – contact phone number.
//  Status     – state of the reservation (reserved, picked_up,
//               cancelled).
//  PickupCode – short code shown at pickup for verification.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – last update timestamp.
type Reservation struct {
    ID         uint64    // reservations.id
    OfferID    uint64    // reservations.offer_id
    UserName   string    // reservations.user_name
    UserPhone  string    // reservations.user_phone
    Status     string    // reservations.status
    PickupCode string    // reservations.pickup_code
    CreatedAt  time.Time // reservations.created_at
    UpdatedAt  time.Time // reservations.updated_at
}
