// Package service implements the reservation flow: turning a stock
// claim on an offer into a persisted, pickup-verifiable reservation.
package service

import (
    "context"
    "crypto/rand"
    "encoding/hex"
    "log"
    "strings"
    "time"

    "github.com/iliyamo/food-waste-saver/internal/model"
    "github.com/iliyamo/food-waste-saver/internal/queue"
)

// OfferReserver is the single store primitive the reservation flow
// depends on.  Implementations must perform the quantity test and
// decrement as one indivisible step and return
// repository.ErrUnavailable when the offer is missing or sold out.
type OfferReserver interface {
    ReserveOne(ctx context.Context, offerID uint64) (*model.Offer, error)
}

// ReservationWriter persists reservation records.
type ReservationWriter interface {
    Create(ctx context.Context, res *model.Reservation) error
}

// EventPublisher publishes a reservation-created event.  Failures are
// tolerated; the reservation has already committed by the time this
// runs.
type EventPublisher func(ctx context.Context, ev queue.ReservationCreatedEvent) error

// ReservationService coordinates the offer store and the reservation
// store.  It never mutates offer stock itself: the decrement is
// delegated to the OfferReserver, and a reservation row is only
// written after that decrement has committed.
type ReservationService struct {
    offers       OfferReserver
    reservations ReservationWriter
    publish      EventPublisher // optional; nil disables events
}

// NewReservationService constructs a ReservationService.  The store
// dependencies must be non-nil; the publisher may be nil.
func NewReservationService(offers OfferReserver, reservations ReservationWriter, publish EventPublisher) *ReservationService {
    if offers == nil || reservations == nil {
        panic("nil store passed to NewReservationService")
    }
    return &ReservationService{offers: offers, reservations: reservations, publish: publish}
}

// Reserve claims one bag from the given offer on behalf of the named
// user.  On success it returns the persisted reservation including its
// pickup code.  When the offer is missing or sold out the error from
// the offer store (repository.ErrUnavailable) propagates unchanged and
// nothing is persisted.
//
// If writing the reservation fails after the decrement committed, the
// claimed unit is not refunded.  This mirrors the behaviour of the
// original service; a compensating increment would need its own
// careful treatment of partial failures and is left out.
func (s *ReservationService) Reserve(ctx context.Context, offerID uint64, userName, userPhone string) (*model.Reservation, error) {
    offer, err := s.offers.ReserveOne(ctx, offerID)
    if err != nil {
        return nil, err
    }

    code, err := NewPickupCode()
    if err != nil {
        return nil, err
    }

    res := &model.Reservation{
        OfferID:    offerID,
        UserName:   userName,
        UserPhone:  userPhone,
        Status:     model.StatusReserved,
        PickupCode: code,
    }
    if err := s.reservations.Create(ctx, res); err != nil {
        return nil, err
    }

    if s.publish != nil {
        ev := queue.ReservationCreatedEvent{
            ReservationID: res.ID,
            OfferID:       offer.ID,
            OfferTitle:    offer.Title,
            City:          offer.City,
            UserName:      userName,
            PickupCode:    code,
            QuantityLeft:  offer.Quantity,
            ReservedAt:    time.Now().UTC().Format(time.RFC3339),
        }
        if perr := s.publish(ctx, ev); perr != nil {
            log.Printf("reservation %d: event publish failed: %v", res.ID, perr)
        }
    }
    return res, nil
}

// NewPickupCode returns a short code presented at physical pickup: six
// uppercase hex characters read from crypto/rand.  Uniqueness is
// best-effort; with 16.7M possible codes and no collision check,
// duplicates across the whole reservations table are tolerated.
func NewPickupCode() (string, error) {
    b := make([]byte, 3)
    if _, err := rand.Read(b); err != nil {
        return "", err
    }
    return strings.ToUpper(hex.EncodeToString(b)), nil
}
