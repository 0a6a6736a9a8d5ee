package model

import "time"

// Offer represents a discounted surprise bag listed by a store.  An
// offer carries a finite quantity of bags and a pickup window during
// which reserved bags must be collected.  Offers are listable while
// quantity is above zero and the pickup window has not ended.
//
// Fields:
//  ID            – primary key identifier.
//  StoreID       – store offering the bag (reference only, stores are
//                  managed elsewhere).
//  Title         – short title for the surprise bag.
//  Description   – optional details about what could be inside.
//  ImageURL      – optional representative image.
//  City          – city used for filtering.
//  OriginalPrice – original value of the items.
//  Price         – discounted price for the bag.
//  Quantity      – how many bags remain; never negative.
//  PickupStart   – pickup window start (UTC).
//  PickupEnd     – pickup window end (UTC).
//  Tags          – free-form dietary or category tags.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp; refreshed on every decrement.
type Offer struct {
    ID            uint64    // offers.id
    StoreID       string    // offers.store_id
    Title         string    // offers.title
    Description   *string   // offers.description (nullable)
    ImageURL      *string   // offers.image_url (nullable)
    City          string    // offers.city
    OriginalPrice float64   // offers.original_price
    Price         float64   // offers.price
    Quantity      int64     // offers.quantity
    PickupStart   time.Time // offers.pickup_start
    PickupEnd     time.Time // offers.pickup_end
    Tags          []string  // offers.tags (JSON array)
    CreatedAt     time.Time // offers.created_at
    UpdatedAt     time.Time // offers.updated_at
}

// Active reports whether the offer is still listable at the given
// instant: some stock remains and the pickup window has not closed.
func (o *Offer) Active(now time.Time) bool {
    return o.Quantity > 0 && !o.PickupEnd.Before(now)
}
