package repository

import (
    "context"
    "database/sql"

    "github.com/iliyamo/food-waste-saver/internal/model"
)

// ReservationRepo provides persistence for reservations.  It never
// touches offer stock: stock claims are the OfferRepo's job, and a
// reservation row is only written after a decrement has committed.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given
// database.  A nil handle is allowed; methods then report an
// unconfigured store.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a new reservation and populates its generated ID and
// timestamps.  Status should be one of the model.Status* values; the
// reservation flow always writes model.StatusReserved.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
    if r.db == nil {
        return ErrStoreUnavailable
    }
    const q = `INSERT INTO reservations (offer_id, user_name, user_phone, status, pickup_code)
               VALUES (?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q,
        res.OfferID, res.UserName, res.UserPhone, res.Status, res.PickupCode,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    // Query back the row to populate timestamps and defaults.
    const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// GetByID returns a single reservation.  It returns sql.ErrNoRows when
// no reservation with the given ID exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    if r.db == nil {
        return nil, ErrStoreUnavailable
    }
    const q = `SELECT id, offer_id, user_name, user_phone, status, pickup_code, created_at, updated_at
               FROM reservations WHERE id = ?`
    var res model.Reservation
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &res.ID, &res.OfferID, &res.UserName, &res.UserPhone,
        &res.Status, &res.PickupCode, &res.CreatedAt, &res.UpdatedAt,
    )
    if err != nil {
        return nil, err
    }
    return &res, nil
}

// CountByOffer returns how many reservations exist for the given
// offer.  Used by the diagnostics endpoint and by integration tests to
// cross-check the no-orphaned-reservations property.
func (r *ReservationRepo) CountByOffer(ctx context.Context, offerID uint64) (int64, error) {
    if r.db == nil {
        return 0, ErrStoreUnavailable
    }
    const q = `SELECT COUNT(*) FROM reservations WHERE offer_id = ?`
    var n int64
    if err := r.db.QueryRowContext(ctx, q, offerID).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}
