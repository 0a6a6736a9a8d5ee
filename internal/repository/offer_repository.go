package repository

import (
    "context"
    "database/sql"
    "encoding/json"
    "strings"

    "github.com/iliyamo/food-waste-saver/internal/model"
)

// OfferRepo provides persistence and atomic stock control for offers.
// It is the only component allowed to mutate an offer's quantity; all
// decrements go through ReserveOne.  The repo tolerates being
// constructed with a nil database handle: every method then returns
// ErrStoreUnavailable so the process can serve its health endpoints
// even when the environment lacks a database configuration.
type OfferRepo struct {
    db *sql.DB
}

// NewOfferRepo returns a new OfferRepo bound to the given database.
// A nil handle is allowed and puts the repo into the unavailable state.
func NewOfferRepo(db *sql.DB) *OfferRepo { return &OfferRepo{db: db} }

// DB exposes the underlying handle for callers that need to begin
// transactions or run diagnostics.  It may be nil.
func (r *OfferRepo) DB() *sql.DB { return r.db }

// OfferFilter narrows the result of ListActive.  Empty fields are
// ignored.  City is matched case-insensitively and exactly; Tag must
// be a member of the offer's tag array.
type OfferFilter struct {
    City string
    Tag  string
}

const offerColumns = `id, store_id, title, description, image_url, city,
    original_price, price, quantity, pickup_start, pickup_end, tags,
    created_at, updated_at`

// scanOffer reads one offer row from the given scanner.  Tags are
// stored as a JSON array column and decoded here.
func scanOffer(scan func(dest ...any) error) (*model.Offer, error) {
    var o model.Offer
    var description, imageURL sql.NullString
    var tagsRaw []byte
    if err := scan(
        &o.ID, &o.StoreID, &o.Title, &description, &imageURL, &o.City,
        &o.OriginalPrice, &o.Price, &o.Quantity, &o.PickupStart, &o.PickupEnd,
        &tagsRaw, &o.CreatedAt, &o.UpdatedAt,
    ); err != nil {
        return nil, err
    }
    if description.Valid {
        d := description.String
        o.Description = &d
    }
    if imageURL.Valid {
        u := imageURL.String
        o.ImageURL = &u
    }
    o.Tags = []string{}
    if len(tagsRaw) > 0 {
        if err := json.Unmarshal(tagsRaw, &o.Tags); err != nil {
            return nil, err
        }
    }
    return &o, nil
}

// Create inserts a new offer and populates its generated ID and
// timestamps.  Input validation (required fields, non-negative prices
// and quantity) is the handler's responsibility; the repo persists
// whatever it is given.
func (r *OfferRepo) Create(ctx context.Context, o *model.Offer) error {
    if r.db == nil {
        return ErrStoreUnavailable
    }
    tags, err := json.Marshal(o.Tags)
    if err != nil {
        return err
    }
    const q = `INSERT INTO offers
        (store_id, title, description, image_url, city, original_price, price,
         quantity, pickup_start, pickup_end, tags)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q,
        o.StoreID, o.Title, o.Description, o.ImageURL, o.City,
        o.OriginalPrice, o.Price, o.Quantity,
        o.PickupStart.UTC(), o.PickupEnd.UTC(), string(tags),
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    o.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults.
    const sel = `SELECT created_at, updated_at FROM offers WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, o.ID).Scan(&o.CreatedAt, &o.UpdatedAt)
}

// GetByID returns a snapshot of a single offer.  It returns
// sql.ErrNoRows when no offer with the given ID exists.
func (r *OfferRepo) GetByID(ctx context.Context, id uint64) (*model.Offer, error) {
    if r.db == nil {
        return nil, ErrStoreUnavailable
    }
    const q = `SELECT ` + offerColumns + ` FROM offers WHERE id = ?`
    row := r.db.QueryRowContext(ctx, q, id)
    return scanOffer(row.Scan)
}

// ListActive returns all offers whose pickup window has not ended and
// which still have stock, optionally narrowed by the filter.  Results
// come back in insertion order.  No matches is not an error; an empty
// slice is returned.  The listing is a read-only snapshot: an offer
// may show as available here and still fail reservation moments later.
func (r *OfferRepo) ListActive(ctx context.Context, f OfferFilter) ([]*model.Offer, error) {
    if r.db == nil {
        return nil, ErrStoreUnavailable
    }
    where := []string{"pickup_end >= UTC_TIMESTAMP()", "quantity > 0"}
    args := []any{}
    if f.City != "" {
        where = append(where, "LOWER(city) = LOWER(?)")
        args = append(args, f.City)
    }
    if f.Tag != "" {
        where = append(where, "JSON_CONTAINS(tags, JSON_QUOTE(?))")
        args = append(args, f.Tag)
    }
    q := `SELECT ` + offerColumns + ` FROM offers WHERE ` +
        strings.Join(where, " AND ") + ` ORDER BY id ASC`
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]*model.Offer, 0)
    for rows.Next() {
        o, err := scanOffer(rows.Scan)
        if err != nil {
            return nil, err
        }
        out = append(out, o)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ReserveOne atomically claims one unit of stock from the given offer.
// The test, decrement and write happen in a single conditional UPDATE,
// so no interleaving of concurrent callers can ever drive quantity
// negative: under N concurrent calls against quantity Q, exactly
// min(N, Q) succeed and the rest fail with ErrUnavailable.
//
// A zero rows-affected result covers both "offer does not exist" and
// "quantity already zero"; callers cannot tell the two apart.  On
// success the post-decrement snapshot is returned and updated_at has
// been refreshed.
func (r *OfferRepo) ReserveOne(ctx context.Context, offerID uint64) (*model.Offer, error) {
    if r.db == nil {
        return nil, ErrStoreUnavailable
    }
    const q = `UPDATE offers
        SET quantity = quantity - 1, updated_at = UTC_TIMESTAMP()
        WHERE id = ? AND quantity > 0`
    result, err := r.db.ExecContext(ctx, q, offerID)
    if err != nil {
        return nil, err
    }
    n, err := result.RowsAffected()
    if err != nil {
        return nil, err
    }
    if n == 0 {
        return nil, ErrUnavailable
    }
    snap, err := r.GetByID(ctx, offerID)
    if err != nil {
        // The decrement committed; failing to read the snapshot back
        // must not be reported as unavailability.
        return nil, err
    }
    return snap, nil
}
